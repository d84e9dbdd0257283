/*
Copyright © 2025 The Ticked Authors
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ticked-app/ticked/store"
	"github.com/ticked-app/ticked/types"
)

// Type aliases for convenience
type MCPError = types.MCPError

// NewMCPError is an alias for types.NewMCPError
var NewMCPError = types.NewMCPError

// ValidateTodoInput validates common todo input parameters.
func ValidateTodoInput(title, status string) error {
	if title != "" && strings.TrimSpace(title) == "" {
		return NewMCPError("INVALID_TITLE", "Todo title must not be blank", map[string]interface{}{
			"field": "title",
			"value": title,
		})
	}

	if status != "" {
		validStatuses := map[string]bool{"New": true, "Done": true}
		if !validStatuses[strings.TrimSpace(status)] {
			return NewMCPError("INVALID_STATUS", "Invalid status value", map[string]interface{}{
				"field":        "status",
				"value":        status,
				"valid_values": []string{"New", "Done"},
			})
		}
	}

	return nil
}

// WrapStoreError wraps store errors with more context for MCP clients.
// Not-found is deliberately NOT handled here: handlers treat absence as a
// normal result, so callers should branch on store.ErrTodoNotFound first.
func WrapStoreError(err error, operation string, todoID string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrDuplicateTodo):
		return NewMCPError("DUPLICATE_TODO", "A todo with this exact title and description already exists", map[string]interface{}{
			"operation": operation,
		})
	case errors.Is(err, store.ErrNotADirectory):
		return NewMCPError("NOT_A_DIRECTORY", err.Error(), map[string]interface{}{
			"operation": operation,
		})
	case errors.Is(err, store.ErrEmptyFolder):
		return NewMCPError("EMPTY_FOLDER", err.Error(), map[string]interface{}{
			"operation": operation,
		})
	case errors.Is(err, store.ErrAllDuplicates):
		return NewMCPError("ALL_DUPLICATES", err.Error(), map[string]interface{}{
			"operation": operation,
		})
	}

	return NewMCPError("OPERATION_FAILED", fmt.Sprintf("%s operation failed: %v", operation, err), map[string]interface{}{
		"operation":      operation,
		"todo_id":        todoID,
		"original_error": err.Error(),
	})
}
