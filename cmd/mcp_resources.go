/*
Copyright © 2025 The Ticked Authors
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ticked-app/ticked/store"
)

// todosResourceHandler provides access to all todos in JSON format
func todosResourceHandler(todoStore store.TodoStore) mcp.ResourceHandler {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.ReadResourceParams) (*mcp.ReadResourceResult, error) {
		todos, err := todoStore.List()
		if err != nil {
			return nil, fmt.Errorf("failed to list todos: %w", err)
		}

		jsonData, err := json.MarshalIndent(todosToResponses(todos), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal todos to JSON: %w", err)
		}

		logInfo(fmt.Sprintf("Provided todos resource with %d todos", len(todos)))

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      params.URI,
					MIMEType: "application/json",
					Text:     string(jsonData),
				},
			},
		}, nil
	}
}

// configResourceHandler provides access to the active configuration
func configResourceHandler() mcp.ResourceHandler {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.ReadResourceParams) (*mcp.ReadResourceResult, error) {
		config := GetConfig()

		jsonData, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to JSON: %w", err)
		}

		logInfo("Provided config resource")

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      params.URI,
					MIMEType: "application/json",
					Text:     string(jsonData),
				},
			},
		}, nil
	}
}
