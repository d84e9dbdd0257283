/*
Copyright © 2025 The Ticked Authors
*/
package cmd

// Bulk MCP tools: folder ingestion and full-store clear

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ticked-app/ticked/store"
	"github.com/ticked-app/ticked/types"
)

// bulkAddHandler creates one todo per file found under a folder
func bulkAddHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.BulkAddParams, types.BulkAddResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.BulkAddParams]) (*mcp.CallToolResultFor[types.BulkAddResponse], error) {
		args := params.Arguments
		logToolCall("bulk-add-todos", args)

		if strings.TrimSpace(args.FolderPath) == "" {
			return nil, NewMCPError("MISSING_FOLDER", "folderPath is required", map[string]interface{}{
				"field": "folderPath",
			})
		}

		// Template sources are mutually exclusive: exactly one must be given.
		hasInline := strings.TrimSpace(args.Template) != ""
		hasFile := strings.TrimSpace(args.TemplateFilePath) != ""
		if hasInline == hasFile {
			return nil, NewMCPError("INVALID_TEMPLATE_SOURCE", "Provide exactly one of template or templateFilePath", map[string]interface{}{
				"fields": []string{"template", "templateFilePath"},
			})
		}

		result, err := todoStore.BulkAdd(store.BulkAddRequest{
			FolderPath:       args.FolderPath,
			Template:         args.Template,
			TemplateFilePath: args.TemplateFilePath,
		})
		if err != nil {
			return nil, WrapStoreError(err, "bulk-add", "")
		}

		for _, p := range result.SkippedPaths {
			logInfo(fmt.Sprintf("Skipped already-tracked file: %s", p))
		}
		logInfo(fmt.Sprintf("Bulk-added %d todos from %s (%d skipped)", len(result.Created), args.FolderPath, len(result.SkippedPaths)))

		response := types.BulkAddResponse{
			Created:      todosToResponses(result.Created),
			CreatedCount: len(result.Created),
			SkippedPaths: result.SkippedPaths,
			SkippedCount: len(result.SkippedPaths),
		}

		responseText := fmt.Sprintf("Created %d todos from %s", len(result.Created), args.FolderPath)
		if len(result.SkippedPaths) > 0 {
			responseText += fmt.Sprintf(" (%d files already tracked, skipped)", len(result.SkippedPaths))
		}

		return &mcp.CallToolResultFor[types.BulkAddResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: responseText},
			},
			StructuredContent: response,
		}, nil
	}
}

// clearAllHandler deletes every todo
func clearAllHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.ClearAllParams, types.ClearAllResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.ClearAllParams]) (*mcp.CallToolResultFor[types.ClearAllResponse], error) {
		logToolCall("clear-all-todos", params.Arguments)

		removed, err := todoStore.ClearAll()
		if err != nil {
			return nil, WrapStoreError(err, "clear-all", "")
		}

		logInfo(fmt.Sprintf("Cleared %d todos", removed))

		responseText := fmt.Sprintf("Removed %d todos", removed)
		return &mcp.CallToolResultFor[types.ClearAllResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: responseText},
			},
			StructuredContent: types.ClearAllResponse{Removed: removed, Message: responseText},
		}, nil
	}
}
