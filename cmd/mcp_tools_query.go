/*
Copyright © 2025 The Ticked Authors
*/
package cmd

// Query MCP tools: next, search, summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ticked-app/ticked/models"
	"github.com/ticked-app/ticked/store"
	"github.com/ticked-app/ticked/types"
)

// nextTodoHandler returns the lowest-numbered incomplete todo
func nextTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.NextTodoParams, types.TodoResultResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.NextTodoParams]) (*mcp.CallToolResultFor[types.TodoResultResponse], error) {
		todo, err := todoStore.Next()
		if err != nil {
			if errors.Is(err, store.ErrTodoNotFound) {
				msg := "No pending todos - everything is done."
				return &mcp.CallToolResultFor[types.TodoResultResponse]{
					Content: []mcp.Content{
						&mcp.TextContent{Text: msg},
					},
					StructuredContent: types.TodoResultResponse{Found: false, Message: msg},
				}, nil
			}
			return nil, WrapStoreError(err, "next", "")
		}

		logInfo(fmt.Sprintf("Next todo: %s (#%d)", todo.ID, todo.TaskNumber))

		return foundResult(todo, fmt.Sprintf("Next up: task #%d '%s' (ID: %s)", todo.TaskNumber, todo.Title, todo.ID)), nil
	}
}

// searchByTitleHandler searches todos by title substring
func searchByTitleHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.SearchByTitleParams, types.TodoListResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.SearchByTitleParams]) (*mcp.CallToolResultFor[types.TodoListResponse], error) {
		args := params.Arguments
		logToolCall("search-todos-by-title", args)

		todos, err := todoStore.SearchByTitle(args.Term)
		if err != nil {
			return nil, WrapStoreError(err, "search-by-title", "")
		}

		response := types.TodoListResponse{
			Todos: todosToResponses(todos),
			Count: len(todos),
		}

		logInfo(fmt.Sprintf("Title search %q matched %d todos", args.Term, len(todos)))

		return &mcp.CallToolResultFor[types.TodoListResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Found %d todos matching %q", len(todos), args.Term)},
			},
			StructuredContent: response,
		}, nil
	}
}

// searchByDateHandler searches todos by creation-date prefix
func searchByDateHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.SearchByDateParams, types.TodoListResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.SearchByDateParams]) (*mcp.CallToolResultFor[types.TodoListResponse], error) {
		args := params.Arguments
		logToolCall("search-todos-by-date", args)

		if strings.TrimSpace(args.Date) == "" {
			return nil, NewMCPError("MISSING_DATE", "A date in YYYY-MM-DD form is required", map[string]interface{}{
				"field": "date",
			})
		}

		todos, err := todoStore.SearchByDate(strings.TrimSpace(args.Date))
		if err != nil {
			return nil, WrapStoreError(err, "search-by-date", "")
		}

		response := types.TodoListResponse{
			Todos: todosToResponses(todos),
			Count: len(todos),
		}

		logInfo(fmt.Sprintf("Date search %q matched %d todos", args.Date, len(todos)))

		return &mcp.CallToolResultFor[types.TodoListResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Found %d todos created on %s", len(todos), args.Date)},
			},
			StructuredContent: response,
		}, nil
	}
}

// summarizeHandler returns a Markdown summary of active todos
func summarizeHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.SummarizeParams, types.SummaryResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.SummarizeParams]) (*mcp.CallToolResultFor[types.SummaryResponse], error) {
		todos, err := todoStore.ListActive()
		if err != nil {
			return nil, WrapStoreError(err, "summarize", "")
		}

		summary := buildSummary(todos)

		logInfo(fmt.Sprintf("Summarized %d active todos", len(todos)))

		return &mcp.CallToolResultFor[types.SummaryResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: summary},
			},
			StructuredContent: types.SummaryResponse{Summary: summary, ActiveCount: len(todos)},
		}, nil
	}
}

// buildSummary renders the active-todo summary: a count header and one bullet
// per title, in the order the active-list query returned them.
func buildSummary(todos []models.Todo) string {
	if len(todos) == 0 {
		return "No active todos."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Active Todos (%d)\n\n", len(todos))
	for _, t := range todos {
		fmt.Fprintf(&b, "- %s\n", t.Title)
	}
	return b.String()
}
