/*
Copyright © 2025 The Ticked Authors
*/
package cmd

// Basic MCP tools: create, get, list, update, complete, delete, update-status

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

// notFoundResult builds the non-error result used when a todo id does not
// resolve. Absence is a normal outcome for callers to branch on.
func notFoundResult(id string) *mcp.CallToolResultFor[types.TodoResultResponse] {
	msg := fmt.Sprintf("Todo not found: %s", id)
	return &mcp.CallToolResultFor[types.TodoResultResponse]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		StructuredContent: types.TodoResultResponse{Found: false, Message: msg},
	}
}

// foundResult builds the result for a successfully resolved todo.
func foundResult(todo models.Todo, text string) *mcp.CallToolResultFor[types.TodoResultResponse] {
	resp := todoToResponse(todo)
	return &mcp.CallToolResultFor[types.TodoResultResponse]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		StructuredContent: types.TodoResultResponse{Found: true, Todo: &resp, Message: text},
	}
}

// createTodoHandler creates a new todo
func createTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.CreateTodoParams, types.TodoResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.CreateTodoParams]) (*mcp.CallToolResultFor[types.TodoResponse], error) {
		args := params.Arguments
		logToolCall("create-todo", args)

		if strings.TrimSpace(args.Title) == "" {
			return nil, NewMCPError("MISSING_TITLE", "Todo title is required", map[string]interface{}{
				"field": "title",
			})
		}
		if strings.TrimSpace(args.Description) == "" {
			return nil, NewMCPError("MISSING_DESCRIPTION", "Todo description is required", map[string]interface{}{
				"field": "description",
			})
		}

		if err := ValidateTodoInput(args.Title, ""); err != nil {
			return nil, err
		}

		createdTodo, err := todoStore.Create(strings.TrimSpace(args.Title), args.Description)
		if err != nil {
			return nil, WrapStoreError(err, "create", "")
		}

		logInfo(fmt.Sprintf("Created todo: %s (#%d)", createdTodo.ID, createdTodo.TaskNumber))

		responseText := fmt.Sprintf("Created todo '%s' with ID: %s (task #%d)", createdTodo.Title, createdTodo.ID, createdTodo.TaskNumber)

		return &mcp.CallToolResultFor[types.TodoResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: responseText},
			},
			StructuredContent: todoToResponse(createdTodo),
		}, nil
	}
}

// getTodoHandler retrieves a specific todo
func getTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.GetTodoParams, types.TodoResultResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.GetTodoParams]) (*mcp.CallToolResultFor[types.TodoResultResponse], error) {
		args := params.Arguments
		logToolCall("get-todo", args)

		if strings.TrimSpace(args.ID) == "" {
			return nil, NewMCPError("MISSING_ID", "Todo ID is required to get a todo", nil)
		}

		todo, err := todoStore.Get(args.ID)
		if err != nil {
			if errors.Is(err, store.ErrTodoNotFound) {
				return notFoundResult(args.ID), nil
			}
			return nil, WrapStoreError(err, "get", args.ID)
		}

		logInfo(fmt.Sprintf("Retrieved todo: %s", todo.ID))

		return foundResult(todo, fmt.Sprintf("Todo '%s' (ID: %s)", todo.Title, todo.ID)), nil
	}
}

// listTodosHandler lists every todo
func listTodosHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.ListTodosParams, types.TodoListResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.ListTodosParams]) (*mcp.CallToolResultFor[types.TodoListResponse], error) {
		todos, err := todoStore.List()
		if err != nil {
			return nil, WrapStoreError(err, "list", "")
		}

		response := types.TodoListResponse{
			Todos: todosToResponses(todos),
			Count: len(todos),
		}

		logInfo(fmt.Sprintf("Listed %d todos", len(todos)))

		return &mcp.CallToolResultFor[types.TodoListResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Found %d todos", len(todos))},
			},
			StructuredContent: response,
		}, nil
	}
}

// listActiveTodosHandler lists todos without a completion timestamp
func listActiveTodosHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.ListTodosParams, types.TodoListResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.ListTodosParams]) (*mcp.CallToolResultFor[types.TodoListResponse], error) {
		todos, err := todoStore.ListActive()
		if err != nil {
			return nil, WrapStoreError(err, "list-active", "")
		}

		response := types.TodoListResponse{
			Todos: todosToResponses(todos),
			Count: len(todos),
		}

		logInfo(fmt.Sprintf("Listed %d active todos", len(todos)))

		return &mcp.CallToolResultFor[types.TodoListResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Found %d active todos", len(todos))},
			},
			StructuredContent: response,
		}, nil
	}
}

// updateTodoHandler updates the title and/or description of an existing todo
func updateTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.UpdateTodoParams, types.TodoResultResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.UpdateTodoParams]) (*mcp.CallToolResultFor[types.TodoResultResponse], error) {
		args := params.Arguments
		logToolCall("update-todo", args)

		if strings.TrimSpace(args.ID) == "" {
			return nil, NewMCPError("MISSING_ID", "Todo ID is required for update", nil)
		}

		// Build updates map; only supplied fields are applied.
		updates := make(map[string]interface{})
		if strings.TrimSpace(args.Title) != "" {
			updates["title"] = strings.TrimSpace(args.Title)
		}
		if args.Description != "" {
			updates["description"] = args.Description
		}
		if len(updates) == 0 {
			return nil, NewMCPError("MISSING_FIELDS", "At least one of title or description must be provided", map[string]interface{}{
				"fields": []string{"title", "description"},
			})
		}

		updatedTodo, err := todoStore.Update(args.ID, updates)
		if err != nil {
			if errors.Is(err, store.ErrTodoNotFound) {
				return notFoundResult(args.ID), nil
			}
			return nil, WrapStoreError(err, "update", args.ID)
		}

		logInfo(fmt.Sprintf("Updated todo: %s", updatedTodo.ID))

		return foundResult(updatedTodo, fmt.Sprintf("Updated todo '%s' (ID: %s)", updatedTodo.Title, updatedTodo.ID)), nil
	}
}

// completeTodoHandler marks a todo as completed
func completeTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.CompleteTodoParams, types.TodoResultResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.CompleteTodoParams]) (*mcp.CallToolResultFor[types.TodoResultResponse], error) {
		args := params.Arguments
		logToolCall("complete-todo", args)

		if strings.TrimSpace(args.ID) == "" {
			return nil, NewMCPError("MISSING_ID", "Todo ID is required to complete a todo", nil)
		}

		completedTodo, err := todoStore.Complete(args.ID)
		if err != nil {
			if errors.Is(err, store.ErrTodoNotFound) {
				return notFoundResult(args.ID), nil
			}
			return nil, WrapStoreError(err, "complete", args.ID)
		}

		logInfo(fmt.Sprintf("Completed todo: %s", completedTodo.ID))

		return foundResult(completedTodo, fmt.Sprintf("Marked todo '%s' as completed (ID: %s)", completedTodo.Title, completedTodo.ID)), nil
	}
}

// deleteTodoHandler deletes a todo
func deleteTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.DeleteTodoParams, types.DeleteTodoResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.DeleteTodoParams]) (*mcp.CallToolResultFor[types.DeleteTodoResponse], error) {
		args := params.Arguments
		logToolCall("delete-todo", args)

		if strings.TrimSpace(args.ID) == "" {
			return nil, NewMCPError("MISSING_ID", "Todo ID is required for deletion", nil)
		}

		deleted, err := todoStore.Delete(args.ID)
		if err != nil {
			return nil, WrapStoreError(err, "delete", args.ID)
		}

		var responseText string
		if deleted {
			responseText = fmt.Sprintf("Deleted todo %s", args.ID)
			logInfo(responseText)
		} else {
			responseText = fmt.Sprintf("Todo not found: %s", args.ID)
		}

		response := types.DeleteTodoResponse{
			Deleted: deleted,
			TodoID:  args.ID,
			Message: responseText,
		}

		return &mcp.CallToolResultFor[types.DeleteTodoResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: responseText},
			},
			StructuredContent: response,
		}, nil
	}
}

// updateTodoStatusHandler sets a todo's status without touching completedAt
func updateTodoStatusHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.UpdateTodoStatusParams, types.TodoResultResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.UpdateTodoStatusParams]) (*mcp.CallToolResultFor[types.TodoResultResponse], error) {
		args := params.Arguments
		logToolCall("update-todo-status", args)

		if strings.TrimSpace(args.ID) == "" {
			return nil, NewMCPError("MISSING_ID", "Todo ID is required to update status", nil)
		}

		if err := ValidateTodoInput("", args.Status); err != nil {
			return nil, err
		}

		status, err := models.ParseTodoStatus(args.Status)
		if err != nil {
			return nil, NewMCPError("INVALID_STATUS", err.Error(), map[string]interface{}{
				"field": "status",
			})
		}

		updatedTodo, err := todoStore.UpdateStatus(args.ID, status)
		if err != nil {
			if errors.Is(err, store.ErrTodoNotFound) {
				return notFoundResult(args.ID), nil
			}
			return nil, WrapStoreError(err, "update-status", args.ID)
		}

		logInfo(fmt.Sprintf("Updated status of todo %s to %s", updatedTodo.ID, updatedTodo.Status))

		return foundResult(updatedTodo, fmt.Sprintf("Set status of todo '%s' to %s (ID: %s)", updatedTodo.Title, updatedTodo.Status, updatedTodo.ID)), nil
	}
}
