/*
Copyright © 2025 The Ticked Authors
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ticked-app/ticked/models"
	"github.com/ticked-app/ticked/store"
	"github.com/ticked-app/ticked/types"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server to enable AI tools like Claude Code,
Cursor, and other AI assistants to interact with your todos.

The MCP server runs over stdin/stdout and provides tools for:
- Creating, updating, completing, and deleting todos
- Bulk-creating todos from the files of a folder
- Searching by title or creation date
- Fetching the next todo to work on and a summary of active todos

Example usage with Claude Code:
  ticked mcp

The server will run until the client disconnects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	// MCP server inherits verbose flag from root command
}

func runMCPServer(ctx context.Context) error {
	// NOTE: MCP uses stdio transport. stdout MUST be pure JSON-RPC.
	// All status/debug output goes to stderr only.
	todoStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("failed to initialize todo store: %w", err)
	}
	defer func() { _ = todoStore.Close() }()

	impl := &mcp.Implementation{
		Name:    "ticked",
		Version: version,
	}

	server := mcp.NewServer(impl, &mcp.ServerOptions{})

	if err := registerMCPTools(server, todoStore); err != nil {
		return fmt.Errorf("failed to register MCP tools: %w", err)
	}

	if err := registerMCPResources(server, todoStore); err != nil {
		return fmt.Errorf("failed to register MCP resources: %w", err)
	}

	// Run the server over stdin/stdout
	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		logError(err)
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func registerMCPTools(server *mcp.Server, todoStore store.TodoStore) error {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create-todo",
		Description: "Create a new todo with a title and a Markdown description. Assigns a fresh ID and the next sequential task number. Fails if a todo with the same title and description already exists.",
	}, createTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-todo",
		Description: "Retrieve a todo by ID, including timestamps, status, and task number. Absence is reported in the result, not as an error.",
	}, getTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list-todos",
		Description: "List every todo in the store with full details.",
	}, listTodosHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list-active-todos",
		Description: "List todos that have not been completed yet (no completion timestamp).",
	}, listActiveTodosHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update-todo",
		Description: "Update the title and/or description of an existing todo. Supports partial updates - only provide fields you want to change. At least one field is required.",
	}, updateTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete-todo",
		Description: "Mark a todo as completed: sets the completion timestamp, sets status to Done, and refreshes the update timestamp.",
	}, completeTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete-todo",
		Description: "Permanently delete a todo by ID. Reports whether a todo was actually removed.",
	}, deleteTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update-todo-status",
		Description: "Set a todo's status to New or Done without touching its completion timestamp. Use complete-todo to record actual completion.",
	}, updateTodoStatusHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bulk-add-todos",
		Description: "Create one todo per file found recursively under a folder. Provide a template inline or via a file path (exactly one of the two). Files already tracked by a todo are skipped and reported.",
	}, bulkAddHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear-all-todos",
		Description: "Delete every todo in the store and report how many were removed. There is no confirmation and no undo.",
	}, clearAllHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "next-todo",
		Description: "Get the todo with the lowest task number whose status is not Done - the next piece of work in sequence.",
	}, nextTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search-todos-by-title",
		Description: "Search todos by a case-insensitive substring of the title. An empty term matches everything.",
	}, searchByTitleHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search-todos-by-date",
		Description: "Search todos created on a given date (YYYY-MM-DD). Matching is a prefix comparison on the creation timestamp.",
	}, searchByDateHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize-todos",
		Description: "Get a Markdown summary of active todos: a count header and one bullet per title.",
	}, summarizeHandler(todoStore))

	return nil
}

func registerMCPResources(server *mcp.Server, todoStore store.TodoStore) error {
	// Todos resource - provides access to todo data
	server.AddResource(&mcp.Resource{
		URI:         "ticked://todos",
		Name:        "todos",
		Description: "Access to all todos in JSON format",
		MIMEType:    "application/json",
	}, todosResourceHandler(todoStore))

	// Config resource - provides access to Ticked configuration
	server.AddResource(&mcp.Resource{
		URI:         "ticked://config",
		Name:        "config",
		Description: "Ticked configuration settings",
		MIMEType:    "application/json",
	}, configResourceHandler())

	return nil
}

func todoToResponse(todo models.Todo) types.TodoResponse {
	var completedAt *string
	if todo.CompletedAt != nil {
		completed := todo.CompletedAt.UTC().Format(time.RFC3339)
		completedAt = &completed
	}

	return types.TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Status:      string(todo.Status),
		Completed:   todo.Completed(),
		CompletedAt: completedAt,
		CreatedAt:   todo.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   todo.UpdatedAt.UTC().Format(time.RFC3339),
		FilePath:    todo.FilePath,
		TaskNumber:  todo.TaskNumber,
	}
}

func todosToResponses(todos []models.Todo) []types.TodoResponse {
	responses := make([]types.TodoResponse, len(todos))
	for i, t := range todos {
		responses[i] = todoToResponse(t)
	}
	return responses
}

func logError(err error) {
	if viper.GetBool("verbose") {
		log.Printf("[MCP ERROR] %v", err)
	}
}

func logInfo(msg string) {
	if viper.GetBool("verbose") {
		log.Printf("[MCP INFO] %s", msg)
	}
}

func logToolCall(toolName string, params interface{}) {
	if viper.GetBool("verbose") {
		log.Printf("[MCP TOOL] %s called with params: %+v", toolName, params)
	}
}
