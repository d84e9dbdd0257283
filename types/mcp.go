/*
Copyright © 2025 The Ticked Authors
*/
package types

// MCP Tool Parameter Types

// CreateTodoParams for creating a new todo
type CreateTodoParams struct {
	Title       string `json:"title" mcp:"Todo title (required)"`
	Description string `json:"description" mcp:"Todo description in Markdown (required)"`
}

// GetTodoParams for retrieving a specific todo
type GetTodoParams struct {
	ID string `json:"id" mcp:"Todo ID to retrieve (required)"`
}

// ListTodosParams for listing todos
type ListTodosParams struct{}

// UpdateTodoParams for updating an existing todo.
// At least one of title or description must be provided.
type UpdateTodoParams struct {
	ID          string `json:"id" mcp:"Todo ID to update (required)"`
	Title       string `json:"title,omitempty" mcp:"New todo title"`
	Description string `json:"description,omitempty" mcp:"New todo description"`
}

// CompleteTodoParams for marking a todo as completed
type CompleteTodoParams struct {
	ID string `json:"id" mcp:"Todo ID to complete (required)"`
}

// DeleteTodoParams for deleting a todo
type DeleteTodoParams struct {
	ID string `json:"id" mcp:"Todo ID to delete (required)"`
}

// UpdateTodoStatusParams for setting a todo's status directly.
// This never touches the completion timestamp; use complete-todo for that.
type UpdateTodoStatusParams struct {
	ID     string `json:"id" mcp:"Todo ID to update (required)"`
	Status string `json:"status" mcp:"New status: New or Done (required)"`
}

// BulkAddParams for folder-driven batch creation.
// Exactly one of template or templateFilePath must be provided.
type BulkAddParams struct {
	FolderPath       string `json:"folderPath" mcp:"Folder to scan recursively; one todo is created per file (required)"`
	Template         string `json:"template,omitempty" mcp:"Inline template text injected into each todo description"`
	TemplateFilePath string `json:"templateFilePath,omitempty" mcp:"Path to a file whose contents are used as the template"`
}

// ClearAllParams for removing every todo
type ClearAllParams struct{}

// NextTodoParams for fetching the lowest-numbered incomplete todo
type NextTodoParams struct{}

// SearchByTitleParams for case-insensitive substring search on titles
type SearchByTitleParams struct {
	Term string `json:"term,omitempty" mcp:"Substring to match against titles, case-insensitive; empty matches everything"`
}

// SearchByDateParams for prefix matching on creation dates
type SearchByDateParams struct {
	Date string `json:"date" mcp:"Creation date prefix in YYYY-MM-DD form (required)"`
}

// SummarizeParams for the active-todo summary
type SummarizeParams struct{}

// MCP Response Types

// TodoResponse represents a todo in MCP responses
type TodoResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completedAt"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	FilePath    *string `json:"filePath,omitempty"`
	TaskNumber  int     `json:"taskNumber"`
}

// TodoListResponse for list and search operations
type TodoListResponse struct {
	Todos []TodoResponse `json:"todos"`
	Count int            `json:"count"`
}

// TodoResultResponse wraps a single-todo lookup where absence is a normal
// outcome rather than a failure.
type TodoResultResponse struct {
	Found   bool          `json:"found"`
	Todo    *TodoResponse `json:"todo,omitempty"`
	Message string        `json:"message"`
}

// DeleteTodoResponse for delete operations
type DeleteTodoResponse struct {
	Deleted bool   `json:"deleted"`
	TodoID  string `json:"todo_id"`
	Message string `json:"message"`
}

// BulkAddResponse for folder ingestion.
// Skipped paths were already tracked by an existing todo; they are reported,
// not treated as per-item failures.
type BulkAddResponse struct {
	Created      []TodoResponse `json:"created"`
	CreatedCount int            `json:"created_count"`
	SkippedPaths []string       `json:"skipped_paths,omitempty"`
	SkippedCount int            `json:"skipped_count"`
}

// ClearAllResponse for the full-store clear
type ClearAllResponse struct {
	Removed int    `json:"removed"`
	Message string `json:"message"`
}

// SummaryResponse for the active-todo summary
type SummaryResponse struct {
	Summary     string `json:"summary"`
	ActiveCount int    `json:"active_count"`
}
