package store

import "github.com/ticked-app/ticked/models"

// TodoStore defines the interface for todo persistence.
// It outlines the contract for managing todos, including CRUD operations,
// folder-driven bulk creation, search, sequencing, and resource cleanup.
//
// Absence of a todo is a normal, branchable outcome: methods that look up a
// single row return ErrTodoNotFound (wrapped), which callers test with
// errors.Is rather than treating as a hard failure.
type TodoStore interface {
	// Create adds a new todo with a fresh ID, status New, and the next
	// sequential task number. It fails with ErrDuplicateTodo when a todo with
	// an identical (title, description) pair already exists.
	Create(title, description string) (models.Todo, error)

	// Get retrieves a todo by its unique identifier.
	Get(id string) (models.Todo, error)

	// List retrieves every todo in natural storage order.
	List() ([]models.Todo, error)

	// ListActive retrieves todos without a completion timestamp.
	ListActive() ([]models.Todo, error)

	// Update modifies an existing todo, applying the given updates.
	// The 'updates' map contains field names ("title", "description") to their
	// new values; unlisted fields are preserved. The updatedAt timestamp is
	// always refreshed. The duplicate-pair constraint is not re-checked.
	Update(id string, updates map[string]interface{}) (models.Todo, error)

	// Complete marks a todo as finished: it sets the completion timestamp,
	// sets status to Done, and refreshes updatedAt.
	Complete(id string) (models.Todo, error)

	// Delete permanently removes a todo. The boolean reports whether a row was
	// actually removed.
	Delete(id string) (bool, error)

	// UpdateStatus sets the status field only. It deliberately never touches
	// the completion timestamp, so status and completedAt can disagree.
	UpdateStatus(id string, status models.TodoStatus) (models.Todo, error)

	// BulkAdd creates one todo per regular file found under a folder.
	// See BulkAddRequest and BulkAddResult for the full contract.
	BulkAdd(req BulkAddRequest) (BulkAddResult, error)

	// SearchByTitle returns todos whose title contains the term,
	// case-insensitively. An empty term matches everything.
	SearchByTitle(term string) ([]models.Todo, error)

	// SearchByDate returns todos whose creation timestamp begins with the
	// given YYYY-MM-DD prefix. A malformed date simply matches nothing.
	SearchByDate(date string) ([]models.Todo, error)

	// Next returns the todo with the lowest task number among those whose
	// status is not Done, or ErrTodoNotFound if none qualify.
	Next() (models.Todo, error)

	// ClearAll deletes every todo and returns the count removed.
	ClearAll() (int, error)

	// Close releases the underlying database connection. It should be called
	// when the store is no longer needed.
	Close() error
}
