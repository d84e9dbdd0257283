package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/ticked-app/ticked/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements TodoStore using SQLite for persistence.
// The database handle is a single long-lived resource opened at construction
// and shared by all operations; correctness under concurrent callers relies on
// SQLite's per-statement atomicity, not on any cross-statement envelope.
type SQLiteStore struct {
	db *sql.DB
	fs afero.Fs
}

// NewSQLiteStore creates a new SQLite-backed todo store at dbPath.
// Pass ":memory:" for an ephemeral database. The afero filesystem is used for
// the bulk folder-ingestion workflow; production callers pass afero.NewOsFs(),
// tests pass afero.NewMemMapFs().
func NewSQLiteStore(dbPath string, fs afero.Fs) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single shared connection: SQLite is single-writer, and a :memory:
	// database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db, fs: fs}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		completed_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		file_path TEXT,
		status TEXT NOT NULL DEFAULT 'New',
		task_number INTEGER UNIQUE
	);

	CREATE INDEX IF NOT EXISTS idx_todos_status ON todos(status);
	CREATE INDEX IF NOT EXISTS idx_todos_file_path ON todos(file_path);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// nullTimeString returns nil for a nil time, RFC3339 string otherwise.
func nullTimeString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// todoRowScanner abstracts row scanning for reuse between QueryRow and rows.Next()
type todoRowScanner interface {
	Scan(dest ...any) error
}

const todoSelectColumns = `id, title, description, status, completed_at, created_at, updated_at, file_path, task_number`

// scanTodoRow scans a todo row into a Todo struct.
func scanTodoRow(row todoRowScanner) (models.Todo, error) {
	var t models.Todo
	var completedAt, filePath sql.NullString
	var createdAt, updatedAt string
	var taskNumber sql.NullInt64

	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &completedAt, &createdAt, &updatedAt, &filePath, &taskNumber)
	if err != nil {
		return t, err
	}

	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	if completedAt.Valid && completedAt.String != "" {
		parsed, perr := time.Parse(time.RFC3339, completedAt.String)
		if perr == nil {
			t.CompletedAt = &parsed
		}
	}
	if filePath.Valid {
		fp := filePath.String
		t.FilePath = &fp
	}
	if taskNumber.Valid {
		t.TaskNumber = int(taskNumber.Int64)
	}

	return t, nil
}

// maxTaskNumber returns the highest task number in the store, 0 when empty.
func (s *SQLiteStore) maxTaskNumber() (int, error) {
	var max int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(task_number), 0) FROM todos`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("query max task number: %w", err)
	}
	return max, nil
}

// insertTodo persists a fully-populated todo as a single row.
func (s *SQLiteStore) insertTodo(t *models.Todo) error {
	var filePath interface{}
	if t.FilePath != nil {
		filePath = *t.FilePath
	}

	_, err := s.db.Exec(`
		INSERT INTO todos (id, title, description, completed_at, created_at, updated_at, file_path, status, task_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Description, nullTimeString(t.CompletedAt),
		t.CreatedAt.UTC().Format(time.RFC3339), t.UpdatedAt.UTC().Format(time.RFC3339),
		filePath, t.Status, t.TaskNumber)
	if err != nil {
		return fmt.Errorf("insert todo %s: %w", t.Title, err)
	}
	return nil
}

// Create adds a new todo with the next sequential task number.
// Note: the read-max-then-insert sequence is not safe against concurrent
// creators; the store assumes a single client.
func (s *SQLiteStore) Create(title, description string) (models.Todo, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM todos WHERE title = ? AND description = ?`, title, description).Scan(&count)
	if err != nil {
		return models.Todo{}, fmt.Errorf("check duplicate: %w", err)
	}
	if count > 0 {
		return models.Todo{}, fmt.Errorf("%w: %q", ErrDuplicateTodo, title)
	}

	maxNum, err := s.maxTaskNumber()
	if err != nil {
		return models.Todo{}, err
	}

	now := time.Now().UTC()
	todo := models.Todo{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Status:      models.StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
		TaskNumber:  maxNum + 1,
	}

	if err := models.ValidateStruct(todo); err != nil {
		return models.Todo{}, fmt.Errorf("validate todo: %w", err)
	}

	if err := s.insertTodo(&todo); err != nil {
		return models.Todo{}, err
	}

	return todo, nil
}

// Get retrieves a todo by ID.
func (s *SQLiteStore) Get(id string) (models.Todo, error) {
	row := s.db.QueryRow(`SELECT `+todoSelectColumns+` FROM todos WHERE id = ?`, id)

	t, err := scanTodoRow(row)
	if err == sql.ErrNoRows {
		return models.Todo{}, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("query todo: %w", err)
	}
	return t, nil
}

// queryTodos runs a SELECT returning full todo rows and scans them all.
func (s *SQLiteStore) queryTodos(query string, args ...any) ([]models.Todo, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var todos []models.Todo
	for rows.Next() {
		t, err := scanTodoRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// List returns every todo in natural storage order.
func (s *SQLiteStore) List() ([]models.Todo, error) {
	return s.queryTodos(`SELECT ` + todoSelectColumns + ` FROM todos`)
}

// ListActive returns todos without a completion timestamp.
func (s *SQLiteStore) ListActive() ([]models.Todo, error) {
	return s.queryTodos(`SELECT ` + todoSelectColumns + ` FROM todos WHERE completed_at IS NULL`)
}

// Update applies the given field updates and refreshes updated_at.
// Recognized keys are "title" and "description"; the duplicate-pair constraint
// is not re-checked on update.
func (s *SQLiteStore) Update(id string, updates map[string]interface{}) (models.Todo, error) {
	if id == "" {
		return models.Todo{}, fmt.Errorf("todo id is required")
	}

	query := "UPDATE todos SET "
	args := []any{}
	sets := []string{}

	for key, value := range updates {
		switch key {
		case "title":
			sets = append(sets, "title = ?")
			args = append(args, value)
		case "description":
			sets = append(sets, "description = ?")
			args = append(args, value)
		default:
			return models.Todo{}, fmt.Errorf("unknown update field: %s", key)
		}
	}
	if len(sets) == 0 {
		return models.Todo{}, fmt.Errorf("no fields to update")
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339))

	query += strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo rows affected: %w", err)
	}
	if affected == 0 {
		return models.Todo{}, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}

	return s.Get(id)
}

// Complete marks a todo as finished. The completion timestamp is set only on
// the first completion (COALESCE keeps an existing value); status and
// updated_at are refreshed every call.
func (s *SQLiteStore) Complete(id string) (models.Todo, error) {
	if id == "" {
		return models.Todo{}, fmt.Errorf("todo id is required")
	}
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.Exec(`
		UPDATE todos
		SET completed_at = COALESCE(completed_at, ?), status = ?, updated_at = ?
		WHERE id = ?
	`, now, models.StatusDone, now, id)
	if err != nil {
		return models.Todo{}, fmt.Errorf("complete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Todo{}, fmt.Errorf("complete todo rows affected: %w", err)
	}
	if affected == 0 {
		return models.Todo{}, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}

	return s.Get(id)
}

// Delete permanently removes a todo. It reports whether a row was removed.
func (s *SQLiteStore) Delete(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete todo rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdateStatus sets the status field and refreshes updated_at.
// It never writes completed_at: callers can set status Done without a
// completion timestamp, or reset a completed todo to New without clearing it.
func (s *SQLiteStore) UpdateStatus(id string, status models.TodoStatus) (models.Todo, error) {
	if id == "" {
		return models.Todo{}, fmt.Errorf("todo id is required")
	}
	if status != models.StatusNew && status != models.StatusDone {
		return models.Todo{}, fmt.Errorf("invalid status %q", status)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.Exec(`UPDATE todos SET status = ?, updated_at = ? WHERE id = ?`, status, now, id)
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo status rows affected: %w", err)
	}
	if affected == 0 {
		return models.Todo{}, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}

	return s.Get(id)
}

// SearchByTitle returns todos whose title contains the term, case-insensitively.
func (s *SQLiteStore) SearchByTitle(term string) ([]models.Todo, error) {
	wildcard := "%" + strings.ToLower(term) + "%"
	return s.queryTodos(`SELECT `+todoSelectColumns+` FROM todos WHERE lower(title) LIKE ?`, wildcard)
}

// SearchByDate returns todos created on the given YYYY-MM-DD date.
// Matching is a plain prefix comparison against the stored timestamp, so a
// malformed date string matches nothing.
func (s *SQLiteStore) SearchByDate(date string) ([]models.Todo, error) {
	return s.queryTodos(`SELECT `+todoSelectColumns+` FROM todos WHERE created_at LIKE ?`, date+"%")
}

// Next returns the lowest-numbered todo whose status is not Done.
func (s *SQLiteStore) Next() (models.Todo, error) {
	row := s.db.QueryRow(`
		SELECT ` + todoSelectColumns + `
		FROM todos
		WHERE status != 'Done'
		ORDER BY task_number ASC
		LIMIT 1
	`)

	t, err := scanTodoRow(row)
	if err == sql.ErrNoRows {
		return models.Todo{}, fmt.Errorf("%w: no pending todos", ErrTodoNotFound)
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("query next todo: %w", err)
	}
	return t, nil
}

// ClearAll deletes every todo and returns the count removed.
func (s *SQLiteStore) ClearAll() (int, error) {
	res, err := s.db.Exec(`DELETE FROM todos`)
	if err != nil {
		return 0, fmt.Errorf("clear todos: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear todos rows affected: %w", err)
	}
	return int(affected), nil
}
