package store

import "errors"

// Sentinel errors returned by the store. Callers branch with errors.Is.
var (
	// ErrTodoNotFound signals that no row matched the given identifier.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrDuplicateTodo signals that a todo with an identical
	// (title, description) pair already exists.
	ErrDuplicateTodo = errors.New("todo with identical title and description already exists")

	// ErrNotADirectory signals that the bulk-add folder path exists but is not
	// a directory.
	ErrNotADirectory = errors.New("path is not a directory")

	// ErrEmptyFolder signals that the bulk-add walk found no regular files.
	ErrEmptyFolder = errors.New("no files found in folder")

	// ErrAllDuplicates signals that every discovered file is already tracked
	// by an existing todo. The wrapping error reports the duplicate count.
	ErrAllDuplicates = errors.New("all files are already tracked")
)
