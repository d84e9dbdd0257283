package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func newBulkTestStore(t *testing.T) (*SQLiteStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := NewSQLiteStore(":memory:", fs)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, fs
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestBulkAddCreatesOneTodoPerFile(t *testing.T) {
	s, fs := newBulkTestStore(t)
	writeFile(t, fs, "/notes/a.md", "alpha")
	writeFile(t, fs, "/notes/deep/b.md", "beta")

	result, err := s.BulkAdd(BulkAddRequest{
		FolderPath: "/notes",
		Template:   "Review this file and write a summary.",
	})
	if err != nil {
		t.Fatalf("BulkAdd() error = %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("created %d todos, want 2", len(result.Created))
	}
	if len(result.SkippedPaths) != 0 {
		t.Errorf("skipped %v, want none", result.SkippedPaths)
	}

	// Numbering is consecutive from the current maximum.
	for i, todo := range result.Created {
		if todo.TaskNumber != i+1 {
			t.Errorf("todo %d TaskNumber = %d, want %d", i, todo.TaskNumber, i+1)
		}
		if todo.FilePath == nil {
			t.Fatalf("todo %d has no file path", i)
		}
		if !strings.Contains(todo.Description, "Review this file and write a summary.") {
			t.Errorf("description missing template text: %q", todo.Description)
		}
		if !strings.Contains(todo.Description, *todo.FilePath) {
			t.Errorf("description missing file path: %q", todo.Description)
		}
		if !strings.Contains(todo.Description, todo.ID) {
			t.Errorf("description missing todo id: %q", todo.Description)
		}
	}
}

func TestBulkAddContinuesNumberingAfterExistingTodos(t *testing.T) {
	s, fs := newBulkTestStore(t)
	if _, err := s.Create("Manual", "created by hand"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	writeFile(t, fs, "/notes/a.md", "alpha")

	result, err := s.BulkAdd(BulkAddRequest{FolderPath: "/notes", Template: "Do it."})
	if err != nil {
		t.Fatalf("BulkAdd() error = %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("created %d todos, want 1", len(result.Created))
	}
	if got := result.Created[0].TaskNumber; got != 2 {
		t.Errorf("TaskNumber = %d, want 2", got)
	}
}

func TestBulkAddSkipsTrackedFiles(t *testing.T) {
	s, fs := newBulkTestStore(t)
	writeFile(t, fs, "/notes/a.md", "alpha")

	if _, err := s.BulkAdd(BulkAddRequest{FolderPath: "/notes", Template: "Do it."}); err != nil {
		t.Fatalf("first BulkAdd() error = %v", err)
	}

	// Everything already tracked.
	_, err := s.BulkAdd(BulkAddRequest{FolderPath: "/notes", Template: "Do it."})
	if !errors.Is(err, ErrAllDuplicates) {
		t.Errorf("second BulkAdd() error = %v, want ErrAllDuplicates", err)
	}

	// A new file alongside tracked ones is created; the tracked one is
	// reported as skipped.
	writeFile(t, fs, "/notes/b.md", "beta")
	result, err := s.BulkAdd(BulkAddRequest{FolderPath: "/notes", Template: "Do it."})
	if err != nil {
		t.Fatalf("third BulkAdd() error = %v", err)
	}
	if len(result.Created) != 1 {
		t.Errorf("created %d todos, want 1", len(result.Created))
	}
	if len(result.SkippedPaths) != 1 {
		t.Errorf("skipped %d paths, want 1", len(result.SkippedPaths))
	}
}

func TestBulkAddFolderErrors(t *testing.T) {
	s, fs := newBulkTestStore(t)

	_, err := s.BulkAdd(BulkAddRequest{FolderPath: "/missing", Template: "x"})
	if err == nil || !strings.Contains(err.Error(), "folder not found") {
		t.Errorf("BulkAdd(missing folder) error = %v", err)
	}

	writeFile(t, fs, "/plain.txt", "not a dir")
	_, err = s.BulkAdd(BulkAddRequest{FolderPath: "/plain.txt", Template: "x"})
	if !errors.Is(err, ErrNotADirectory) {
		t.Errorf("BulkAdd(file path) error = %v, want ErrNotADirectory", err)
	}

	if err := fs.MkdirAll("/empty", 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err = s.BulkAdd(BulkAddRequest{FolderPath: "/empty", Template: "x"})
	if !errors.Is(err, ErrEmptyFolder) {
		t.Errorf("BulkAdd(empty folder) error = %v, want ErrEmptyFolder", err)
	}
}

func TestBulkAddTemplateFromFile(t *testing.T) {
	s, fs := newBulkTestStore(t)
	writeFile(t, fs, "/notes/a.md", "alpha")
	writeFile(t, fs, "/template.md", "Translate this document.")

	result, err := s.BulkAdd(BulkAddRequest{
		FolderPath:       "/notes",
		TemplateFilePath: "/template.md",
	})
	if err != nil {
		t.Fatalf("BulkAdd() error = %v", err)
	}
	if !strings.Contains(result.Created[0].Description, "Translate this document.") {
		t.Errorf("description missing file template text: %q", result.Created[0].Description)
	}
}

func TestBulkAddTemplateFileErrors(t *testing.T) {
	s, fs := newBulkTestStore(t)
	writeFile(t, fs, "/notes/a.md", "alpha")

	_, err := s.BulkAdd(BulkAddRequest{FolderPath: "/notes", TemplateFilePath: "/missing.md"})
	if err == nil || !strings.Contains(err.Error(), "template file not found") {
		t.Errorf("BulkAdd(missing template) error = %v", err)
	}

	writeFile(t, fs, "/blank.md", "   \n\t\n")
	_, err = s.BulkAdd(BulkAddRequest{FolderPath: "/notes", TemplateFilePath: "/blank.md"})
	if err == nil || !strings.Contains(err.Error(), "template file is empty") {
		t.Errorf("BulkAdd(blank template) error = %v", err)
	}

	if err := fs.MkdirAll("/tpl-dir", 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err = s.BulkAdd(BulkAddRequest{FolderPath: "/notes", TemplateFilePath: "/tpl-dir"})
	if err == nil || !strings.Contains(err.Error(), "not a regular file") {
		t.Errorf("BulkAdd(dir template) error = %v", err)
	}
}
