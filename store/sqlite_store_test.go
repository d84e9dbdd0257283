package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/ticked-app/ticked/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:", afero.NewMemMapFs())
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAssignsSequentialTaskNumbers(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Create("First", "do the first thing")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.TaskNumber != 1 {
		t.Errorf("first TaskNumber = %d, want 1", first.TaskNumber)
	}
	if first.Status != models.StatusNew {
		t.Errorf("first Status = %q, want %q", first.Status, models.StatusNew)
	}
	if first.ID == "" {
		t.Error("expected a generated ID")
	}

	second, err := s.Create("Second", "do the second thing")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if second.TaskNumber != 2 {
		t.Errorf("second TaskNumber = %d, want 2", second.TaskNumber)
	}
}

func TestCreateRejectsDuplicateTitleAndDescription(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Create("Dup", "same text"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := s.Create("Dup", "same text")
	if !errors.Is(err, ErrDuplicateTodo) {
		t.Errorf("Create() error = %v, want ErrDuplicateTodo", err)
	}

	// Same title with a different description is allowed.
	if _, err := s.Create("Dup", "different text"); err != nil {
		t.Errorf("Create() with different description error = %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("no-such-id")
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Get() error = %v, want ErrTodoNotFound", err)
	}
}

func TestGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create("Round trip", "persist and load")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != created.Title || got.Description != created.Description {
		t.Errorf("Get() = %+v, want title/description of %+v", got, created)
	}
	if got.TaskNumber != created.TaskNumber {
		t.Errorf("Get() TaskNumber = %d, want %d", got.TaskNumber, created.TaskNumber)
	}
	if got.CompletedAt != nil {
		t.Errorf("new todo CompletedAt = %v, want nil", got.CompletedAt)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create("Original title", "original description")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := s.Update(created.ID, map[string]interface{}{"title": "New title"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "New title" {
		t.Errorf("Title = %q, want %q", updated.Title, "New title")
	}
	if updated.Description != "original description" {
		t.Errorf("Description = %q, want it preserved", updated.Description)
	}

	if _, err := s.Update(created.ID, map[string]interface{}{"priority": "high"}); err == nil {
		t.Error("Update() with unknown field should fail")
	}

	_, err = s.Update("no-such-id", map[string]interface{}{"title": "x"})
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Update() error = %v, want ErrTodoNotFound", err)
	}
}

func TestCompleteSetsTimestampAndStatus(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create("Finish me", "work to do")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	done, err := s.Complete(created.ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if done.CompletedAt == nil {
		t.Fatal("CompletedAt = nil after Complete()")
	}
	if done.Status != models.StatusDone {
		t.Errorf("Status = %q, want %q", done.Status, models.StatusDone)
	}
	if !done.Completed() {
		t.Error("Completed() = false after Complete()")
	}

	// Completing again keeps the original completion time.
	firstCompleted := *done.CompletedAt
	time.Sleep(1100 * time.Millisecond)
	again, err := s.Complete(created.ID)
	if err != nil {
		t.Fatalf("second Complete() error = %v", err)
	}
	if !again.CompletedAt.Equal(firstCompleted) {
		t.Errorf("CompletedAt changed on re-complete: %v != %v", again.CompletedAt, firstCompleted)
	}
	// updated_at refreshes on every completion call.
	if !again.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want later than %v", again.UpdatedAt, created.UpdatedAt)
	}

	_, err = s.Complete("no-such-id")
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Complete() error = %v, want ErrTodoNotFound", err)
	}
}

func TestUpdateStatusLeavesCompletionTimestampAlone(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create("Status only", "timestamps stay put")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Status Done without a completion timestamp.
	marked, err := s.UpdateStatus(created.ID, models.StatusDone)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if marked.Status != models.StatusDone {
		t.Errorf("Status = %q, want %q", marked.Status, models.StatusDone)
	}
	if marked.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil after a status-only change", marked.CompletedAt)
	}

	// Back to New after a real completion keeps the timestamp.
	if _, err := s.Complete(created.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	reopened, err := s.UpdateStatus(created.ID, models.StatusNew)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if reopened.CompletedAt == nil {
		t.Error("CompletedAt cleared by a status-only change")
	}

	if _, err := s.UpdateStatus(created.ID, models.TodoStatus("Bogus")); err == nil {
		t.Error("UpdateStatus() with invalid status should fail")
	}
}

func TestDeleteReportsRemoval(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create("Delete me", "short lived")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := s.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Error("Delete() = false, want true")
	}

	deleted, err = s.Delete(created.ID)
	if err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if deleted {
		t.Error("Delete() of missing todo = true, want false")
	}
}

func TestListActiveExcludesCompleted(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.Create("Active", "still open")
	b, _ := s.Create("Finished", "already done")
	if _, err := s.Complete(b.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List() returned %d todos, want 2", len(all))
	}

	active, err := s.ListActive()
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 1 || active[0].ID != a.ID {
		t.Errorf("ListActive() = %+v, want only the active todo", active)
	}
}

func TestSearchByTitleIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	s.Create("Fix Login Bug", "auth fails on retry")
	s.Create("Write docs", "cover the login flow")

	matches, err := s.SearchByTitle("login")
	if err != nil {
		t.Fatalf("SearchByTitle() error = %v", err)
	}
	if len(matches) != 1 || matches[0].Title != "Fix Login Bug" {
		t.Errorf("SearchByTitle(login) = %+v, want the login todo", matches)
	}

	// Empty term matches everything.
	all, err := s.SearchByTitle("")
	if err != nil {
		t.Fatalf("SearchByTitle() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("SearchByTitle(\"\") returned %d todos, want 2", len(all))
	}
}

func TestSearchByDate(t *testing.T) {
	s := newTestStore(t)

	s.Create("Today", "created just now")

	today := time.Now().UTC().Format("2006-01-02")
	matches, err := s.SearchByDate(today)
	if err != nil {
		t.Fatalf("SearchByDate() error = %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("SearchByDate(%s) returned %d todos, want 1", today, len(matches))
	}

	none, err := s.SearchByDate("1999-01-01")
	if err != nil {
		t.Fatalf("SearchByDate() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("SearchByDate(past) returned %d todos, want 0", len(none))
	}

	// A malformed date is not an error, it just matches nothing.
	garbage, err := s.SearchByDate("not-a-date")
	if err != nil {
		t.Fatalf("SearchByDate() error = %v", err)
	}
	if len(garbage) != 0 {
		t.Errorf("SearchByDate(garbage) returned %d todos, want 0", len(garbage))
	}
}

func TestNextFollowsTaskNumberOrder(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Next()
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Next() on empty store error = %v, want ErrTodoNotFound", err)
	}

	first, _ := s.Create("One", "first")
	second, _ := s.Create("Two", "second")

	next, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if next.ID != first.ID {
		t.Errorf("Next() = %s, want lowest-numbered todo %s", next.ID, first.ID)
	}

	// A status-only Done hides the todo from Next even without a
	// completion timestamp.
	if _, err := s.UpdateStatus(first.ID, models.StatusDone); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	next, err = s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if next.ID != second.ID {
		t.Errorf("Next() = %s, want %s", next.ID, second.ID)
	}

	if _, err := s.Complete(second.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	_, err = s.Next()
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Next() with all done error = %v, want ErrTodoNotFound", err)
	}
}

func TestClearAllResetsNumbering(t *testing.T) {
	s := newTestStore(t)

	s.Create("One", "a")
	s.Create("Two", "b")

	removed, err := s.ClearAll()
	if err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("ClearAll() = %d, want 2", removed)
	}

	fresh, err := s.Create("Fresh start", "numbering restarts")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if fresh.TaskNumber != 1 {
		t.Errorf("TaskNumber after clear = %d, want 1", fresh.TaskNumber)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "todos.db")

	s, err := NewSQLiteStore(dbPath, afero.NewOsFs())
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	created, err := s.Create("Durable", "survives reopen")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath, afero.NewOsFs())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Title != "Durable" || got.TaskNumber != 1 {
		t.Errorf("Get() after reopen = %+v", got)
	}
}
