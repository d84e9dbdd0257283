package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func validTodo() Todo {
	now := time.Now().UTC()
	return Todo{
		ID:          uuid.New().String(),
		Title:       "Write tests",
		Description: "cover the model layer",
		Status:      StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
		TaskNumber:  1,
	}
}

func TestParseTodoStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    TodoStatus
		wantErr bool
	}{
		{"New", StatusNew, false},
		{"Done", StatusDone, false},
		{"  Done  ", StatusDone, false},
		{"done", "", true},
		{"InProgress", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTodoStatus(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTodoStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTodoStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateStruct(t *testing.T) {
	if err := ValidateStruct(validTodo()); err != nil {
		t.Errorf("valid todo failed validation: %v", err)
	}

	noTitle := validTodo()
	noTitle.Title = ""
	if err := ValidateStruct(noTitle); err == nil {
		t.Error("todo without title passed validation")
	}

	badID := validTodo()
	badID.ID = "not-a-uuid"
	if err := ValidateStruct(badID); err == nil {
		t.Error("todo with malformed ID passed validation")
	}

	badStatus := validTodo()
	badStatus.Status = "Pending"
	if err := ValidateStruct(badStatus); err == nil {
		t.Error("todo with unknown status passed validation")
	}

	badNumber := validTodo()
	badNumber.TaskNumber = 0
	if err := ValidateStruct(badNumber); err == nil {
		t.Error("todo with task number 0 passed validation")
	}
}

func TestCompletedIsDerivedFromTimestamp(t *testing.T) {
	todo := validTodo()
	if todo.Completed() {
		t.Error("Completed() = true without a completion timestamp")
	}

	now := time.Now().UTC()
	todo.CompletedAt = &now
	if !todo.Completed() {
		t.Error("Completed() = false with a completion timestamp")
	}

	// Status alone does not make a todo completed.
	statusOnly := validTodo()
	statusOnly.Status = StatusDone
	if statusOnly.Completed() {
		t.Error("Completed() = true from status alone")
	}
}
