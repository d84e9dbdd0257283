package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TodoStatus represents the possible statuses of a todo.
type TodoStatus string

const (
	StatusNew  TodoStatus = "New"
	StatusDone TodoStatus = "Done"
)

// ParseTodoStatus validates a raw status string and returns its canonical form.
func ParseTodoStatus(s string) (TodoStatus, error) {
	switch TodoStatus(strings.TrimSpace(s)) {
	case StatusNew:
		return StatusNew, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", fmt.Errorf("invalid status %q (must be 'New' or 'Done')", s)
	}
}

// Todo represents a unit of trackable work.
//
// Status and CompletedAt are independently settable: Complete sets both, while
// UpdateStatus only ever touches Status. The two can therefore disagree and the
// store does not reconcile them.
type Todo struct {
	ID          string     `json:"id" validate:"required,uuid4"`
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"required"`
	Status      TodoStatus `json:"status" validate:"required,oneof=New Done"`
	CompletedAt *time.Time `json:"completedAt,omitempty"` // Pointer to allow null
	CreatedAt   time.Time  `json:"createdAt" validate:"required"`
	UpdatedAt   time.Time  `json:"updatedAt" validate:"required"`
	FilePath    *string    `json:"filePath,omitempty"` // Set only for folder-ingested todos
	TaskNumber  int        `json:"taskNumber" validate:"min=1"`
}

// Completed reports whether the todo has a completion timestamp.
// It is derived, never stored independently.
func (t *Todo) Completed() bool {
	return t.CompletedAt != nil
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
