package task

import (
	"context"
	"fmt"
	"time"
)

// Status is the lifecycle state of a task
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusCompleted Status = "COMPLETED"
)

// Task is a unit of work tracked inside a project
type Task struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Complete marks the task completed at the given time. Completing an already
// completed task is an error so the handler can surface it as a conflict.
func (t *Task) Complete(at time.Time) error {
	if t.Status == StatusCompleted {
		return &ErrAlreadyCompleted{ID: t.ID}
	}
	t.Status = StatusCompleted
	t.CompletedAt = &at
	return nil
}

// QueryOptions narrows and pages task listings
type QueryOptions struct {
	Status Status
	Limit  int
	Offset int
}

// Repository is the task persistence port. Implementations resolve their
// data handle from the context so calls inside a transaction share it.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindByProject(ctx context.Context, projectID string, opts QueryOptions) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}

// ErrNotFound indicates the task does not exist
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

// ErrAlreadyCompleted indicates a completion conflict
type ErrAlreadyCompleted struct {
	ID string
}

func (e *ErrAlreadyCompleted) Error() string {
	return fmt.Sprintf("task %s is already completed", e.ID)
}
