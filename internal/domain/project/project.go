package project

import (
	"context"
	"fmt"
	"time"
)

// Project groups tasks and tracks aggregate counters maintained by the
// task notification listeners
type Project struct {
	ID             string
	Name           string
	TaskCount      int
	CompletedCount int
	CreatedAt      time.Time
}

// Repository is the project persistence port
type Repository interface {
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, p *Project) error
}

// ErrNotFound indicates the project does not exist
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("project %s not found", e.ID)
}
