package audit

import (
	"context"
	"time"
)

// Entry is one append-only audit record written by the notification listeners
type Entry struct {
	ID      string
	Action  string
	Subject string
	Detail  string
	At      time.Time
}

// Repository is the audit persistence port
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	FindBySubject(ctx context.Context, subject string) ([]*Entry, error)
}
