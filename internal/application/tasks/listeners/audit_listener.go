package listeners

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"taskboard/go-backend/internal/application/mediator"
	"taskboard/go-backend/internal/application/tasks"
	"taskboard/go-backend/internal/domain/audit"
)

// AuditListener appends an audit record for every task lifecycle notification.
// It runs on the fan-out path: its failures are logged by the mediator and
// never reach the publisher.
type AuditListener struct {
	auditRepo audit.Repository
}

// Compile-time interface check
var _ mediator.NotificationHandler = (*AuditListener)(nil)

// NewAuditListener creates a new AuditListener
func NewAuditListener(auditRepo audit.Repository) *AuditListener {
	return &AuditListener{auditRepo: auditRepo}
}

// Notify records one audit entry per notification
func (l *AuditListener) Notify(ctx context.Context, notification mediator.Notification) error {
	switch n := notification.(type) {
	case *tasks.TaskCreatedNotification:
		return l.auditRepo.Append(ctx, &audit.Entry{
			ID:      uuid.NewString(),
			Action:  "task.created",
			Subject: n.TaskID,
			Detail:  fmt.Sprintf("task %q created in project %s", n.Name, n.ProjectID),
			At:      n.At,
		})

	case *tasks.TaskCompletedNotification:
		return l.auditRepo.Append(ctx, &audit.Entry{
			ID:      uuid.NewString(),
			Action:  "task.completed",
			Subject: n.TaskID,
			Detail:  fmt.Sprintf("task completed in project %s", n.ProjectID),
			At:      n.At,
		})

	default:
		return fmt.Errorf("unexpected notification type %T", notification)
	}
}
