package listeners

import (
	"context"
	"fmt"

	"taskboard/go-backend/internal/application/mediator"
	"taskboard/go-backend/internal/application/tasks"
	"taskboard/go-backend/internal/domain/project"
	"taskboard/go-backend/internal/infrastructure/database"
)

// StatsListener maintains per-project task counters from task lifecycle
// notifications. Each delivery opens its own automatic transaction so the
// read-increment-write is atomic; it is independent of the transaction that
// produced the notification, which has already committed.
type StatsListener struct {
	uowFactory  *database.UnitOfWorkFactory
	projectRepo project.Repository
}

// Compile-time interface check
var _ mediator.NotificationHandler = (*StatsListener)(nil)

// NewStatsListener creates a new StatsListener
func NewStatsListener(uowFactory *database.UnitOfWorkFactory, projectRepo project.Repository) *StatsListener {
	return &StatsListener{
		uowFactory:  uowFactory,
		projectRepo: projectRepo,
	}
}

// Notify applies one counter increment per notification
func (l *StatsListener) Notify(ctx context.Context, notification mediator.Notification) error {
	switch n := notification.(type) {
	case *tasks.TaskCreatedNotification:
		return l.bump(ctx, n.ProjectID, func(p *project.Project) {
			p.TaskCount++
		})

	case *tasks.TaskCompletedNotification:
		return l.bump(ctx, n.ProjectID, func(p *project.Project) {
			p.CompletedCount++
		})

	default:
		return fmt.Errorf("unexpected notification type %T", notification)
	}
}

func (l *StatsListener) bump(ctx context.Context, projectID string, apply func(*project.Project)) error {
	uow := l.uowFactory.New()
	_, err := uow.Execute(ctx, func(txCtx context.Context) (interface{}, error) {
		p, err := l.projectRepo.FindByID(txCtx, projectID)
		if err != nil {
			return nil, err
		}
		apply(p)
		if err := l.projectRepo.Update(txCtx, p); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}
