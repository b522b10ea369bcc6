package commands

import (
	"context"
	"fmt"
	"time"

	"taskboard/go-backend/internal/application/mediator"
	"taskboard/go-backend/internal/application/tasks"
	"taskboard/go-backend/internal/domain/shared"
	"taskboard/go-backend/internal/domain/task"
	"taskboard/go-backend/internal/infrastructure/database"
)

// CompleteTaskCommand represents a command to mark a task completed
type CompleteTaskCommand struct {
	TaskID string `validate:"required"`
}

// CompleteTaskResponse represents the result of completing a task
type CompleteTaskResponse struct {
	TaskID      string
	CompletedAt time.Time
}

// CompleteTaskHandler handles the CompleteTask command.
//
// It runs the write in manual transaction mode: the update stays uncommitted
// until the handler has built its response, then the handler finalizes with
// an explicit Commit before broadcasting the completion. A failure on any
// path before the commit leaves no persisted change.
type CompleteTaskHandler struct {
	uowFactory *database.UnitOfWorkFactory
	taskRepo   task.Repository
	publisher  mediator.Publisher
	clock      shared.Clock
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler
func NewCompleteTaskHandler(
	uowFactory *database.UnitOfWorkFactory,
	taskRepo task.Repository,
	publisher mediator.Publisher,
	clock shared.Clock,
) *CompleteTaskHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &CompleteTaskHandler{
		uowFactory: uowFactory,
		taskRepo:   taskRepo,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle executes the CompleteTask command
func (h *CompleteTaskHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CompleteTaskCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CompleteTaskCommand")
	}

	uow := h.uowFactory.New()
	result, err := uow.ExecuteManual(ctx, func(txCtx context.Context) (interface{}, error) {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return nil, err
		}

		if err := t.Complete(h.clock.Now()); err != nil {
			return nil, err
		}

		if err := h.taskRepo.Update(txCtx, t); err != nil {
			return nil, err
		}

		return t, nil
	})
	if err != nil {
		return nil, err
	}

	completed := result.(*task.Task)
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, &tasks.TaskCompletedNotification{
		TaskID:    completed.ID,
		ProjectID: completed.ProjectID,
		At:        *completed.CompletedAt,
	})

	return &CompleteTaskResponse{
		TaskID:      completed.ID,
		CompletedAt: *completed.CompletedAt,
	}, nil
}
