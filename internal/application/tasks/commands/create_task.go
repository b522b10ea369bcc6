package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskboard/go-backend/internal/application/mediator"
	"taskboard/go-backend/internal/application/tasks"
	"taskboard/go-backend/internal/domain/project"
	"taskboard/go-backend/internal/domain/shared"
	"taskboard/go-backend/internal/domain/task"
	"taskboard/go-backend/internal/infrastructure/database"
)

// CreateTaskCommand represents a command to create a task inside a project
type CreateTaskCommand struct {
	ProjectID   string `validate:"required"`
	Name        string `validate:"required,min=1,max=200"`
	Description string `validate:"max=2000"`
}

// CreateTaskResponse represents the result of creating a task
type CreateTaskResponse struct {
	TaskID    string
	CreatedAt time.Time
}

// CreateTaskHandler handles the CreateTask command
type CreateTaskHandler struct {
	uowFactory  *database.UnitOfWorkFactory
	taskRepo    task.Repository
	projectRepo project.Repository
	publisher   mediator.Publisher
	clock       shared.Clock
}

// NewCreateTaskHandler creates a new CreateTaskHandler
func NewCreateTaskHandler(
	uowFactory *database.UnitOfWorkFactory,
	taskRepo task.Repository,
	projectRepo project.Repository,
	publisher mediator.Publisher,
	clock shared.Clock,
) *CreateTaskHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &CreateTaskHandler{
		uowFactory:  uowFactory,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		publisher:   publisher,
		clock:       clock,
	}
}

// Handle executes the CreateTask command. The project check and the insert
// share one automatic transaction; the notification goes out only after it
// commits.
func (h *CreateTaskHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateTaskCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateTaskCommand")
	}

	uow := h.uowFactory.New()
	result, err := uow.Execute(ctx, func(txCtx context.Context) (interface{}, error) {
		if _, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID); err != nil {
			return nil, err
		}

		t := &task.Task{
			ID:          uuid.NewString(),
			ProjectID:   cmd.ProjectID,
			Name:        cmd.Name,
			Description: cmd.Description,
			Status:      task.StatusOpen,
			CreatedAt:   h.clock.Now(),
		}
		if err := h.taskRepo.Create(txCtx, t); err != nil {
			return nil, err
		}

		return t, nil
	})
	if err != nil {
		return nil, err
	}

	created := result.(*task.Task)
	h.publisher.Publish(ctx, &tasks.TaskCreatedNotification{
		TaskID:    created.ID,
		ProjectID: created.ProjectID,
		Name:      created.Name,
		At:        created.CreatedAt,
	})

	return &CreateTaskResponse{
		TaskID:    created.ID,
		CreatedAt: created.CreatedAt,
	}, nil
}
