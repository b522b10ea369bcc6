package queries

import (
	"context"
	"fmt"
	"time"

	"taskboard/go-backend/internal/application/mediator"
	"taskboard/go-backend/internal/domain/task"
)

// GetTaskQuery represents a query for one task by ID
type GetTaskQuery struct {
	TaskID string `validate:"required"`
}

// TaskDTO is the read-side shape of a task
type TaskDTO struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// GetTaskHandler handles the GetTask query
type GetTaskHandler struct {
	taskRepo task.Repository
}

// NewGetTaskHandler creates a new GetTaskHandler
func NewGetTaskHandler(taskRepo task.Repository) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo}
}

// Handle executes the GetTask query. Reads run outside any transaction, so
// the repository resolves the base connection from the context.
func (h *GetTaskHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTaskQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTaskQuery")
	}

	t, err := h.taskRepo.FindByID(ctx, query.TaskID)
	if err != nil {
		return nil, err
	}

	return taskToDTO(t), nil
}

func taskToDTO(t *task.Task) *TaskDTO {
	return &TaskDTO{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}
