package queries

import (
	"context"
	"fmt"

	"taskboard/go-backend/internal/application/mediator"
	"taskboard/go-backend/internal/domain/task"
)

// ListTasksQuery represents a query for the tasks of a project
type ListTasksQuery struct {
	ProjectID string `validate:"required"`
	Status    string `validate:"omitempty,oneof=OPEN COMPLETED"`
	Limit     int    `validate:"min=0,max=500"`
	Offset    int    `validate:"min=0"`
}

// ListTasksResponse represents the result of listing tasks
type ListTasksResponse struct {
	Tasks []*TaskDTO
}

// ListTasksHandler handles the ListTasks query
type ListTasksHandler struct {
	taskRepo task.Repository
}

// NewListTasksHandler creates a new ListTasksHandler
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the ListTasks query
func (h *ListTasksHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListTasksQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListTasksQuery")
	}

	found, err := h.taskRepo.FindByProject(ctx, query.ProjectID, task.QueryOptions{
		Status: task.Status(query.Status),
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]*TaskDTO, len(found))
	for i, t := range found {
		dtos[i] = taskToDTO(t)
	}

	return &ListTasksResponse{Tasks: dtos}, nil
}
