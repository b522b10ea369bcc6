package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskboard/go-backend/internal/application/mediator"
	"taskboard/go-backend/internal/domain/project"
	"taskboard/go-backend/internal/domain/shared"
	"taskboard/go-backend/internal/infrastructure/database"
)

// CreateProjectCommand represents a command to create a project
type CreateProjectCommand struct {
	Name string `validate:"required,min=1,max=200"`
}

// CreateProjectResponse represents the result of creating a project
type CreateProjectResponse struct {
	ProjectID string
	CreatedAt time.Time
}

// CreateProjectHandler handles the CreateProject command
type CreateProjectHandler struct {
	uowFactory  *database.UnitOfWorkFactory
	projectRepo project.Repository
	clock       shared.Clock
}

// NewCreateProjectHandler creates a new CreateProjectHandler
func NewCreateProjectHandler(
	uowFactory *database.UnitOfWorkFactory,
	projectRepo project.Repository,
	clock shared.Clock,
) *CreateProjectHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &CreateProjectHandler{
		uowFactory:  uowFactory,
		projectRepo: projectRepo,
		clock:       clock,
	}
}

// Handle executes the CreateProject command
func (h *CreateProjectHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateProjectCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateProjectCommand")
	}

	uow := h.uowFactory.New()
	result, err := uow.Execute(ctx, func(txCtx context.Context) (interface{}, error) {
		p := &project.Project{
			ID:        uuid.NewString(),
			Name:      cmd.Name,
			CreatedAt: h.clock.Now(),
		}
		if err := h.projectRepo.Create(txCtx, p); err != nil {
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	created := result.(*project.Project)
	return &CreateProjectResponse{
		ProjectID: created.ID,
		CreatedAt: created.CreatedAt,
	}, nil
}
