package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskboard/go-backend/internal/domain/project"
)

// GormProjectRepository implements project.Repository using GORM
type GormProjectRepository struct {
	repo *GormRepository[ProjectModel]
}

// Compile-time interface check
var _ project.Repository = (*GormProjectRepository)(nil)

// NewGormProjectRepository creates a new GORM project repository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{repo: NewGormRepository[ProjectModel](db)}
}

// Create persists a new project
func (r *GormProjectRepository) Create(ctx context.Context, p *project.Project) error {
	if err := r.repo.Create(ctx, projectToModel(p)); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// FindByID retrieves a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id string) (*project.Project, error) {
	model, err := r.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &project.ErrNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return modelToProject(model), nil
}

// Update persists changes to an existing project
func (r *GormProjectRepository) Update(ctx context.Context, p *project.Project) error {
	if err := r.repo.Save(ctx, projectToModel(p)); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func projectToModel(p *project.Project) *ProjectModel {
	return &ProjectModel{
		ID:             p.ID,
		Name:           p.Name,
		TaskCount:      p.TaskCount,
		CompletedCount: p.CompletedCount,
		CreatedAt:      p.CreatedAt,
	}
}

func modelToProject(m *ProjectModel) *project.Project {
	return &project.Project{
		ID:             m.ID,
		Name:           m.Name,
		TaskCount:      m.TaskCount,
		CompletedCount: m.CompletedCount,
		CreatedAt:      m.CreatedAt,
	}
}
