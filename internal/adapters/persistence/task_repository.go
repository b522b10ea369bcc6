package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskboard/go-backend/internal/domain/task"
)

// GormTaskRepository implements task.Repository using GORM
type GormTaskRepository struct {
	repo *GormRepository[TaskModel]
}

// Compile-time interface check
var _ task.Repository = (*GormTaskRepository)(nil)

// NewGormTaskRepository creates a new GORM task repository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{repo: NewGormRepository[TaskModel](db)}
}

// Create persists a new task
func (r *GormTaskRepository) Create(ctx context.Context, t *task.Task) error {
	if err := r.repo.Create(ctx, taskToModel(t)); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*task.Task, error) {
	model, err := r.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &task.ErrNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return modelToTask(model), nil
}

// FindByProject retrieves tasks for a project with optional filtering
func (r *GormTaskRepository) FindByProject(ctx context.Context, projectID string, opts task.QueryOptions) ([]*task.Task, error) {
	query := r.repo.handle(ctx).Where("project_id = ?", projectID)

	if opts.Status != "" {
		query = query.Where("status = ?", string(opts.Status))
	}

	query = query.Order("created_at DESC")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []TaskModel
	if result := query.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", result.Error)
	}

	tasks := make([]*task.Task, len(models))
	for i := range models {
		tasks[i] = modelToTask(&models[i])
	}
	return tasks, nil
}

// Update persists changes to an existing task
func (r *GormTaskRepository) Update(ctx context.Context, t *task.Task) error {
	if err := r.repo.Save(ctx, taskToModel(t)); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func taskToModel(t *task.Task) *TaskModel {
	return &TaskModel{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func modelToTask(m *TaskModel) *task.Task {
	return &task.Task{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Description: m.Description,
		Status:      task.Status(m.Status),
		CreatedAt:   m.CreatedAt,
		CompletedAt: m.CompletedAt,
	}
}
