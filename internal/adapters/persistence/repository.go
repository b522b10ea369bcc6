package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskboard/go-backend/internal/infrastructure/database"
)

// GormRepository is the generic CRUD surface over one model type. Entity
// repositories embed it and add domain conversions and bespoke queries.
// Every operation resolves its data handle from the context, so calls made
// inside an active transaction go through that transaction's handle and
// calls made outside go through the base connection.
type GormRepository[M any] struct {
	db *gorm.DB
}

// NewGormRepository creates a generic repository for one model type
func NewGormRepository[M any](db *gorm.DB) *GormRepository[M] {
	return &GormRepository[M]{db: db}
}

func (r *GormRepository[M]) handle(ctx context.Context) *gorm.DB {
	return database.Resolve(ctx, r.db)
}

// Create inserts a new record
func (r *GormRepository[M]) Create(ctx context.Context, model *M) error {
	if result := r.handle(ctx).Create(model); result.Error != nil {
		return fmt.Errorf("failed to create record: %w", result.Error)
	}
	return nil
}

// FindByID loads one record by primary key. gorm.ErrRecordNotFound passes
// through so entity repositories can translate it to their typed errors.
func (r *GormRepository[M]) FindByID(ctx context.Context, id string) (*M, error) {
	var model M
	if result := r.handle(ctx).Where("id = ?", id).First(&model); result.Error != nil {
		return nil, result.Error
	}
	return &model, nil
}

// Save persists all fields of an existing record
func (r *GormRepository[M]) Save(ctx context.Context, model *M) error {
	if result := r.handle(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save record: %w", result.Error)
	}
	return nil
}

// Delete removes a record by primary key
func (r *GormRepository[M]) Delete(ctx context.Context, id string) error {
	var model M
	if result := r.handle(ctx).Where("id = ?", id).Delete(&model); result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}
	return nil
}
