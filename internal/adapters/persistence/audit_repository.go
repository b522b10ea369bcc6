package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskboard/go-backend/internal/domain/audit"
)

// GormAuditRepository implements audit.Repository using GORM
type GormAuditRepository struct {
	repo *GormRepository[AuditEntryModel]
}

// Compile-time interface check
var _ audit.Repository = (*GormAuditRepository)(nil)

// NewGormAuditRepository creates a new GORM audit repository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{repo: NewGormRepository[AuditEntryModel](db)}
}

// Append persists a new audit entry
func (r *GormAuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	model := &AuditEntryModel{
		ID:      e.ID,
		Action:  e.Action,
		Subject: e.Subject,
		Detail:  e.Detail,
		At:      e.At,
	}
	if err := r.repo.Create(ctx, model); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// FindBySubject retrieves all audit entries for one subject, oldest first
func (r *GormAuditRepository) FindBySubject(ctx context.Context, subject string) ([]*audit.Entry, error) {
	var models []AuditEntryModel
	result := r.repo.handle(ctx).
		Where("subject = ?", subject).
		Order("at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find audit entries: %w", result.Error)
	}

	entries := make([]*audit.Entry, len(models))
	for i, m := range models {
		entries[i] = &audit.Entry{
			ID:      m.ID,
			Action:  m.Action,
			Subject: m.Subject,
			Detail:  m.Detail,
			At:      m.At,
		}
	}
	return entries, nil
}
