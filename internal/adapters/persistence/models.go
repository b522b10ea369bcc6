package persistence

import (
	"time"

	"gorm.io/gorm"
)

// AutoMigrate runs auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ProjectModel{},
		&TaskModel{},
		&AuditEntryModel{},
	)
}

// ProjectModel is the database model for projects
type ProjectModel struct {
	ID             string `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	TaskCount      int    `gorm:"not null;default:0"`
	CompletedCount int    `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

// TableName specifies the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// TaskModel is the database model for tasks
type TaskModel struct {
	ID          string `gorm:"primaryKey"`
	ProjectID   string `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Description string
	Status      string `gorm:"index;not null"`
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// TableName specifies the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// AuditEntryModel is the database model for audit log entries
type AuditEntryModel struct {
	ID      string `gorm:"primaryKey"`
	Action  string `gorm:"not null"`
	Subject string `gorm:"index;not null"`
	Detail  string
	At      time.Time
}

// TableName specifies the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}
