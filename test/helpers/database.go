package helpers

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"taskboard/go-backend/internal/adapters/persistence"
	"taskboard/go-backend/internal/infrastructure/config"
	"taskboard/go-backend/internal/infrastructure/database"
)

// NewTestDB creates a file-backed SQLite database in a per-test temp dir.
// A file (not :memory:) so that every pooled connection sees the same
// database: transaction visibility tests read through a second connection.
func NewTestDB(t *testing.T) *gorm.DB {
	// Immediate write transactions and a generous busy timeout keep the
	// concurrent notification listeners from tripping over SQLITE_BUSY.
	dsn := filepath.Join(t.TempDir(), "taskboard-test.db") +
		"?_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate"
	db, err := database.NewConnection(&config.DatabaseConfig{
		Type: "sqlite",
		Path: dsn,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}
