package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"ezcrow.dev/crowdfund/internal/config"
	"ezcrow.dev/crowdfund/internal/infrastructure"
)

// OpenSQLite opens a migrated SQLite database in a temporary directory.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := infrastructure.OpenSQLite(context.Background(), config.SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "crowdfund.db"),
		BusyTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
