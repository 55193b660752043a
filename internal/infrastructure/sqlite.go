package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"ezcrow.dev/crowdfund/internal/config"
	"ezcrow.dev/crowdfund/internal/infrastructure/migrations"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

// SQLiteDSN builds the connection string for path. Write transactions
// begin IMMEDIATE so the write lock is taken before the first read.
func SQLiteDSN(cfg config.SQLiteConfig) string {
	busy := cfg.BusyTimeout.Milliseconds()
	if busy <= 0 {
		busy = 5000
	}
	q := url.Values{}
	q.Set("_txlock", "immediate")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	return filepath.Clean(cfg.Path) + "?" + q.Encode()
}

// OpenSQLite opens the database at cfg.Path and applies migrations.
func OpenSQLite(ctx context.Context, cfg config.SQLiteConfig) (*sql.DB, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	db, err := sql.Open("sqlite", SQLiteDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection serializes writers inside the process.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ApplySQLiteMigrations(ctx, db, migrations.SQLite, "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("SQLite database opened", zap.String("path", cfg.Path))
	return db, nil
}
