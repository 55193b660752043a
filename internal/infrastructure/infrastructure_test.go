package infrastructure

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezcrow.dev/crowdfund/internal/config"
	"ezcrow.dev/crowdfund/internal/infrastructure/migrations"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

func init() {
	_ = logger.Init("error", "json")
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no markers", "CREATE TABLE a (id INT);", "CREATE TABLE a (id INT);"},
		{"up only", "-- +migrate Up\nCREATE TABLE a (id INT);", "CREATE TABLE a (id INT);"},
		{"up and down", "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;", "CREATE TABLE a (id INT);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.TrimSpace(ExtractUpMigration(tt.content)))
		})
	}
}

func TestEmbeddedMigrationsParse(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		fsys := migrations.Postgres
		if dir == "sqlite" {
			fsys = migrations.SQLite
		}
		files, err := readMigrations(fsys, dir)
		require.NoError(t, err, dir)
		require.Len(t, files, 2, dir)
		assert.Equal(t, "0001_host_storage.sql", files[0].name)
		assert.NotContains(t, files[1].up, "DROP TABLE")
	}
}

func TestSQLiteDSN(t *testing.T) {
	dsn := SQLiteDSN(config.SQLiteConfig{Path: "data/./crowdfund.db", BusyTimeout: 2 * time.Second})
	assert.True(t, strings.HasPrefix(dsn, "data/crowdfund.db?"))
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.Contains(t, dsn, "busy_timeout%282000%29")
}

func TestOpenSQLite_MigratesOnce(t *testing.T) {
	ctx := context.Background()
	cfg := config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "crowdfund.db")}

	db, err := OpenSQLite(ctx, cfg)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 2, n)
	_, err = db.ExecContext(ctx, "INSERT INTO host_storage (key, value, updated_at) VALUES ('k', x'01', 0)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM host_storage").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), config.SQLiteConfig{Path: "  "})
	assert.Error(t, err)
}
