package host

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteBackend stores keys in the host_storage table of a SQLite database.
// The database handle must be opened with immediate transaction locking so
// that write transactions take the write lock at BEGIN.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend creates a backend over db.
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (b *SQLiteBackend) Name() string { return "sqlite" }

func (b *SQLiteBackend) Ping(ctx context.Context) error { return b.db.PingContext(ctx) }

func (b *SQLiteBackend) Begin(ctx context.Context, mode TxMode) (Tx, error) {
	tx, err := b.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: mode == ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin sqlite tx: %w", err)
	}
	return &sqliteTx{tx: tx, mode: mode}, nil
}

type sqliteTx struct {
	tx   *sql.Tx
	mode TxMode
}

func (t *sqliteTx) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := t.tx.QueryRowContext(ctx, "SELECT value FROM host_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (t *sqliteTx) Set(ctx context.Context, key string, value []byte) error {
	if t.mode == ReadOnly {
		return ErrReadOnly
	}
	_, err := t.tx.ExecContext(ctx, `
INSERT INTO host_storage (key, value, updated_at) VALUES (?, ?, unixepoch())
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (t *sqliteTx) Commit(context.Context) error {
	if err := t.tx.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return ErrTxDone
		}
		return fmt.Errorf("commit sqlite tx: %w", err)
	}
	return nil
}

func (t *sqliteTx) Rollback(context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback sqlite tx: %w", err)
	}
	return nil
}
