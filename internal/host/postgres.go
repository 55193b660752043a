package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend stores keys in the host_storage table. Write
// transactions take a transaction-scoped advisory lock so invocations are
// serialized across every process sharing the database.
type PostgresBackend struct {
	pool    *pgxpool.Pool
	lockKey int64
}

// NewPostgresBackend creates a backend over pool. lockKey identifies the
// contract instance for advisory locking.
func NewPostgresBackend(pool *pgxpool.Pool, lockKey int64) *PostgresBackend {
	return &PostgresBackend{pool: pool, lockKey: lockKey}
}

func (b *PostgresBackend) Name() string { return "postgres" }

func (b *PostgresBackend) Ping(ctx context.Context) error { return b.pool.Ping(ctx) }

func (b *PostgresBackend) Begin(ctx context.Context, mode TxMode) (Tx, error) {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	if mode == ReadOnly {
		opts = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	}
	tx, err := b.pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("begin postgres tx: %w", err)
	}
	if mode == ReadWrite {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", b.lockKey); err != nil {
			_ = tx.Rollback(ctx)
			return nil, fmt.Errorf("acquire invocation lock: %w", err)
		}
	}
	return &postgresTx{tx: tx, mode: mode}, nil
}

type postgresTx struct {
	tx   pgx.Tx
	mode TxMode
}

func (t *postgresTx) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := t.tx.QueryRow(ctx, "SELECT value FROM host_storage WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (t *postgresTx) Set(ctx context.Context, key string, value []byte) error {
	if t.mode == ReadOnly {
		return ErrReadOnly
	}
	_, err := t.tx.Exec(ctx, `
INSERT INTO host_storage (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (t *postgresTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return ErrTxDone
		}
		return fmt.Errorf("commit postgres tx: %w", err)
	}
	return nil
}

func (t *postgresTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback postgres tx: %w", err)
	}
	return nil
}
