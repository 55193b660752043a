package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// journalLockKey serializes appends so each entry links to the true head.
const journalLockKey int64 = 0x6a6f75726e616c // "journal"

// PostgresStore keeps entries in the invocation_log table. Statements are
// built with ent's dialect SQL builder.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, e Entry) (Entry, error) {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", journalLockKey); err != nil {
			return fmt.Errorf("lock journal: %w", err)
		}
		var head string
		query, args := pgQueries.head()
		err := tx.QueryRow(ctx, query, args...).Scan(&head)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("load journal head: %w", err)
		}
		if err := seal(&e, head); err != nil {
			return err
		}
		query, args = pgQueries.insert(
			e.ID, e.Operation, e.Caller, string(e.Outcome), e.ErrorCode,
			int64(e.LedgerTime), e.CreatedAt, e.PrevHash, e.Hash,
		)
		return tx.QueryRow(ctx, query, args...).Scan(&e.Seq)
	})
	if err != nil {
		return Entry{}, fmt.Errorf("append journal entry: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	query, args := pgQueries.newest(limit)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	return pgx.CollectRows(rows, scanPgEntry)
}

func (s *PostgresStore) Scan(ctx context.Context, fn func(Entry) error) error {
	query, args := pgQueries.ascending()
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("scan journal: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		e, err := scanPgEntry(rows)
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *PostgresStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args := pgQueries.deleteBefore(cutoff.UTC())
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune journal: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPgEntry(row pgx.CollectableRow) (Entry, error) {
	var (
		e          Entry
		id         uuid.UUID
		outcome    string
		ledgerTime int64
	)
	if err := row.Scan(&e.Seq, &id, &e.Operation, &e.Caller, &outcome, &e.ErrorCode,
		&ledgerTime, &e.CreatedAt, &e.PrevHash, &e.Hash); err != nil {
		return Entry{}, fmt.Errorf("scan journal entry: %w", err)
	}
	e.ID = id
	e.Outcome = Outcome(outcome)
	e.LedgerTime = uint64(ledgerTime)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}
