package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLiteStore keeps entries in the invocation_log table of a SQLite
// database opened with immediate transaction locking.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Append(ctx context.Context, e Entry) (Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var head string
	query, args := sqliteQueries.head()
	err = tx.QueryRowContext(ctx, query, args...).Scan(&head)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("load journal head: %w", err)
	}
	if err := seal(&e, head); err != nil {
		return Entry{}, err
	}
	query, args = sqliteQueries.insert(
		e.ID.String(), e.Operation, e.Caller, string(e.Outcome), e.ErrorCode,
		int64(e.LedgerTime), e.CreatedAt.UnixMilli(), e.PrevHash, e.Hash,
	)
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return Entry{}, fmt.Errorf("insert journal entry: %w", err)
	}
	if e.Seq, err = res.LastInsertId(); err != nil {
		return Entry{}, fmt.Errorf("journal sequence: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit journal entry: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	query, args := sqliteQueries.newest(limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanSQLiteEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Scan(ctx context.Context, fn func(Entry) error) error {
	query, args := sqliteQueries.ascending()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("scan journal: %w", err)
	}
	// Entries are buffered so fn may use the database: the handle has a
	// single connection.
	var all []Entry
	for rows.Next() {
		e, err := scanSQLiteEntry(rows)
		if err != nil {
			rows.Close()
			return err
		}
		all = append(all, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, e := range all {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args := sqliteQueries.deleteBefore(cutoff.UTC().UnixMilli())
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune journal: %w", err)
	}
	return res.RowsAffected()
}

func scanSQLiteEntry(rows *sql.Rows) (Entry, error) {
	var (
		e          Entry
		id         string
		outcome    string
		ledgerTime int64
		createdAt  int64
	)
	if err := rows.Scan(&e.Seq, &id, &e.Operation, &e.Caller, &outcome, &e.ErrorCode,
		&ledgerTime, &createdAt, &e.PrevHash, &e.Hash); err != nil {
		return Entry{}, fmt.Errorf("scan journal entry: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("parse journal entry id: %w", err)
	}
	e.ID = parsed
	e.Outcome = Outcome(outcome)
	e.LedgerTime = uint64(ledgerTime)
	e.CreatedAt = time.UnixMilli(createdAt).UTC()
	return e, nil
}
