package audit

import (
	"context"
	"time"
)

// Store persists journal entries.
type Store interface {
	// Append links e to the current head, stores it and returns it sealed.
	Append(ctx context.Context, e Entry) (Entry, error)
	// List returns up to limit entries, newest first.
	List(ctx context.Context, limit int) ([]Entry, error)
	// Scan calls fn for every entry, oldest first.
	Scan(ctx context.Context, fn func(Entry) error) error
	// DeleteBefore removes entries created before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
