package audit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the newest capacity entries in memory.
type MemoryStore struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	nextSeq  int64
	head     string
}

// NewMemoryStore creates a MemoryStore. Non-positive capacity means 1000.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryStore{capacity: capacity, nextSeq: 1}
}

func (s *MemoryStore) Append(_ context.Context, e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := seal(&e, s.head); err != nil {
		return Entry{}, err
	}
	e.Seq = s.nextSeq
	s.nextSeq++
	s.head = e.Hash
	s.entries = append(s.entries, e)
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = append([]Entry(nil), s.entries[over:]...)
	}
	return e, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]Entry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *MemoryStore) Scan(_ context.Context, fn func(Entry) error) error {
	s.mu.Lock()
	snapshot := append([]Entry(nil), s.entries...)
	s.mu.Unlock()

	for _, e := range snapshot {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for n < len(s.entries) && s.entries[n].CreatedAt.Before(cutoff) {
		n++
	}
	s.entries = append([]Entry(nil), s.entries[n:]...)
	return int64(n), nil
}
