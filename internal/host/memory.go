package host

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// memoryLockWeight is the semaphore capacity. Readers take one unit,
// writers take all of it.
const memoryLockWeight = 1 << 20

// MemoryBackend keeps all data in process memory. Write transactions hold
// an exclusive lock until they finish; readers share it.
type MemoryBackend struct {
	lock *semaphore.Weighted
	data map[string][]byte
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		lock: semaphore.NewWeighted(memoryLockWeight),
		data: make(map[string][]byte),
	}
}

func lockWeight(mode TxMode) int64 {
	if mode == ReadOnly {
		return 1
	}
	return memoryLockWeight
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Ping(context.Context) error { return nil }

// Begin blocks until the lock for mode is available or ctx is done.
func (b *MemoryBackend) Begin(ctx context.Context, mode TxMode) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.lock.Acquire(ctx, lockWeight(mode)); err != nil {
		return nil, err
	}
	return &memoryTx{b: b, mode: mode, writes: make(map[string][]byte)}, nil
}

// Len returns the number of stored keys.
func (b *MemoryBackend) Len() int {
	_ = b.lock.Acquire(context.Background(), 1)
	defer b.lock.Release(1)
	return len(b.data)
}

type memoryTx struct {
	b      *MemoryBackend
	mode   TxMode
	writes map[string][]byte
	done   bool
}

func (t *memoryTx) Get(_ context.Context, key string) ([]byte, bool, error) {
	if t.done {
		return nil, false, ErrTxDone
	}
	if v, ok := t.writes[key]; ok {
		return clone(v), true, nil
	}
	v, ok := t.b.data[key]
	return clone(v), ok, nil
}

func (t *memoryTx) Set(_ context.Context, key string, value []byte) error {
	if t.done {
		return ErrTxDone
	}
	if t.mode == ReadOnly {
		return ErrReadOnly
	}
	t.writes[key] = clone(value)
	return nil
}

func (t *memoryTx) Commit(context.Context) error {
	if t.done {
		return ErrTxDone
	}
	for k, v := range t.writes {
		t.b.data[k] = v
	}
	t.finish()
	return nil
}

func (t *memoryTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *memoryTx) finish() {
	t.done = true
	t.writes = nil
	t.b.lock.Release(lockWeight(t.mode))
}

func clone(v []byte) []byte {
	if v == nil {
		return nil
	}
	return append([]byte(nil), v...)
}
