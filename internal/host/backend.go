package host

import (
	"context"
	"errors"
)

// ErrTxDone is returned when a finished transaction is used.
var ErrTxDone = errors.New("transaction already finished")

// ErrReadOnly is returned by Set on a read-only transaction.
var ErrReadOnly = errors.New("transaction is read-only")

// Tx is one backend transaction.
type Tx interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxMode selects how a transaction is opened.
type TxMode int

const (
	// ReadWrite transactions are serialized against each other.
	ReadWrite TxMode = iota
	// ReadOnly transactions see a consistent snapshot and cannot write.
	ReadOnly
)

// Backend is a transactional key-value store.
type Backend interface {
	Begin(ctx context.Context, mode TxMode) (Tx, error)
	Ping(ctx context.Context) error
	Name() string
}
