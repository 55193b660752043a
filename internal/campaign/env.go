package campaign

import (
	"context"

	"ezcrow.dev/crowdfund/internal/pkg/amount"
)

// Storage is the contract instance key-value store for one invocation.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Authenticator checks the invocation's signer set.
type Authenticator interface {
	// RequireAuth fails unless addr signed the current invocation.
	RequireAuth(addr Address) error
}

// Ledger exposes the host clock.
type Ledger interface {
	// Timestamp returns the ledger close time in unix seconds.
	Timestamp() uint64
}

// TokenClient moves units of one asset.
type TokenClient interface {
	Transfer(ctx context.Context, from, to Address, amt amount.Int) error
}

// Env is everything the host provides to a single invocation.
type Env interface {
	Storage() Storage
	Auth() Authenticator
	Ledger() Ledger
	Token(asset Address) TokenClient
	CurrentContractAddress() Address
}
