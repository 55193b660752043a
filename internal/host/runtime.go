package host

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

// ErrContractPanic is returned when invoked code panics. The transaction
// is rolled back.
var ErrContractPanic = errors.New("contract panicked")

// Env is the per-invocation environment handed to contract code.
type Env struct {
	storage  *prefixStorage
	auth     SignerSet
	ledger   ledgerTime
	contract campaign.Address
	tx       Tx
	tokens   map[campaign.Address]*TokenLedger
}

var _ campaign.Env = (*Env)(nil)

func (e *Env) Storage() campaign.Storage { return e.storage }
func (e *Env) Auth() campaign.Authenticator { return e.auth }
func (e *Env) Ledger() campaign.Ledger { return e.ledger }
func (e *Env) CurrentContractAddress() campaign.Address { return e.contract }

// Token returns the ledger of asset as seen by the contract.
func (e *Env) Token(asset campaign.Address) campaign.TokenClient {
	return e.Asset(asset)
}

// Asset returns the full ledger of asset, including Mint and Balance.
func (e *Env) Asset(asset campaign.Address) *TokenLedger {
	if l, ok := e.tokens[asset]; ok {
		return l
	}
	l := &TokenLedger{asset: asset, storage: newPrefixStorage(e.tx, TokenPrefix(asset)), auth: e.auth}
	e.tokens[asset] = l
	return l
}

// Receipt describes a finished invocation.
type Receipt struct {
	// LedgerTime is the timestamp the invocation observed.
	LedgerTime uint64
	// Committed is true when the writes were persisted.
	Committed bool
}

// Runtime executes contract code against a Backend.
type Runtime struct {
	backend  Backend
	contract campaign.Address
	clock    Clock
}

// NewRuntime creates a Runtime for the contract instance at contract.
func NewRuntime(backend Backend, contract campaign.Address, clock Clock) *Runtime {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Runtime{backend: backend, contract: contract, clock: clock}
}

// Contract returns the hosted contract address.
func (r *Runtime) Contract() campaign.Address { return r.contract }

// Backend returns the underlying storage backend.
func (r *Runtime) Backend() Backend { return r.backend }

// Now returns the current ledger timestamp.
func (r *Runtime) Now() uint64 { return timestamp(r.clock).Timestamp() }

// Invoke runs fn in a read-write transaction. The transaction commits only
// if fn returns nil and does not panic.
func (r *Runtime) Invoke(ctx context.Context, signers SignerSet, fn func(context.Context, *Env) error) (Receipt, error) {
	return r.run(ctx, ReadWrite, signers, fn)
}

// Query runs fn in a read-only transaction that is always rolled back.
func (r *Runtime) Query(ctx context.Context, fn func(context.Context, *Env) error) (Receipt, error) {
	return r.run(ctx, ReadOnly, SignerSet{}, fn)
}

func (r *Runtime) run(ctx context.Context, mode TxMode, signers SignerSet, fn func(context.Context, *Env) error) (rcpt Receipt, err error) {
	tx, err := r.backend.Begin(ctx, mode)
	if err != nil {
		return rcpt, err
	}

	env := &Env{
		storage:  newPrefixStorage(tx, ContractPrefix(r.contract)),
		auth:     signers,
		ledger:   timestamp(r.clock),
		contract: r.contract,
		tx:       tx,
		tokens:   make(map[campaign.Address]*TokenLedger),
	}
	rcpt.LedgerTime = env.ledger.Timestamp()

	defer func() {
		if p := recover(); p != nil {
			logger.Error("Contract invocation panicked",
				zap.Any("panic", p),
				zap.ByteString("stack", debug.Stack()),
			)
			err = fmt.Errorf("%w: %v", ErrContractPanic, p)
		}
		if err != nil || mode == ReadOnly {
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
				logger.Warn("Invocation rollback failed", zap.Error(rbErr))
			}
		}
	}()

	if err = fn(ctx, env); err != nil {
		return rcpt, err
	}
	if mode == ReadOnly {
		return rcpt, nil
	}
	if err = tx.Commit(ctx); err != nil {
		return rcpt, err
	}
	rcpt.Committed = true
	return rcpt, nil
}
