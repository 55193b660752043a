package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/pkg/logger"
	"ezcrow.dev/crowdfund/internal/pkg/worker"
)

// Journal records invocations into a Store.
type Journal struct {
	store Store
	pools *worker.Pools
	now   func() time.Time
}

// NewJournal creates a Journal. With nil pools, Submit writes synchronously.
// A nil now defaults to time.Now.
func NewJournal(store Store, pools *worker.Pools, now func() time.Time) *Journal {
	if now == nil {
		now = time.Now
	}
	return &Journal{store: store, pools: pools, now: now}
}

// Store returns the underlying store.
func (j *Journal) Store() Store {
	return j.store
}

// Append seals rec and writes it synchronously.
func (j *Journal) Append(ctx context.Context, rec Record) (Entry, error) {
	e, err := newEntry(rec, j.now())
	if err != nil {
		return Entry{}, err
	}
	return j.store.Append(ctx, e)
}

// Submit writes rec in the background on the journal pool. Failures are
// logged.
func (j *Journal) Submit(rec Record) {
	write := func(ctx context.Context) {
		if _, err := j.Append(ctx, rec); err != nil {
			logger.Error("Failed to append journal entry",
				zap.String("operation", rec.Operation),
				zap.String("outcome", string(rec.Outcome)),
				zap.Error(err),
			)
		}
	}
	if j.pools == nil {
		write(context.Background())
		return
	}
	if err := j.pools.SubmitDetached(worker.PoolJournal, write); err != nil {
		logger.Warn("Journal pool rejected entry, writing inline",
			zap.String("operation", rec.Operation),
			zap.Error(err),
		)
		write(context.Background())
	}
}

// List returns up to limit entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	return j.store.List(ctx, limit)
}

// Verify recomputes every hash and checks that each entry links to its
// predecessor. The oldest surviving entry is trusted as the anchor.
func (j *Journal) Verify(ctx context.Context) (Report, error) {
	var (
		rep     Report
		prev    string
		lastSeq int64
	)
	rep.Valid = true
	err := j.store.Scan(ctx, func(e Entry) error {
		if rep.Checked > 0 {
			if e.Seq <= lastSeq {
				return rep.fail(e, fmt.Sprintf("sequence %d does not follow %d", e.Seq, lastSeq))
			}
			if e.PrevHash != prev {
				return rep.fail(e, "prev_hash does not match preceding entry")
			}
		}
		want, err := ChainHash(e, e.PrevHash)
		if err != nil {
			return err
		}
		if want != e.Hash {
			return rep.fail(e, "hash mismatch")
		}
		rep.Checked++
		rep.Head = e.Hash
		prev = e.Hash
		lastSeq = e.Seq
		return nil
	})
	if err != nil && !errors.Is(err, ErrChainBroken) {
		return Report{}, fmt.Errorf("verify journal: %w", err)
	}
	return rep, nil
}

func (r *Report) fail(e Entry, reason string) error {
	r.Valid = false
	r.BrokenSeq = e.Seq
	r.Reason = reason
	return ErrChainBroken
}
