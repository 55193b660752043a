package campaign

import (
	"context"
	"fmt"
	"math/big"

	"ezcrow.dev/crowdfund/internal/pkg/amount"
)

// Options tunes behaviour left open by the contract interface.
type Options struct {
	// RejectReinitialize makes a second Initialize fail with
	// ErrAlreadyInitialized instead of overwriting the campaign.
	RejectReinitialize bool
}

// Contract is the campaign state engine. It is stateless between calls and
// safe for concurrent use; all state lives in the Env's storage.
type Contract struct {
	opts Options
}

// New creates a Contract.
func New(opts Options) *Contract {
	return &Contract{opts: opts}
}

// Initialize creates the campaign. Goal sign and deadline are not validated.
func (c *Contract) Initialize(ctx context.Context, env Env, owner Address, goal amount.Int, deadline uint64, token Address, category string) error {
	if err := requireSigner(env.Auth(), owner); err != nil {
		return err
	}
	if c.opts.RejectReinitialize {
		cur, err := load(ctx, env.Storage())
		if err != nil {
			return err
		}
		if cur.Initialized {
			return ErrAlreadyInitialized
		}
	}
	return fresh(owner, goal, deadline, token, category).store(ctx, env.Storage())
}

// Donate moves amt of the campaign token from donor into contract custody
// and records the contribution. The transfer happens before any state is
// written.
func (c *Contract) Donate(ctx context.Context, env Env, donor Address, amt amount.Int) error {
	if err := requireSigner(env.Auth(), donor); err != nil {
		return err
	}
	s, err := load(ctx, env.Storage())
	if err != nil {
		return err
	}
	if !s.Initialized {
		return ErrNotInitialized
	}
	if now := env.Ledger().Timestamp(); now > s.Deadline {
		return fmt.Errorf("%w: ledger time %d is past deadline %d", ErrCampaignEnded, now, s.Deadline)
	}
	if amt.Sign() <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amt)
	}

	raised, err := s.Raised.Add(amt)
	if err != nil {
		return fmt.Errorf("%w: total raised: %v", ErrAmountOverflow, err)
	}
	entry, err := s.Donations[donor].Add(amt)
	if err != nil {
		return fmt.Errorf("%w: contribution of %s: %v", ErrAmountOverflow, donor, err)
	}

	self := env.CurrentContractAddress()
	if err := env.Token(s.Token).Transfer(ctx, donor, self, amt); err != nil {
		return &TransferError{Token: s.Token, From: donor, To: self, Amount: amt, Err: err}
	}

	s.Raised = raised
	s.Donations[donor] = entry
	return s.store(ctx, env.Storage())
}

// PostUpdate appends an owner update.
func (c *Contract) PostUpdate(ctx context.Context, env Env, owner Address, text string) error {
	s, err := c.ownerState(ctx, env, owner)
	if err != nil {
		return err
	}
	s.Updates = append(s.Updates, text)
	s.UpdateCount = uint32(len(s.Updates))
	return s.store(ctx, env.Storage())
}

// AddComment appends a comment from any signed address.
func (c *Contract) AddComment(ctx context.Context, env Env, commenter Address, text string) error {
	if err := requireSigner(env.Auth(), commenter); err != nil {
		return err
	}
	s, err := load(ctx, env.Storage())
	if err != nil {
		return err
	}
	if !s.Initialized {
		return ErrNotInitialized
	}
	s.Comments = append(s.Comments, text)
	s.CommentCount = uint32(len(s.Comments))
	return s.store(ctx, env.Storage())
}

// AddMilestone appends an owner milestone. Milestones have no counter.
func (c *Contract) AddMilestone(ctx context.Context, env Env, owner Address, text string) error {
	s, err := c.ownerState(ctx, env, owner)
	if err != nil {
		return err
	}
	s.Milestones = append(s.Milestones, text)
	return s.store(ctx, env.Storage())
}

func (c *Contract) ownerState(ctx context.Context, env Env, caller Address) (*State, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return nil, err
	}
	if authz := authorizeOwner(env.Auth(), s, caller); !authz.Allowed() {
		return nil, authz.Err()
	}
	return s, nil
}

// TotalRaised returns the amount raised so far, 0 when unset.
func (c *Contract) TotalRaised(ctx context.Context, env Env) (amount.Int, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return amount.Zero, err
	}
	return s.Raised, nil
}

// Donation returns donor's cumulative contribution, 0 when absent.
func (c *Contract) Donation(ctx context.Context, env Env, donor Address) (amount.Int, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return amount.Zero, err
	}
	return s.Donations[donor], nil
}

// IsInitialized reports whether Initialize has run.
func (c *Contract) IsInitialized(ctx context.Context, env Env) (bool, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return false, err
	}
	return s.Initialized, nil
}

// Category returns the campaign category or DefaultCategory.
func (c *Contract) Category(ctx context.Context, env Env) (string, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return "", err
	}
	if !s.categorySet {
		return DefaultCategory, nil
	}
	return s.Category, nil
}

// Updates returns owner updates in posting order.
func (c *Contract) Updates(ctx context.Context, env Env) ([]string, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return nil, err
	}
	return nonNil(s.Updates), nil
}

// UpdateCount returns the number of updates.
func (c *Contract) UpdateCount(ctx context.Context, env Env) (uint32, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return 0, err
	}
	return s.UpdateCount, nil
}

// Comments returns comments in posting order.
func (c *Contract) Comments(ctx context.Context, env Env) ([]string, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return nil, err
	}
	return nonNil(s.Comments), nil
}

// CommentCount returns the number of comments.
func (c *Contract) CommentCount(ctx context.Context, env Env) (uint32, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return 0, err
	}
	return s.CommentCount, nil
}

// Milestones returns milestones in posting order.
func (c *Contract) Milestones(ctx context.Context, env Env) ([]string, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return nil, err
	}
	return nonNil(s.Milestones), nil
}

// ProgressPercentage returns floor(raised*100/goal) clamped to [0,100].
// A stored goal of 0 yields 0; a missing goal is treated as 1.
func (c *Contract) ProgressPercentage(ctx context.Context, env Env) (uint32, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return 0, err
	}
	goal := s.Goal
	if !s.goalSet {
		goal = amount.New(1)
	}
	return percentage(s.Raised, goal), nil
}

var hundred = big.NewInt(100)

func percentage(raised, goal amount.Int) uint32 {
	if goal.IsZero() {
		return 0
	}
	pct := new(big.Int).Mul(raised.Big(), hundred)
	pct.Quo(pct, goal.Big())
	switch {
	case pct.Sign() < 0:
		return 0
	case pct.Cmp(hundred) > 0:
		return 100
	default:
		return uint32(pct.Uint64())
	}
}

// IsActive reports whether the ledger time is at or before the deadline.
func (c *Contract) IsActive(ctx context.Context, env Env) (bool, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return false, err
	}
	return env.Ledger().Timestamp() <= s.Deadline, nil
}

// Stats keys.
const (
	StatRaised   = "raised"
	StatGoal     = "goal"
	StatDonors   = "donors"
	StatUpdates  = "updates"
	StatComments = "comments"
)

// Stats is the campaign summary keyed by the Stat* labels.
type Stats map[string]amount.Int

// Stats computes the summary from current storage. Missing goal reads as 0.
func (c *Contract) Stats(ctx context.Context, env Env) (Stats, error) {
	s, err := load(ctx, env.Storage())
	if err != nil {
		return nil, err
	}
	return Stats{
		StatRaised:   s.Raised,
		StatGoal:     s.Goal,
		StatDonors:   amount.New(int64(s.DonorCount())),
		StatUpdates:  amount.New(int64(s.UpdateCount)),
		StatComments: amount.New(int64(s.CommentCount)),
	}, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
