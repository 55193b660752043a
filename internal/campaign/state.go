package campaign

import (
	"context"
	"encoding/json"
	"fmt"

	"ezcrow.dev/crowdfund/internal/pkg/amount"
)

// Instance storage keys, one per persisted field.
const (
	keyGoal       = "goal"
	keyDeadline   = "deadline"
	keyRaised     = "raised"
	keyDonations  = "donations"
	keyOwner      = "owner"
	keyToken      = "xlm_addr"
	keyInitFlag   = "is_init"
	keyCategory   = "category"
	keyUpdates    = "updates"
	keyComments   = "comments"
	keyMilestones = "mileston"
	keyUpdateCnt  = "up_count"
	keyCommentCnt = "cm_count"
)

// DefaultCategory is reported when no category was stored.
const DefaultCategory = "Uncategorized"

// State is the campaign aggregate as loaded from instance storage.
type State struct {
	Owner       Address
	Goal        amount.Int
	Deadline    uint64
	Token       Address
	Category    string
	Raised      amount.Int
	Initialized bool

	Donations  map[Address]amount.Int
	Updates    []string
	Comments   []string
	Milestones []string

	UpdateCount  uint32
	CommentCount uint32

	goalSet     bool
	categorySet bool
}

// fresh returns the state produced by Initialize.
func fresh(owner Address, goal amount.Int, deadline uint64, token Address, category string) *State {
	return &State{
		Owner:       owner,
		Goal:        goal,
		Deadline:    deadline,
		Token:       token,
		Category:    category,
		Raised:      amount.Zero,
		Initialized: true,
		Donations:   map[Address]amount.Int{},
		Updates:     []string{},
		Comments:    []string{},
		Milestones:  []string{},
		goalSet:     true,
		categorySet: true,
	}
}

// load reads every field, substituting read defaults for missing keys.
func load(ctx context.Context, st Storage) (*State, error) {
	s := &State{Donations: map[Address]amount.Int{}}

	fields := []struct {
		key    string
		target any
		seen   *bool
	}{
		{keyOwner, &s.Owner, nil},
		{keyGoal, &s.Goal, &s.goalSet},
		{keyDeadline, &s.Deadline, nil},
		{keyToken, &s.Token, nil},
		{keyCategory, &s.Category, &s.categorySet},
		{keyRaised, &s.Raised, nil},
		{keyInitFlag, &s.Initialized, nil},
		{keyDonations, &s.Donations, nil},
		{keyUpdates, &s.Updates, nil},
		{keyComments, &s.Comments, nil},
		{keyMilestones, &s.Milestones, nil},
		{keyUpdateCnt, &s.UpdateCount, nil},
		{keyCommentCnt, &s.CommentCount, nil},
	}
	for _, f := range fields {
		raw, ok, err := st.Get(ctx, f.key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.key, err)
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.target); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrCorruptState, f.key, err)
		}
		if f.seen != nil {
			*f.seen = true
		}
	}
	if s.Donations == nil {
		s.Donations = map[Address]amount.Int{}
	}
	return s, nil
}

// check verifies the aggregate invariants that must hold before a store.
func (s *State) check() error {
	if int(s.UpdateCount) != len(s.Updates) {
		return fmt.Errorf("%w: update counter %d, log length %d", ErrCorruptState, s.UpdateCount, len(s.Updates))
	}
	if int(s.CommentCount) != len(s.Comments) {
		return fmt.Errorf("%w: comment counter %d, log length %d", ErrCorruptState, s.CommentCount, len(s.Comments))
	}
	if s.Raised.Sign() < 0 {
		return fmt.Errorf("%w: negative total raised %s", ErrCorruptState, s.Raised)
	}
	sum := amount.Zero
	for donor, v := range s.Donations {
		if v.Sign() <= 0 {
			return fmt.Errorf("%w: non-positive contribution %s for %s", ErrCorruptState, v, donor)
		}
		var err error
		if sum, err = sum.Add(v); err != nil {
			return fmt.Errorf("%w: contribution sum: %v", ErrCorruptState, err)
		}
	}
	if !sum.Equal(s.Raised) {
		return fmt.Errorf("%w: total raised %s, contributions sum %s", ErrCorruptState, s.Raised, sum)
	}
	return nil
}

// store writes every field after checking invariants.
func (s *State) store(ctx context.Context, st Storage) error {
	if err := s.check(); err != nil {
		return err
	}

	fields := []struct {
		key   string
		value any
	}{
		{keyOwner, s.Owner},
		{keyGoal, s.Goal},
		{keyDeadline, s.Deadline},
		{keyRaised, s.Raised},
		{keyToken, s.Token},
		{keyCategory, s.Category},
		{keyInitFlag, s.Initialized},
		{keyDonations, s.Donations},
		{keyUpdates, s.Updates},
		{keyComments, s.Comments},
		{keyMilestones, s.Milestones},
		{keyUpdateCnt, s.UpdateCount},
		{keyCommentCnt, s.CommentCount},
	}
	for _, f := range fields {
		raw, err := json.Marshal(f.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.key, err)
		}
		if err := st.Set(ctx, f.key, raw); err != nil {
			return fmt.Errorf("write %s: %w", f.key, err)
		}
	}
	return nil
}

// DonorCount is the number of distinct contributors.
func (s *State) DonorCount() int { return len(s.Donations) }
