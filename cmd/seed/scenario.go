package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/pkg/amount"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
	"ezcrow.dev/crowdfund/internal/usecase"
)

// seedOperator is recorded as the caller of faucet mints.
const seedOperator = "seed"

// Scenario is a scripted campaign history.
type Scenario struct {
	// Genesis is the ledger time, in unix seconds, the scenario starts at.
	Genesis  uint64       `yaml:"genesis"`
	Campaign CampaignSpec `yaml:"campaign"`
	Mints    []Mint       `yaml:"mints"`
	Steps    []Step       `yaml:"steps"`
}

// CampaignSpec holds the initialize arguments.
type CampaignSpec struct {
	Owner    string     `yaml:"owner"`
	Goal     amount.Int `yaml:"goal"`
	Deadline uint64     `yaml:"deadline"`
	Category string     `yaml:"category"`
}

// Mint credits a balance before the campaign starts.
type Mint struct {
	To     string     `yaml:"to"`
	Amount amount.Int `yaml:"amount"`
}

// Step is one invocation. At, when set, moves the ledger clock first.
type Step struct {
	At     uint64     `yaml:"at"`
	Op     string     `yaml:"op"`
	Caller string     `yaml:"caller"`
	Amount amount.Int `yaml:"amount"`
	Text   string     `yaml:"text"`
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Genesis == 0 {
		return errors.New("genesis is required")
	}
	if _, err := campaign.ParseAddress(s.Campaign.Owner); err != nil {
		return fmt.Errorf("campaign.owner: %w", err)
	}
	for i, m := range s.Mints {
		if _, err := campaign.ParseAddress(m.To); err != nil {
			return fmt.Errorf("mints[%d].to: %w", i, err)
		}
	}
	last := s.Genesis
	for i, st := range s.Steps {
		switch st.Op {
		case usecase.OpDonate, usecase.OpPostUpdate, usecase.OpAddComment, usecase.OpAddMilestone:
		default:
			return fmt.Errorf("steps[%d].op %q is not one of donate, post_update, add_comment, add_milestone", i, st.Op)
		}
		if _, err := campaign.ParseAddress(st.Caller); err != nil {
			return fmt.Errorf("steps[%d].caller: %w", i, err)
		}
		if st.At != 0 {
			if st.At < last {
				return fmt.Errorf("steps[%d].at %d moves the ledger backwards", i, st.At)
			}
			last = st.At
		}
	}
	return nil
}

// Apply replays the scenario against svc, moving clock as steps require.
// The first failing invocation stops the run.
func (s *Scenario) Apply(ctx context.Context, svc *usecase.ContractService, clock *host.ManualClock) error {
	clock.Set(time.Unix(int64(s.Genesis), 0))

	for i, m := range s.Mints {
		bal, err := svc.Mint(ctx, seedOperator, campaign.Address(m.To), m.Amount)
		if err != nil {
			return fmt.Errorf("mints[%d]: %w", i, err)
		}
		logger.Info("Seeded balance", zap.String("to", m.To), zap.String("balance", bal.String()))
	}

	owner := campaign.Address(s.Campaign.Owner)
	if err := svc.Initialize(ctx, host.NewSignerSet(owner), owner, s.Campaign.Goal, s.Campaign.Deadline, s.Campaign.Category); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	for i, st := range s.Steps {
		if st.At != 0 {
			clock.Set(time.Unix(int64(st.At), 0))
		}
		if err := applyStep(ctx, svc, st); err != nil {
			return fmt.Errorf("steps[%d] %s: %w", i, st.Op, err)
		}
	}
	return nil
}

func applyStep(ctx context.Context, svc *usecase.ContractService, st Step) error {
	caller := campaign.Address(st.Caller)
	signers := host.NewSignerSet(caller)

	var err error
	switch st.Op {
	case usecase.OpDonate:
		_, err = svc.Donate(ctx, signers, caller, st.Amount)
	case usecase.OpPostUpdate:
		_, err = svc.PostUpdate(ctx, signers, caller, st.Text)
	case usecase.OpAddComment:
		_, err = svc.AddComment(ctx, signers, caller, st.Text)
	case usecase.OpAddMilestone:
		_, err = svc.AddMilestone(ctx, signers, caller, st.Text)
	default:
		err = fmt.Errorf("unknown op %q", st.Op)
	}
	return err
}
