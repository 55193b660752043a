package usecase

import (
	"context"
	"errors"
	"sync"

	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/pkg/tracing"
)

// Dashboard is everything the campaign page renders.
type Dashboard struct {
	Category   string         `json:"category"`
	Updates    []string       `json:"updates"`
	Comments   []string       `json:"comments"`
	Milestones []string       `json:"milestones"`
	Stats      campaign.Stats `json:"stats"`
	Progress   uint32         `json:"progress"`
	Active     bool           `json:"active"`
}

// Dashboard runs the seven dashboard reads concurrently, each in its own
// read transaction. Any failed read fails the whole call.
func (s *ContractService) Dashboard(ctx context.Context) (*Dashboard, error) {
	ctx, span := tracing.Tracer().Start(ctx, "contract.dashboard")
	defer span.End()

	var (
		d    Dashboard
		mu   sync.Mutex
		errs []error
	)
	reads := []func(context.Context) error{
		func(ctx context.Context) (err error) { d.Category, err = s.Category(ctx); return },
		func(ctx context.Context) (err error) { d.Updates, err = s.Updates(ctx); return },
		func(ctx context.Context) (err error) { d.Comments, err = s.Comments(ctx); return },
		func(ctx context.Context) (err error) { d.Milestones, err = s.Milestones(ctx); return },
		func(ctx context.Context) (err error) { d.Stats, err = s.Stats(ctx); return },
		func(ctx context.Context) (err error) { d.Progress, err = s.ProgressPercentage(ctx); return },
		func(ctx context.Context) (err error) { d.Active, _, err = s.IsActive(ctx); return },
	}

	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	if s.pools == nil {
		for _, read := range reads {
			if err := read(ctx); err != nil {
				fail(err)
			}
		}
	} else {
		var wg sync.WaitGroup
		for _, read := range reads {
			wg.Add(1)
			task := func(context.Context) {
				defer wg.Done()
				if err := read(ctx); err != nil {
					fail(err)
				}
			}
			// A queued task must run so wg is released; the read itself
			// still observes ctx.
			if err := s.pools.General.Submit(context.WithoutCancel(ctx), task); err != nil {
				wg.Done()
				fail(err)
			}
		}
		wg.Wait()
	}

	if len(errs) > 0 {
		span.RecordError(errs[0])
		return nil, errors.Join(errs...)
	}
	return &d, nil
}
