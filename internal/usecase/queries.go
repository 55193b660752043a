package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/pkg/amount"
	"ezcrow.dev/crowdfund/internal/pkg/tracing"
)

// query runs fn in a read-only invocation under its own span.
func query[T any](ctx context.Context, s *ContractService, name string, fn func(context.Context, *host.Env) (T, error)) (T, error) {
	out, _, err := queryAt(ctx, s, name, fn)
	return out, err
}

// queryAt is query that also returns the ledger time fn observed.
func queryAt[T any](ctx context.Context, s *ContractService, name string, fn func(context.Context, *host.Env) (T, error)) (T, uint64, error) {
	ctx, span := tracing.Tracer().Start(ctx, "contract."+name)
	defer span.End()

	var out T
	rcpt, err := s.runtime.Query(ctx, func(ctx context.Context, env *host.Env) error {
		var err error
		out, err = fn(ctx, env)
		return err
	})
	span.SetAttributes(attribute.Int64("contract.ledger_time", int64(rcpt.LedgerTime)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ErrorCode(err))
		var zero T
		return zero, 0, err
	}
	return out, rcpt.LedgerTime, nil
}

// TotalRaised returns the campaign total.
func (s *ContractService) TotalRaised(ctx context.Context) (amount.Int, error) {
	return query(ctx, s, "get_total_raised", func(ctx context.Context, env *host.Env) (amount.Int, error) {
		return s.contract.TotalRaised(ctx, env)
	})
}

// Donation returns donor's cumulative contribution.
func (s *ContractService) Donation(ctx context.Context, donor campaign.Address) (amount.Int, error) {
	return query(ctx, s, "get_donation", func(ctx context.Context, env *host.Env) (amount.Int, error) {
		return s.contract.Donation(ctx, env, donor)
	})
}

// IsInitialized reports whether the campaign has been initialized.
func (s *ContractService) IsInitialized(ctx context.Context) (bool, error) {
	return query(ctx, s, "get_is_already_init", func(ctx context.Context, env *host.Env) (bool, error) {
		return s.contract.IsInitialized(ctx, env)
	})
}

// Category returns the campaign category.
func (s *ContractService) Category(ctx context.Context) (string, error) {
	return query(ctx, s, "get_category", func(ctx context.Context, env *host.Env) (string, error) {
		return s.contract.Category(ctx, env)
	})
}

// Updates returns owner updates in posting order.
func (s *ContractService) Updates(ctx context.Context) ([]string, error) {
	return query(ctx, s, "get_updates", func(ctx context.Context, env *host.Env) ([]string, error) {
		return s.contract.Updates(ctx, env)
	})
}

// UpdateCount returns the number of updates.
func (s *ContractService) UpdateCount(ctx context.Context) (uint32, error) {
	return query(ctx, s, "get_update_count", func(ctx context.Context, env *host.Env) (uint32, error) {
		return s.contract.UpdateCount(ctx, env)
	})
}

// Comments returns comments in posting order.
func (s *ContractService) Comments(ctx context.Context) ([]string, error) {
	return query(ctx, s, "get_comments", func(ctx context.Context, env *host.Env) ([]string, error) {
		return s.contract.Comments(ctx, env)
	})
}

// CommentCount returns the number of comments.
func (s *ContractService) CommentCount(ctx context.Context) (uint32, error) {
	return query(ctx, s, "get_comment_count", func(ctx context.Context, env *host.Env) (uint32, error) {
		return s.contract.CommentCount(ctx, env)
	})
}

// Milestones returns milestones in posting order.
func (s *ContractService) Milestones(ctx context.Context) ([]string, error) {
	return query(ctx, s, "get_milestones", func(ctx context.Context, env *host.Env) ([]string, error) {
		return s.contract.Milestones(ctx, env)
	})
}

// ProgressPercentage returns the funding progress in whole percent.
func (s *ContractService) ProgressPercentage(ctx context.Context) (uint32, error) {
	return query(ctx, s, "get_progress_percentage", func(ctx context.Context, env *host.Env) (uint32, error) {
		return s.contract.ProgressPercentage(ctx, env)
	})
}

// IsActive reports whether donations are still accepted, along with the
// ledger time the answer was computed at.
func (s *ContractService) IsActive(ctx context.Context) (bool, uint64, error) {
	return queryAt(ctx, s, "is_campaign_active", func(ctx context.Context, env *host.Env) (bool, error) {
		return s.contract.IsActive(ctx, env)
	})
}

// Stats returns the campaign summary.
func (s *ContractService) Stats(ctx context.Context) (campaign.Stats, error) {
	return query(ctx, s, "get_campaign_stats", func(ctx context.Context, env *host.Env) (campaign.Stats, error) {
		return s.contract.Stats(ctx, env)
	})
}

// Balance returns addr's balance of the donation asset.
func (s *ContractService) Balance(ctx context.Context, addr campaign.Address) (amount.Int, error) {
	return query(ctx, s, "token_balance", func(ctx context.Context, env *host.Env) (amount.Int, error) {
		return env.Asset(s.token).Balance(ctx, addr)
	})
}
