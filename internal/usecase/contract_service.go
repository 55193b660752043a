// Package usecase exposes the crowdfunding contract operations to the API
// and command layers.
//
// Every write runs inside one host invocation: its transaction commits only
// when the engine succeeds. The journal entry and domain event for an
// invocation are emitted after the outcome is known, so neither can observe
// state that was rolled back.
//
// Import Path: ezcrow.dev/crowdfund/internal/usecase
package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/audit"
	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/domain"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/pkg/amount"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
	"ezcrow.dev/crowdfund/internal/pkg/tracing"
	"ezcrow.dev/crowdfund/internal/pkg/worker"
)

// Operation names used in spans, logs and the journal.
const (
	OpInitialize   = "initialize"
	OpDonate       = "donate"
	OpPostUpdate   = "post_update"
	OpAddComment   = "add_comment"
	OpAddMilestone = "add_milestone"
	OpMint         = "mint"
)

// ContractService runs contract operations on a host runtime.
type ContractService struct {
	runtime  *host.Runtime
	contract *campaign.Contract
	token    campaign.Address
	journal  *audit.Journal
	events   *domain.EventDispatcher
	pools    *worker.Pools
}

// ContractServiceDeps holds the collaborators of a ContractService.
// Journal, Events and Pools are optional.
type ContractServiceDeps struct {
	Runtime  *host.Runtime
	Contract *campaign.Contract
	// Token is the asset donations are paid in.
	Token   campaign.Address
	Journal *audit.Journal
	Events  *domain.EventDispatcher
	Pools   *worker.Pools
}

// NewContractService creates a ContractService.
func NewContractService(deps ContractServiceDeps) *ContractService {
	return &ContractService{
		runtime:  deps.Runtime,
		contract: deps.Contract,
		token:    deps.Token,
		journal:  deps.Journal,
		events:   deps.Events,
		pools:    deps.Pools,
	}
}

// ContractAddress returns the hosted contract address.
func (s *ContractService) ContractAddress() campaign.Address {
	return s.runtime.Contract()
}

// TokenAddress returns the donation asset address.
func (s *ContractService) TokenAddress() campaign.Address {
	return s.token
}

// Ping checks that the storage backend is reachable.
func (s *ContractService) Ping(ctx context.Context) error {
	return s.runtime.Backend().Ping(ctx)
}

// StorageName names the storage backend.
func (s *ContractService) StorageName() string {
	return s.runtime.Backend().Name()
}

// LedgerTime returns the current ledger timestamp.
func (s *ContractService) LedgerTime() uint64 {
	return s.runtime.Now()
}

// Initialize configures the campaign. The token is always the configured
// donation asset.
func (s *ContractService) Initialize(ctx context.Context, signers host.SignerSet, owner campaign.Address, goal amount.Int, deadline uint64, category string) error {
	return s.write(ctx, OpInitialize, owner, signers, domain.EventCampaignInitialized, domain.AggregateCampaign,
		func(ctx context.Context, env *host.Env) (eventPayload, error) {
			if err := s.contract.Initialize(ctx, env, owner, goal, deadline, s.token, category); err != nil {
				return nil, err
			}
			stored, err := s.contract.Category(ctx, env)
			if err != nil {
				return nil, err
			}
			return domain.CampaignInitializedPayload{
				Owner:    string(owner),
				Goal:     goal,
				Deadline: deadline,
				Token:    string(s.token),
				Category: stored,
			}, nil
		})
}

// Donate transfers amt from donor to the contract and records it. It
// returns the campaign total after the donation.
func (s *ContractService) Donate(ctx context.Context, signers host.SignerSet, donor campaign.Address, amt amount.Int) (amount.Int, error) {
	total := amount.Zero
	err := s.write(ctx, OpDonate, donor, signers, domain.EventDonationRecorded, domain.AggregateCampaign,
		func(ctx context.Context, env *host.Env) (eventPayload, error) {
			if err := s.contract.Donate(ctx, env, donor, amt); err != nil {
				return nil, err
			}
			var err error
			if total, err = s.contract.TotalRaised(ctx, env); err != nil {
				return nil, err
			}
			return domain.DonationPayload{Donor: string(donor), Amount: amt, TotalRaised: total}, nil
		})
	if err != nil {
		return amount.Zero, err
	}
	return total, nil
}

// PostUpdate appends an owner update and returns the new update count.
func (s *ContractService) PostUpdate(ctx context.Context, signers host.SignerSet, owner campaign.Address, text string) (uint32, error) {
	var count uint32
	err := s.write(ctx, OpPostUpdate, owner, signers, domain.EventUpdatePosted, domain.AggregateCampaign,
		func(ctx context.Context, env *host.Env) (eventPayload, error) {
			if err := s.contract.PostUpdate(ctx, env, owner, text); err != nil {
				return nil, err
			}
			var err error
			if count, err = s.contract.UpdateCount(ctx, env); err != nil {
				return nil, err
			}
			return domain.TextPayload{Author: string(owner), Text: text, Index: int(count) - 1}, nil
		})
	return count, err
}

// AddComment appends a comment and returns the new comment count.
func (s *ContractService) AddComment(ctx context.Context, signers host.SignerSet, commenter campaign.Address, text string) (uint32, error) {
	var count uint32
	err := s.write(ctx, OpAddComment, commenter, signers, domain.EventCommentAdded, domain.AggregateCampaign,
		func(ctx context.Context, env *host.Env) (eventPayload, error) {
			if err := s.contract.AddComment(ctx, env, commenter, text); err != nil {
				return nil, err
			}
			var err error
			if count, err = s.contract.CommentCount(ctx, env); err != nil {
				return nil, err
			}
			return domain.TextPayload{Author: string(commenter), Text: text, Index: int(count) - 1}, nil
		})
	return count, err
}

// AddMilestone appends an owner milestone and returns the number of
// milestones.
func (s *ContractService) AddMilestone(ctx context.Context, signers host.SignerSet, owner campaign.Address, text string) (int, error) {
	var n int
	err := s.write(ctx, OpAddMilestone, owner, signers, domain.EventMilestoneAdded, domain.AggregateCampaign,
		func(ctx context.Context, env *host.Env) (eventPayload, error) {
			if err := s.contract.AddMilestone(ctx, env, owner, text); err != nil {
				return nil, err
			}
			milestones, err := s.contract.Milestones(ctx, env)
			if err != nil {
				return nil, err
			}
			n = len(milestones)
			return domain.TextPayload{Author: string(owner), Text: text, Index: n - 1}, nil
		})
	return n, err
}

// Mint credits amt of the donation asset to to and returns the new
// balance. Access control is the caller's responsibility.
func (s *ContractService) Mint(ctx context.Context, operator string, to campaign.Address, amt amount.Int) (amount.Int, error) {
	balance := amount.Zero
	err := s.write(ctx, OpMint, campaign.Address(operator), host.SignerSet{}, domain.EventTokenMinted, domain.AggregateToken,
		func(ctx context.Context, env *host.Env) (eventPayload, error) {
			var err error
			if balance, err = env.Asset(s.token).Mint(ctx, to, amt); err != nil {
				return nil, err
			}
			return domain.MintPayload{To: string(to), Amount: amt, Balance: balance}, nil
		})
	if err != nil {
		return amount.Zero, err
	}
	return balance, nil
}

// eventPayload is implemented by every domain payload type.
type eventPayload interface {
	ToJSON() ([]byte, error)
}

// write runs fn in a read-write invocation, then journals the outcome and
// dispatches the matching event.
func (s *ContractService) write(
	ctx context.Context,
	op string,
	caller campaign.Address,
	signers host.SignerSet,
	eventType domain.EventType,
	aggregateType string,
	fn func(context.Context, *host.Env) (eventPayload, error),
) error {
	ctx, span := tracing.Tracer().Start(ctx, "contract."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("contract.operation", op),
			attribute.String("contract.caller", string(caller)),
			attribute.String("contract.address", string(s.runtime.Contract())),
		),
	)
	defer span.End()

	log := logger.ForInvocation(logger.RequestID(ctx), op, string(caller))
	start := time.Now()

	var payload eventPayload
	rcpt, err := s.runtime.Invoke(ctx, signers, func(ctx context.Context, env *host.Env) error {
		var err error
		payload, err = fn(ctx, env)
		return err
	})
	span.SetAttributes(attribute.Int64("contract.ledger_time", int64(rcpt.LedgerTime)))

	rec := audit.Record{
		Operation:  op,
		Caller:     string(caller),
		Outcome:    audit.OutcomeOK,
		LedgerTime: rcpt.LedgerTime,
	}
	if err != nil {
		code := ErrorCode(err)
		rec.Outcome = audit.OutcomeFailed
		rec.ErrorCode = code
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		log.Info("Contract invocation rejected",
			zap.String("error_code", code),
			zap.Uint64("ledger_time", rcpt.LedgerTime),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		s.record(rec)
		failure := domain.FailurePayload{Operation: op, ErrorCode: code, Message: err.Error()}
		s.dispatch(ctx, domain.EventInvocationFailed, aggregateType, string(caller), rcpt.LedgerTime, failure)
		return err
	}

	log.Info("Contract invocation committed",
		zap.Uint64("ledger_time", rcpt.LedgerTime),
		zap.Duration("duration", time.Since(start)),
	)
	s.record(rec)
	s.dispatch(ctx, eventType, aggregateType, string(caller), rcpt.LedgerTime, payload)
	return nil
}

func (s *ContractService) record(rec audit.Record) {
	if s.journal == nil {
		return
	}
	s.journal.Submit(rec)
}

func (s *ContractService) dispatch(ctx context.Context, eventType domain.EventType, aggregateType, createdBy string, ledgerTime uint64, payload eventPayload) {
	if s.events == nil {
		return
	}
	var raw []byte
	if payload != nil {
		var err error
		if raw, err = payload.ToJSON(); err != nil {
			logger.Warn("Failed to encode event payload",
				zap.String("event_type", string(eventType)),
				zap.Error(err),
			)
		}
	}
	aggregateID := string(s.runtime.Contract())
	if aggregateType == domain.AggregateToken {
		aggregateID = string(s.token)
	}
	ev := domain.NewEvent(eventType, aggregateType, aggregateID, createdBy, ledgerTime, raw)
	// Handler failures are logged by the dispatcher and never reach the caller.
	_ = s.events.Dispatch(context.WithoutCancel(ctx), ev)
}
