package modules

import (
	"context"

	"github.com/riverqueue/river"

	"ezcrow.dev/crowdfund/internal/api/handlers"
	"ezcrow.dev/crowdfund/internal/audit"
	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/domain"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/usecase"
)

// CampaignModule wires the contract engine onto the host runtime.
type CampaignModule struct {
	infra    *Infrastructure
	runtime  *host.Runtime
	events   *domain.EventDispatcher
	contract *usecase.ContractService
}

// NewCampaignModule creates the contract service. A nil clock selects the
// system clock shifted by ledger.clock_offset.
func NewCampaignModule(infra *Infrastructure, journal *audit.Journal, clock host.Clock) *CampaignModule {
	cfg := infra.Config
	if clock == nil {
		clock = host.SystemClock{}
		if cfg.Ledger.ClockOffset != 0 {
			clock = host.OffsetClock{Base: host.SystemClock{}, Offset: cfg.Ledger.ClockOffset}
		}
	}

	events := domain.NewEventDispatcher()
	events.RegisterAll(domain.LogHandler)

	runtime := host.NewRuntime(infra.Backend, campaign.Address(cfg.Contract.Address), clock)
	svc := usecase.NewContractService(usecase.ContractServiceDeps{
		Runtime:  runtime,
		Contract: campaign.New(campaign.Options{RejectReinitialize: cfg.Contract.RejectReinitialize}),
		Token:    campaign.Address(cfg.Contract.TokenAddress),
		Journal:  journal,
		Events:   events,
		Pools:    infra.Pools,
	})

	return &CampaignModule{
		infra:    infra,
		runtime:  runtime,
		events:   events,
		contract: svc,
	}
}

func (m *CampaignModule) Name() string { return "campaign" }

// Contract returns the module's contract service.
func (m *CampaignModule) Contract() *usecase.ContractService { return m.contract }

// Events returns the dispatcher so callers can attach extra handlers.
func (m *CampaignModule) Events() *domain.EventDispatcher { return m.events }

func (m *CampaignModule) ContributeServerDeps(deps *handlers.ServerDeps) {
	if deps == nil {
		return
	}
	deps.Contract = m.contract
}

func (m *CampaignModule) RegisterWorkers(_ *river.Workers) {}

func (m *CampaignModule) Shutdown(context.Context) error { return nil }
