// Package app is the composition root. Bootstrap stays orchestration-only:
// modules own their wiring.
//
// Import Path: ezcrow.dev/crowdfund/internal/app
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/riverqueue/river"

	"ezcrow.dev/crowdfund/internal/api/handlers"
	"ezcrow.dev/crowdfund/internal/api/middleware"
	"ezcrow.dev/crowdfund/internal/app/modules"
	"ezcrow.dev/crowdfund/internal/config"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/infrastructure"
	"ezcrow.dev/crowdfund/internal/pkg/worker"
	"ezcrow.dev/crowdfund/internal/usecase"
)

// Application holds composed application dependencies.
type Application struct {
	Config   *config.Config
	Router   *gin.Engine
	Contract *usecase.ContractService
	JWT      middleware.JWTConfig
	DB       *infrastructure.DatabaseClients
	Pools    *worker.Pools
	Modules  []modules.Module

	infra *modules.Infrastructure
}

// Option adjusts Bootstrap.
type Option func(*options)

type options struct {
	clock host.Clock
}

// WithClock replaces the ledger clock.
func WithClock(clock host.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// Bootstrap initializes all dependencies using module-oriented manual DI.
func Bootstrap(ctx context.Context, cfg *config.Config, opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	signingKey, err := middleware.DeriveSigningKey(cfg.Security.SigningSecret)
	if err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	jwtCfg := middleware.JWTConfig{
		SigningKey: signingKey,
		Issuer:     cfg.Security.TokenIssuer,
		ExpiresIn:  cfg.Security.TokenTTL,
	}

	infra, err := modules.NewInfrastructure(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}

	journalModule := modules.NewJournalModule(infra)
	campaignModule := modules.NewCampaignModule(infra, journalModule.Journal(), o.clock)
	allModules := []modules.Module{journalModule, campaignModule}

	if infra.DB != nil {
		workers := river.NewWorkers()
		var periodic []*river.PeriodicJob
		for _, mod := range allModules {
			mod.RegisterWorkers(workers)
			if p, ok := mod.(modules.PeriodicJobProvider); ok {
				periodic = append(periodic, p.PeriodicJobs()...)
			}
		}
		if err := infra.InitRiver(workers, periodic); err != nil {
			infra.Close()
			return nil, fmt.Errorf("init river workers: %w", err)
		}
	}

	serverDeps := modules.NewServerDeps(allModules)
	server := handlers.NewServer(serverDeps)

	return &Application{
		Config:   cfg,
		Router:   newRouter(cfg, server, jwtCfg),
		Contract: serverDeps.Contract,
		JWT:      jwtCfg,
		DB:       infra.DB,
		Pools:    infra.Pools,
		Modules:  allModules,
		infra:    infra,
	}, nil
}
