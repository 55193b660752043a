// Package main replays a YAML campaign scenario into the configured storage.
//
// Usage: seed <scenario.yaml>
//
// The server should not run against the same storage while seeding: the
// scenario drives its own ledger clock.
//
// Import Path: ezcrow.dev/crowdfund/cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/app"
	"ezcrow.dev/crowdfund/internal/config"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: seed <scenario.yaml>")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	scenario, err := ParseScenario(f)
	if err != nil {
		return err
	}

	ctx := context.Background()
	clock := host.NewManualClock(time.Unix(int64(scenario.Genesis), 0))

	application, err := app.Bootstrap(ctx, cfg, app.WithClock(clock))
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer application.Shutdown(ctx)

	logger.Info("Starting campaign seeding...",
		zap.String("scenario", args[0]),
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("steps", len(scenario.Steps)),
	)

	if err := scenario.Apply(ctx, application.Contract, clock); err != nil {
		return fmt.Errorf("apply scenario: %w", err)
	}

	stats, err := application.Contract.Stats(ctx)
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	logger.Info("Campaign seeding completed successfully",
		zap.String("raised", stats["raised"].String()),
		zap.String("donors", stats["donors"].String()),
	)
	return nil
}
