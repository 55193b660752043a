// Package modules contains the dependency modules of the composition root.
//
// Import Path: ezcrow.dev/crowdfund/internal/app/modules
package modules

import (
	"context"

	"github.com/riverqueue/river"

	"ezcrow.dev/crowdfund/internal/api/handlers"
)

// Module represents a domain-specific dependency unit in the composition root.
type Module interface {
	// Name returns a stable module identifier for logging/debugging.
	Name() string

	// ContributeServerDeps injects module-owned dependencies into the HTTP server deps.
	ContributeServerDeps(*handlers.ServerDeps)

	// RegisterWorkers registers module workers into a shared River worker registry.
	RegisterWorkers(*river.Workers)

	// Shutdown performs module-local graceful cleanup.
	Shutdown(context.Context) error
}

// ServerDepsContributor is implemented by modules that expose dependencies
// to the HTTP layer.
type ServerDepsContributor interface {
	ContributeServerDeps(*handlers.ServerDeps)
}

// PeriodicJobProvider is implemented by modules that schedule River
// periodic jobs.
type PeriodicJobProvider interface {
	PeriodicJobs() []*river.PeriodicJob
}
