package modules

import (
	"context"
	"time"

	"github.com/riverqueue/river"

	"ezcrow.dev/crowdfund/internal/api/handlers"
	"ezcrow.dev/crowdfund/internal/audit"
	"ezcrow.dev/crowdfund/internal/jobs"
)

// JournalModule wires the invocation journal and its retention job.
type JournalModule struct {
	infra   *Infrastructure
	journal *audit.Journal
}

// NewJournalModule creates the journal over the configured store.
func NewJournalModule(infra *Infrastructure) *JournalModule {
	return &JournalModule{
		infra:   infra,
		journal: audit.NewJournal(infra.JournalStore, infra.Pools, time.Now),
	}
}

func (m *JournalModule) Name() string { return "journal" }

// Journal returns the module's journal.
func (m *JournalModule) Journal() *audit.Journal { return m.journal }

func (m *JournalModule) ContributeServerDeps(deps *handlers.ServerDeps) {
	if deps == nil {
		return
	}
	deps.Journal = m.journal
}

func (m *JournalModule) RegisterWorkers(workers *river.Workers) {
	if workers == nil || m == nil || m.infra == nil {
		return
	}
	river.AddWorker(workers, jobs.NewJournalRetentionWorker(m.infra.JournalStore, m.infra.Config.Audit.Retention))
}

func (m *JournalModule) PeriodicJobs() []*river.PeriodicJob {
	return jobs.PeriodicJobs()
}

func (m *JournalModule) Shutdown(context.Context) error { return nil }
