package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

const (
	// DefaultJournalRetention is how long invocation journal entries are kept
	// when no retention is configured.
	DefaultJournalRetention = 30 * 24 * time.Hour

	// JournalRetentionInterval is how often the periodic job is scheduled.
	JournalRetentionInterval = 24 * time.Hour
)

// JournalPruner removes journal entries created before a cutoff.
// audit.Store implementations satisfy it.
type JournalPruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// JournalRetentionArgs is a periodic maintenance job that prunes the
// invocation journal.
type JournalRetentionArgs struct{}

// Kind returns the job kind identifier for journal retention.
func (JournalRetentionArgs) Kind() string { return "journal_retention" }

// InsertOpts ensures at most one retention job is enqueued within the same day.
func (JournalRetentionArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       river.QueueDefault,
		MaxAttempts: 1,
		UniqueOpts: river.UniqueOpts{
			ByPeriod: 24 * time.Hour,
			ByQueue:  true,
			ByArgs:   true,
		},
	}
}

// JournalRetentionWorker deletes journal entries older than the retention
// window.
type JournalRetentionWorker struct {
	river.WorkerDefaults[JournalRetentionArgs]
	pruner    JournalPruner
	retention time.Duration
	now       func() time.Time
}

// NewJournalRetentionWorker creates a retention worker. Non-positive
// retention falls back to DefaultJournalRetention.
func NewJournalRetentionWorker(pruner JournalPruner, retention time.Duration) *JournalRetentionWorker {
	if retention <= 0 {
		retention = DefaultJournalRetention
	}
	return &JournalRetentionWorker{
		pruner:    pruner,
		retention: retention,
		now:       time.Now,
	}
}

// Work removes expired journal rows.
func (w *JournalRetentionWorker) Work(ctx context.Context, _ *river.Job[JournalRetentionArgs]) error {
	if w == nil || w.pruner == nil {
		return fmt.Errorf("journal retention worker is not initialized")
	}

	cutoff := w.now().UTC().Add(-w.retention)
	deleted, err := w.pruner.DeleteBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete journal entries before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	logger.Named("journal-retention").Info("journal retention completed",
		zap.Int64("deleted_rows", deleted),
		zap.String("cutoff", cutoff.Format(time.RFC3339)),
		zap.Duration("retention", w.retention),
	)
	return nil
}

// PeriodicJobs returns the periodic schedule for the maintenance jobs.
func PeriodicJobs() []*river.PeriodicJob {
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(JournalRetentionInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return JournalRetentionArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}
