package modules

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/audit"
	"ezcrow.dev/crowdfund/internal/config"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/infrastructure"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
	"ezcrow.dev/crowdfund/internal/pkg/worker"
)

// Infrastructure holds shared cross-cutting dependencies for all modules.
// It is a provider, not a Module.
type Infrastructure struct {
	Config *config.Config

	// Backend is the host storage selected by storage.driver.
	Backend host.Backend
	// JournalStore persists invocation journal entries next to Backend.
	JournalStore audit.Store

	// DB is set for the postgres driver only.
	DB          *infrastructure.DatabaseClients
	SQLite      *sql.DB
	Pools       *worker.Pools
	RiverClient *river.Client[pgx.Tx]
}

// NewInfrastructure opens the configured storage driver and the worker pools.
func NewInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{Config: cfg}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := infrastructure.NewDatabaseClients(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := db.AutoMigrate(ctx); err != nil {
				db.Close()
				return nil, fmt.Errorf("auto-migrate: %w", err)
			}
		}
		infra.DB = db
		infra.Backend = host.NewPostgresBackend(db.Pool, ContractLockKey(cfg.Contract.Address))
		infra.JournalStore = audit.NewPostgresStore(db.Pool)
	case config.DriverSQLite:
		db, err := infrastructure.OpenSQLite(ctx, cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		infra.SQLite = db
		infra.Backend = host.NewSQLiteBackend(db)
		infra.JournalStore = audit.NewSQLiteStore(db)
	case config.DriverMemory:
		infra.Backend = host.NewMemoryBackend()
		infra.JournalStore = audit.NewMemoryStore(cfg.Audit.MemoryCapacity)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	pools, err := worker.NewPools(ctx, worker.PoolConfig{
		GeneralPoolSize: cfg.Worker.GeneralPoolSize,
		JournalPoolSize: cfg.Worker.JournalPoolSize,
	})
	if err != nil {
		infra.Close()
		return nil, fmt.Errorf("init worker pools: %w", err)
	}
	infra.Pools = pools

	logger.Info("Storage backend ready",
		zap.String("driver", infra.Backend.Name()),
		zap.String("contract", cfg.Contract.Address),
	)
	return infra, nil
}

// ContractLockKey maps a contract address to the advisory lock key that
// serializes its invocations across processes.
func ContractLockKey(contract string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(contract))
	return int64(h.Sum64())
}

// InitRiver initializes the River client on top of a prepared worker
// registry. It is a no-op for drivers without a postgres pool.
func (i *Infrastructure) InitRiver(workers *river.Workers, periodic []*river.PeriodicJob) error {
	if i == nil || i.Config == nil {
		return fmt.Errorf("infrastructure is not initialized")
	}
	if i.DB == nil {
		return nil
	}
	if err := i.DB.InitRiverClient(workers, periodic, i.Config.River); err != nil {
		return fmt.Errorf("init river: %w", err)
	}
	i.RiverClient = i.DB.RiverClient
	return nil
}

// Close releases infra resources in reverse dependency order.
func (i *Infrastructure) Close() {
	if i == nil {
		return
	}
	if i.Pools != nil {
		i.Pools.Shutdown()
	}
	if i.DB != nil {
		i.DB.Close()
	}
	if i.SQLite != nil {
		if err := i.SQLite.Close(); err != nil {
			logger.Warn("close sqlite", zap.Error(err))
		}
	}
}
