package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezcrow.dev/crowdfund/internal/app/modules"
	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/config"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/pkg/amount"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

func init() {
	_ = logger.Init("error", "json")
}

func TestBootstrap_NoDB(t *testing.T) {
	// Bootstrap without a reachable postgres should fail at DB connection.
	cfg := testConfig()
	cfg.Storage.Driver = config.DriverPostgres
	cfg.Database = config.DatabaseConfig{
		Host:     "localhost",
		Port:     65432, // Non-existent port
		User:     "test",
		Password: "test",
		Database: "test",
		SSLMode:  "disable",
		MaxConns: 5,
		MinConns: 1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app, err := Bootstrap(ctx, cfg)
	require.Error(t, err, "Bootstrap should fail without database")
	assert.Nil(t, app, "Application should be nil on bootstrap failure")
}

func TestBootstrap_UnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = "etcd"
	_, err := Bootstrap(context.Background(), cfg)
	require.Error(t, err)
}

func TestBootstrap_Memory(t *testing.T) {
	app, err := Bootstrap(context.Background(), testConfig())
	require.NoError(t, err)
	defer app.Shutdown(context.Background())

	assert.Nil(t, app.DB, "memory driver has no postgres pool")
	require.NoError(t, app.Start(context.Background()))
	assert.Equal(t, "memory", app.Contract.StorageName())
	assert.Len(t, app.Modules, 2)
}

func TestBootstrap_EmptyCORSOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = nil

	var app *Application
	require.NotPanics(t, func() {
		var err error
		app, err = Bootstrap(context.Background(), cfg)
		require.NoError(t, err)
	})
	defer app.Shutdown(context.Background())

	req := httptest.NewRequest(http.MethodGet, basePath+"/health/live", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBootstrap_SQLiteSurvivesRestart(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = config.DriverSQLite
	cfg.SQLite = config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "crowdfund.db"), BusyTimeout: time.Second}

	clock := host.NewManualClock(genesis)
	owner := campaign.Address(ownerAddr)
	signers := host.NewSignerSet(owner)
	ctx := context.Background()

	first, err := Bootstrap(ctx, cfg, WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, first.Contract.Initialize(ctx, signers, owner, amount.New(500), uint64(genesis.Unix())+100, "Art"))
	_, err = first.Contract.PostUpdate(ctx, signers, owner, "first light")
	require.NoError(t, err)
	first.Shutdown(ctx)

	second, err := Bootstrap(ctx, cfg, WithClock(clock))
	require.NoError(t, err)
	defer second.Shutdown(ctx)

	assert.Equal(t, "sqlite", second.Contract.StorageName())
	cat, err := second.Contract.Category(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Art", cat)
	updates, err := second.Contract.Updates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first light"}, updates)

	// Journal writes drained on the first shutdown.
	journal := second.Modules[0].(*modules.JournalModule).Journal()
	entries, err := journal.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "post_update", entries[0].Operation)
	rep, err := journal.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, rep.Valid)
}

func TestApplication_Shutdown_Nil(t *testing.T) {
	// Shutdown on empty application should not panic.
	app := &Application{}

	assert.NotPanics(t, func() {
		app.Shutdown(context.Background())
	}, "Shutdown on empty Application should not panic")
}
