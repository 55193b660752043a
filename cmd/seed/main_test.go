package main

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezcrow.dev/crowdfund/internal/app"
	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/config"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

func init() {
	_ = logger.Init("error", "json")
}

func memoryConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Contract: config.ContractConfig{
			Address:      config.DefaultContractAddress,
			TokenAddress: config.DefaultTokenAddress,
		},
		Audit:    config.AuditConfig{MemoryCapacity: 100},
		Security: config.SecurityConfig{SigningSecret: strings.Repeat("k", 32), TokenTTL: time.Hour},
		Worker:   config.WorkerConfig{GeneralPoolSize: 2, JournalPoolSize: 1},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func TestScenario_Apply(t *testing.T) {
	f, err := os.Open("testdata/scenario.yaml")
	require.NoError(t, err)
	defer f.Close()

	s, err := ParseScenario(f)
	require.NoError(t, err)
	require.Len(t, s.Steps, 5)

	ctx := context.Background()
	clock := host.NewManualClock(time.Unix(int64(s.Genesis), 0))
	a, err := app.Bootstrap(ctx, memoryConfig(), app.WithClock(clock))
	require.NoError(t, err)
	defer a.Shutdown(ctx)

	require.NoError(t, s.Apply(ctx, a.Contract, clock))

	total, err := a.Contract.TotalRaised(ctx)
	require.NoError(t, err)
	assert.Equal(t, "50000000000", total.String())

	pct, err := a.Contract.ProgressPercentage(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 50, pct)

	milestones, err := a.Contract.Milestones(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Prototype"}, milestones)

	bal, err := a.Contract.Balance(ctx, campaign.Address("GBOBAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
	assert.Equal(t, uint64(1700043200), a.Contract.LedgerTime())
}

func TestParseScenario_Invalid(t *testing.T) {
	const owner = "GOWNERAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"missing genesis", "campaign: {owner: " + owner + "}", "genesis is required"},
		{"bad owner", "genesis: 1\ncampaign: {owner: nobody}", "campaign.owner"},
		{"unknown op", "genesis: 1\ncampaign: {owner: " + owner + "}\nsteps: [{op: refund, caller: " + owner + "}]", "is not one of"},
		{"clock backwards", "genesis: 100\ncampaign: {owner: " + owner + "}\nsteps: [{at: 50, op: add_comment, caller: " + owner + "}]", "backwards"},
		{"unknown field", "genesis: 1\nvotes: 3", "votes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_Usage(t *testing.T) {
	err := run(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}
