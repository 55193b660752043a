package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezcrow.dev/crowdfund/internal/pkg/amount"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

func init() {
	_ = logger.Init("error", "json")
}

func TestDonationPayload_AmountsAreStrings(t *testing.T) {
	payload := DonationPayload{
		Donor:       "GALICE",
		Amount:      amount.MustParse("170141183460469231731687303715884105727"),
		TotalRaised: amount.New(500),
	}

	data, err := payload.ToJSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "170141183460469231731687303715884105727", raw["amount"])
	assert.Equal(t, "500", raw["total_raised"])
}

func TestNewEvent(t *testing.T) {
	ev := NewEvent(EventCommentAdded, AggregateCampaign, "CCONTRACT", "GBOB", 42, []byte(`{}`))

	id, err := uuid.Parse(ev.EventID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, EventCommentAdded, ev.EventType)
	assert.Equal(t, uint64(42), ev.LedgerTime)
	assert.False(t, ev.CreatedAt.IsZero())
}

func TestEventDispatcher_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		handlers []EventHandler
		wantErr  bool
		wantRuns int
	}{
		{name: "no handlers", wantRuns: 0},
		{
			name:     "all succeed",
			handlers: []EventHandler{nopHandler, nopHandler},
			wantRuns: 2,
		},
		{
			name: "failure does not stop later handlers",
			handlers: []EventHandler{
				func(context.Context, *DomainEvent) error { return errors.New("boom") },
				nopHandler,
			},
			wantErr:  true,
			wantRuns: 2,
		},
		{
			name: "panic is recovered",
			handlers: []EventHandler{
				func(context.Context, *DomainEvent) error { panic("handler bug") },
				nopHandler,
			},
			wantErr:  true,
			wantRuns: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewEventDispatcher()
			runs := 0
			for _, h := range tt.handlers {
				h := h
				d.Register(EventDonationRecorded, func(ctx context.Context, ev *DomainEvent) error {
					runs++
					return h(ctx, ev)
				})
			}

			err := d.Dispatch(context.Background(), NewEvent(EventDonationRecorded, AggregateCampaign, "C", "G", 1, nil))
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantRuns, runs)
		})
	}
}

func TestEventDispatcher_RegisterAll(t *testing.T) {
	d := NewEventDispatcher()
	seen := map[EventType]int{}
	d.RegisterAll(func(_ context.Context, ev *DomainEvent) error {
		seen[ev.EventType]++
		return nil
	})
	d.RegisterAll(LogHandler)

	for _, et := range AllEventTypes() {
		require.NoError(t, d.Dispatch(context.Background(), NewEvent(et, AggregateCampaign, "C", "G", 1, nil)))
	}
	assert.Len(t, seen, len(AllEventTypes()))
	for et, n := range seen {
		assert.Equal(t, 1, n, et)
	}
}

func nopHandler(context.Context, *DomainEvent) error { return nil }
