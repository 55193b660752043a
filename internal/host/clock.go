package host

import (
	"sync"
	"time"
)

// Clock supplies ledger time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// OffsetClock shifts another clock by a fixed duration.
type OffsetClock struct {
	Base   Clock
	Offset time.Duration
}

func (c OffsetClock) Now() time.Time { return c.Base.Now().Add(c.Offset) }

// ManualClock is set explicitly. It is used by tests and scenario seeding.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a ManualClock at t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// ledgerTime is the frozen timestamp of one invocation.
type ledgerTime uint64

func (t ledgerTime) Timestamp() uint64 { return uint64(t) }

func timestamp(c Clock) ledgerTime {
	sec := c.Now().Unix()
	if sec < 0 {
		return 0
	}
	return ledgerTime(sec)
}
