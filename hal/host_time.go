package hal

import (
	"sync"
	"time"
)

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// VirtualClock advances only when told to. It is safe for concurrent use so
// HTTP handlers may read it while the runner ticks.
type VirtualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewVirtualClock starts at start.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
