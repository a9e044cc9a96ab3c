package testfixtures

import (
	"sync"
	"time"
)

// Clock is a controllable time source that stands in for time.Now when
// services need deterministic scheduling windows.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock pinned to start. A zero start pins the clock
// to the shared ReferenceTime so fixtures and clocks agree on "today".
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now returns the instant the clock is pinned to.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc exposes Now in the shape the service constructors accept. A nil
// receiver degrades to the real clock.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set pins the clock to the provided time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}
