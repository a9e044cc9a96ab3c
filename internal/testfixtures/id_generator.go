package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator yields sequential identifiers so tests can predict the IDs
// the services will assign to users, groups, events and invites.
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewIDGenerator constructs a generator yielding "<prefix>-1",
// "<prefix>-2" and so on. An empty prefix defaults to "sched".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "sched"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s-%d", g.prefix, g.counter)
}

// NextFunc exposes Next in the shape the service constructors accept. A
// nil receiver yields empty identifiers, matching the services' own
// fallback generator.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// Reset rewinds the sequence and optionally swaps the prefix, so scenario
// steps can restart identifier numbering.
func (g *IDGenerator) Reset(prefix string) {
	g.mu.Lock()
	if prefix != "" {
		g.prefix = prefix
	}
	g.counter = 0
	g.mu.Unlock()
}
