// Package testutil provides deterministic time and identity sources
// for tests.
package testutil

import (
	"fmt"
	"sync"
	"time"
)

// SteppingClock returns deterministic, strictly increasing timestamps
// for tests: each call to Now advances by the configured step.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type SteppingClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewSteppingClock creates a clock starting at start, advancing by
// step on every Now call. The first call returns start itself.
func NewSteppingClock(start time.Time, step time.Duration) *SteppingClock {
	return &SteppingClock{current: start, step: step}
}

// Now returns the current instant and advances the clock.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// SequenceIDs generates predictable identifiers: prefix-1, prefix-2,
// and so on. It enables golden comparison of output containing IDs.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDs creates a generator with the given prefix.
func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix}
}

// Generate returns the next identifier in the sequence.
func (g *SequenceIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
