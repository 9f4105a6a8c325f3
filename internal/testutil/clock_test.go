package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSteppingClock_AdvancesPerCall(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	clock := NewSteppingClock(start, time.Hour)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start.Add(time.Hour), clock.Now())
	assert.Equal(t, start.Add(2*time.Hour), clock.Now())
}

func TestSequenceIDs(t *testing.T) {
	ids := NewSequenceIDs("ticket")
	assert.Equal(t, "ticket-1", ids.Generate())
	assert.Equal(t, "ticket-2", ids.Generate())
}
