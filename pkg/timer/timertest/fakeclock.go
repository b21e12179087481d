// Package timertest provides a synthetic clock for testing code that uses timers.
package timertest

import (
	"time"

	"scopedtimer/pkg/timer"
)

// Epoch is the instant tick zero of NewTickClock corresponds to.
var Epoch = time.Unix(0, 0).UTC()

// FakeClock replays a fixed sequence of instants, one per call to Now. Once the sequence is
// exhausted the last instant repeats.
type FakeClock struct {
	instants []time.Time
	calls    int
}

var _ timer.Clock = new(FakeClock)

// NewFakeClock creates a clock replaying instants in order.
func NewFakeClock(instants ...time.Time) *FakeClock {
	return &FakeClock{instants: instants}
}

// NewTickClock creates a clock replaying tick counts of unit, measured from Epoch.
func NewTickClock(unit time.Duration, ticks ...int64) *FakeClock {
	instants := make([]time.Time, len(ticks))
	for i, tick := range ticks {
		instants[i] = Epoch.Add(time.Duration(tick) * unit)
	}

	return NewFakeClock(instants...)
}

// Now returns the next instant in the sequence, or Epoch if the sequence is empty.
func (c *FakeClock) Now() time.Time {
	c.calls++

	if len(c.instants) == 0 {
		return Epoch
	}

	idx := c.calls - 1
	if idx >= len(c.instants) {
		idx = len(c.instants) - 1
	}

	return c.instants[idx]
}

// Calls returns how many times Now has been called.
func (c *FakeClock) Calls() int {
	return c.calls
}
