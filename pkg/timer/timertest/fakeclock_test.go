package timertest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickClockReplaysThenRepeats(t *testing.T) {
	clock := NewTickClock(time.Millisecond, 1000, 2500)

	assert.Equal(t, Epoch.Add(time.Second), clock.Now())
	assert.Equal(t, Epoch.Add(2500*time.Millisecond), clock.Now())
	assert.Equal(t, Epoch.Add(2500*time.Millisecond), clock.Now())
	assert.Equal(t, 3, clock.Calls())
}

func TestEmptyFakeClock(t *testing.T) {
	clock := NewFakeClock()

	assert.Equal(t, Epoch, clock.Now())
	assert.Equal(t, 1, clock.Calls())
}
