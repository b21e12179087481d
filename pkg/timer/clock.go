package timer

import "time"

// Clock is the time source a timer reads its start and end instants from.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
}

// SystemClock reads time.Now. Its instants carry a monotonic reading, so intervals between them
// are unaffected by wall clock adjustments.
type SystemClock struct{}

// Now returns the current time from the system clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

var _ Clock = SystemClock{}
