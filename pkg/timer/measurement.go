package timer

import (
	"fmt"
	"strconv"
	"time"
)

// Measurement is the result of finalizing a timer.
type Measurement struct {
	Granularity Granularity
	// Count is the elapsed interval truncated to whole units of Granularity.
	Count int64
	// Elapsed is the untruncated interval.
	Elapsed time.Duration
}

// newMeasurement truncates an elapsed interval to the granularity. Negative intervals are kept
// as-is.
func newMeasurement(g Granularity, elapsed time.Duration) Measurement {
	return Measurement{
		Granularity: g,
		Count:       int64(elapsed / g.Unit()),
		Elapsed:     elapsed,
	}
}

// Value renders the count for display. Fractional granularities print count/1000 with six
// significant digits (1.5, 1234.57, 1.23457e+06); the others print the integer count.
func (m Measurement) Value() string {
	if m.Granularity.fractional() {
		return strconv.FormatFloat(float64(m.Count)/1000.0, 'g', 6, 64)
	}

	return strconv.FormatInt(m.Count, 10)
}

// Label returns the printed unit.
func (m Measurement) Label() string {
	return m.Granularity.Label()
}

// String formats the line written to a sink, including its trailing newline.
func (m Measurement) String() string {
	return fmt.Sprintf("Elapsed time: %s %s  \n", m.Value(), m.Label())
}
