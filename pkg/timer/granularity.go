//go:generate go run golang.org/x/tools/cmd/stringer -type=Granularity -linecomment=true

package timer

import (
	"strings"
	"time"
)

// Granularity is the unit a timer truncates its elapsed interval to.
type Granularity int

const (
	// Nanoseconds timers are reported in microseconds.
	Nanoseconds Granularity = iota // ns
	// Microseconds timers are reported in milliseconds.
	Microseconds // us
	// Milliseconds timers are reported in seconds.
	Milliseconds // ms
	// Seconds timers are reported in whole seconds.
	Seconds // s
	// Minutes timers are reported in whole minutes.
	Minutes // min
	// Hours timers are reported in whole hours.
	Hours // h
)

// granularitySpec describes how a count at some granularity is rendered. Fractional counts are
// divided by 1000 and labelled with the next coarser unit.
type granularitySpec struct {
	unit       time.Duration
	fractional bool
	label      string
	longName   string
}

var granularitySpecs = [...]granularitySpec{
	Nanoseconds:  {unit: time.Nanosecond, fractional: true, label: "us", longName: "nanoseconds"},
	Microseconds: {unit: time.Microsecond, fractional: true, label: "ms", longName: "microseconds"},
	Milliseconds: {unit: time.Millisecond, fractional: true, label: "s", longName: "milliseconds"},
	Seconds:      {unit: time.Second, label: "s", longName: "seconds"},
	Minutes:      {unit: time.Minute, label: "min", longName: "minutes"},
	Hours:        {unit: time.Hour, label: "h", longName: "hours"},
}

// ParseGranularity looks up a Granularity by its symbol (ns, us, ms, s, min, h) or its long name
// (nanoseconds, ...), case-insensitively. Unknown input yields Milliseconds and false.
func ParseGranularity(granularity string) (Granularity, bool) {
	for known := Nanoseconds; known <= Hours; known++ {
		if strings.EqualFold(granularity, known.String()) ||
			strings.EqualFold(granularity, granularitySpecs[known].longName) {
			return known, true
		}
	}

	return Milliseconds, false
}

// Valid reports whether g is one of the six declared granularities.
func (g Granularity) Valid() bool {
	return g >= Nanoseconds && g <= Hours
}

// Unit returns the duration of a single count at this granularity, or zero for an undeclared
// granularity.
func (g Granularity) Unit() time.Duration {
	if !g.Valid() {
		return 0
	}

	return granularitySpecs[g].unit
}

// Label returns the unit printed alongside a measurement at this granularity. Undeclared
// granularities print their String form.
func (g Granularity) Label() string {
	if !g.Valid() {
		return g.String()
	}

	return granularitySpecs[g].label
}

// fractional reports whether counts are printed divided by 1000.
func (g Granularity) fractional() bool {
	return g.Valid() && granularitySpecs[g].fractional
}
