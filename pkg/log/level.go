//go:generate go run golang.org/x/tools/cmd/stringer -type=Level -linecomment=true

package log

import (
	"strings"
)

// Level orders diagnostics from most to least verbose. A logger configured at some level drops
// everything below it.
type Level int

const (
	// Debug covers timer construction and each successful report.
	Debug Level = iota // DEBUG
	// Info covers process-level events, like the CLI launching the timed command.
	Info // INFO
	// Warn covers recoverable misconfiguration, like an undeclared granularity replaced by the
	// default.
	Warn // WARN
	// Error covers a measurement that was taken but could not be written to its sink.
	Error // ERROR
)

// ParseLevel resolves a level name such as "warn", ignoring case. Unknown names resolve to Error,
// the quietest level, and false.
func ParseLevel(name string) (Level, bool) {
	for level := Debug; level <= Error; level++ {
		if strings.EqualFold(name, level.String()) {
			return level, true
		}
	}

	return Error, false
}

// Enables reports whether a logger at level l emits messages at level other: a Warn logger emits
// Warn and Error, a Debug logger emits everything.
func (l Level) Enables(other Level) bool {
	return l <= other
}
