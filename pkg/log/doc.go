// Package log is a small leveled logger. Timers use it as the secondary channel for diagnostics
// that cannot be returned to a caller, such as a failed write during deferred finalization.
package log
