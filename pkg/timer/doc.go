// Package timer measures the elapsed time of a region of code and reports it as a single line of
// text when the region ends.
//
// A Timer starts its clock when it is created and finalizes exactly once: on an explicit Stop, or
// on the Close deferred at the top of the measured scope, whichever happens first. Finalization
// converts the elapsed interval into the timer's Granularity, formats it, and appends it to the
// timer's Sink:
//
//	func rebuildIndex() error {
//		t := timer.New(timer.WithGranularity(timer.Microseconds))
//		defer t.Close()
//
//		// ...
//	}
//
// Sub-second granularities are reported one order of magnitude coarser than they are measured, so
// a Microseconds timer prints milliseconds with three fractional digits of precision; Seconds,
// Minutes and Hours timers print whole counts of their own unit.
//
// Timers are meant to be owned by one goroutine for one sequential region. They are handed out by
// pointer and must not be copied.
package timer
