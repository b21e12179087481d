// Package metrics contains abstractions for emission of metrics generated when timers finalize.
// Currently, the only supported metrics output engine is statsd.
//
// Metrics emissions are structured around the notion of hooks: a hook interface defines methods
// that a timer invokes at fixed points of its lifecycle. Implementations of hook interfaces
// actually output the metrics to a backend engine; this responsibility is decoupled from the
// measurement itself, and a noop implementation is used when no backend is configured.
package metrics
