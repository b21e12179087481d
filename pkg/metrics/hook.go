package metrics

import (
	"os"
	"sync"
	"time"
)

// TimerHook is a metrics hook interface for reporting the outcome of a timer's finalization.
type TimerHook interface {
	// EmitFinalize reports a completed measurement: the elapsed interval, the granularity it was
	// reported at, and the name of the timer (possibly empty).
	EmitFinalize(name string, granularity string, elapsed time.Duration)

	// EmitSinkError reports that a finalized measurement could not be written to its sink.
	EmitSinkError(name string, sink string)

	// Close blocks until every emission has been handed to the backend, then releases it. No
	// emissions may follow.
	Close() error
}

// AsyncStatsdTimerHook is an implementation of TimerHook that outputs metrics asynchronously to
// statsd.
type AsyncStatsdTimerHook struct {
	client   *StatsdClient
	inflight sync.WaitGroup
}

// NoopTimerHook implements the TimerHook interface but noops on all emissions.
type NoopTimerHook struct{}

// NewAsyncStatsdTimerHook creates a new hook with the specified statsd address and sample rate.
func NewAsyncStatsdTimerHook(addr string, sampleRate float32) (TimerHook, error) {
	client, err := statsdClientFactory(addr, sampleRate)
	if err != nil {
		return nil, err
	}

	return &AsyncStatsdTimerHook{client: client}, nil
}

// EmitFinalize statsd implementation
func (h *AsyncStatsdTimerHook) EmitFinalize(name string, granularity string, elapsed time.Duration) {
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()

		tags := map[string]string{
			"granularity": granularity,
			"name":        nameOrNull(name),
		}

		h.client.Count("event.timer.finalize", 1, tags)
		h.client.Timing("latency.timer.elapsed", elapsed, tags)
	}()
}

// EmitSinkError statsd implementation
func (h *AsyncStatsdTimerHook) EmitSinkError(name string, sink string) {
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()

		h.client.Count("event.timer.sink_error", 1, map[string]string{
			"name": nameOrNull(name),
			"sink": sink,
		})
	}()
}

// Close waits for in-flight emissions and closes the statsd client. Short-lived processes must
// call it before exiting, or pending metrics are lost with their goroutines.
func (h *AsyncStatsdTimerHook) Close() error {
	h.inflight.Wait()

	return h.client.Close()
}

// NewNoopTimerHook creates a noop implementation of TimerHook.
func NewNoopTimerHook() TimerHook {
	return &NoopTimerHook{}
}

// EmitFinalize noops.
func (h *NoopTimerHook) EmitFinalize(name string, granularity string, elapsed time.Duration) {}

// EmitSinkError noops.
func (h *NoopTimerHook) EmitSinkError(name string, sink string) {}

// Close noops.
func (h *NoopTimerHook) Close() error {
	return nil
}

// statsdClientFactory creates a configured StatsdClient with reasonable defaults for the given
// statsd server address and sample rate.
func statsdClientFactory(addr string, sampleRate float32) (*StatsdClient, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}

	defaultTags := map[string]string{
		"host": hostname,
	}

	return NewStatsdClient(addr, "scopedtimer", defaultTags, sampleRate)
}

// nameOrNull substitutes a placeholder for anonymous timers.
func nameOrNull(name string) string {
	if name == "" {
		return "null"
	}

	return name
}
