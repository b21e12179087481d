package timer

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"scopedtimer/pkg/log"
	"scopedtimer/pkg/metrics"
)

// noCopy makes `go vet` (copylocks) reject copies of any struct embedding it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Timer measures one region of code and reports it once.
type Timer struct {
	noCopy noCopy

	name        string
	granularity Granularity
	sink        Sink
	clock       Clock
	logger      log.Logger
	hook        metrics.TimerHook
	onError     func(error)

	start       time.Time
	finalized   bool
	measurement Measurement
}

// Option configures a Timer at construction.
type Option func(*Timer)

// WithGranularity sets the unit the elapsed interval is truncated to. Defaults to Milliseconds.
func WithGranularity(g Granularity) Option {
	return func(t *Timer) {
		t.granularity = g
	}
}

// WithConsole reports to standard output. This is the default sink.
func WithConsole() Option {
	return WithSink(NewConsoleSink(nil))
}

// WithWriter reports to an arbitrary stream, flushing it after the write if it is buffered.
func WithWriter(out io.Writer) Option {
	return WithSink(NewConsoleSink(out))
}

// WithFile reports to a file opened by the caller, who remains responsible for closing it.
func WithFile(file *os.File) Option {
	return WithSink(NewFileSink(file))
}

// WithPath reports to the file at path, opened only at finalization. An empty path discards the
// report.
func WithPath(path string, mode OpenMode) Option {
	return WithSink(NewPathSink(path, mode))
}

// WithBuffer reports to an in-memory buffer.
func WithBuffer(buf *bytes.Buffer) Option {
	return WithSink(NewBufferSink(buf))
}

// WithSink reports to a custom sink. Each sink option replaces the previous one.
func WithSink(sink Sink) Option {
	return func(t *Timer) {
		t.sink = sink
	}
}

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(t *Timer) {
		t.clock = clock
	}
}

// WithName labels the timer in log messages and metrics. The report line itself is unaffected.
func WithName(name string) Option {
	return func(t *Timer) {
		t.name = name
	}
}

// WithLogger sets the logger for diagnostics. Defaults to standard error at log.Warn.
func WithLogger(logger log.Logger) Option {
	return func(t *Timer) {
		t.logger = logger
	}
}

// WithHook sets the metrics hook invoked on finalization.
func WithHook(hook metrics.TimerHook) Option {
	return func(t *Timer) {
		t.hook = hook
	}
}

// WithErrorHandler sets the handler for errors raised by Close, which has no caller to return
// them to. Defaults to logging them at log.Error.
func WithErrorHandler(handler func(error)) Option {
	return func(t *Timer) {
		t.onError = handler
	}
}

// New creates and starts a timer.
func New(opts ...Option) *Timer {
	t := &Timer{
		granularity: Milliseconds,
		sink:        NewConsoleSink(nil),
		clock:       SystemClock{},
		logger:      log.NewConsoleLogger(log.Warn),
		hook:        metrics.NewNoopTimerHook(),
	}

	for _, opt := range opts {
		opt(t)
	}

	// Options may carry nil values; finalization must still not panic.
	if t.logger == nil {
		t.logger = log.NewNoopLogger()
	}

	if t.hook == nil {
		t.hook = metrics.NewNoopTimerHook()
	}

	if t.clock == nil {
		t.clock = SystemClock{}
	}

	if !t.granularity.Valid() {
		t.logger.Warn(
			"timer: unknown granularity; use default: name=%s supplied=%v default=%v",
			t.name,
			t.granularity,
			Milliseconds,
		)
		t.granularity = Milliseconds
	}

	if t.sink == nil {
		t.sink = DiscardSink{}
	}

	if t.onError == nil {
		t.onError = t.logError
	}

	t.start = t.clock.Now()
	t.logger.Debug("timer: started: name=%s granularity=%v", t.name, t.granularity)

	return t
}

// Stop finalizes the timer: it measures the elapsed interval, formats it and writes it to the
// sink. Only the first call to Stop or Close has any effect; later calls return nil.
func (t *Timer) Stop() error {
	if t.finalized {
		return nil
	}

	// Marked before the write so a failing sink is never retried.
	t.finalized = true
	t.measurement = newMeasurement(t.granularity, t.clock.Now().Sub(t.start))

	if err := t.sink.Emit(t.measurement.String()); err != nil {
		var sinkErr *SinkWriteError
		if !errors.As(err, &sinkErr) {
			sinkErr = &SinkWriteError{Sink: "custom", Err: err}
		}

		t.hook.EmitSinkError(t.name, sinkErr.Sink)
		return sinkErr
	}

	t.logger.Debug(
		"timer: finalized: name=%s count=%d granularity=%v",
		t.name,
		t.measurement.Count,
		t.granularity,
	)
	t.hook.EmitFinalize(t.name, t.granularity.String(), t.measurement.Elapsed)

	return nil
}

// Close finalizes the timer like Stop, for use with defer. It never returns an error or panics;
// a failed write is passed to the error handler instead.
func (t *Timer) Close() {
	if err := t.Stop(); err != nil {
		t.onError(err)
	}
}

// Elapsed returns the time elapsed since the timer started, or the final interval once the timer
// has been finalized.
func (t *Timer) Elapsed() time.Duration {
	if t.finalized {
		return t.measurement.Elapsed
	}

	return t.clock.Now().Sub(t.start)
}

// Finalized reports whether the timer has been stopped.
func (t *Timer) Finalized() bool {
	return t.finalized
}

// Measurement returns the recorded measurement, and false if the timer is still running.
func (t *Timer) Measurement() (Measurement, bool) {
	return t.measurement, t.finalized
}

// logError is the default error handler.
func (t *Timer) logError(err error) {
	t.logger.Error("timer: error reporting measurement: name=%s err=%v", t.name, err)
}

// Measure runs fn in a timed scope. The timer is finalized however fn exits, including by panic,
// in which case the panic continues after the report is written.
//
// Measure returns fn's error when there is one; a finalization error that would mask it goes to
// the error handler instead. Otherwise it returns the finalization error, which callers may
// ignore.
func Measure(fn func() error, opts ...Option) (err error) {
	t := New(opts...)
	completed := false

	defer func() {
		stopErr := t.Stop()

		switch {
		case stopErr == nil:
		case completed && err == nil:
			err = stopErr
		default:
			t.onError(stopErr)
		}
	}()

	err = fn()
	completed = true

	return err
}
