package log

// Logger defines a common interface shared by logging engines.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, v ...interface{})

	// Info logs an informational message.
	Info(format string, v ...interface{})

	// Warn logs a warning message.
	Warn(format string, v ...interface{})

	// Error logs an error message.
	Error(format string, v ...interface{})

	// Level returns the currently configured logging level.
	Level() Level
}

// NoopLogger implements the Logger interface but discards every message.
type NoopLogger struct{}

// NewNoopLogger creates a logger that never writes anything.
func NewNoopLogger() Logger {
	return &NoopLogger{}
}

// Debug noops.
func (l *NoopLogger) Debug(format string, v ...interface{}) {}

// Info noops.
func (l *NoopLogger) Info(format string, v ...interface{}) {}

// Warn noops.
func (l *NoopLogger) Warn(format string, v ...interface{}) {}

// Error noops.
func (l *NoopLogger) Error(format string, v ...interface{}) {}

// Level reports Error, the least verbose level.
func (l *NoopLogger) Level() Level {
	return Error
}
