package log

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ConsoleLogger is a simple, leveled logging engine that writes to a stream, standard error unless
// otherwise specified.
type ConsoleLogger struct {
	level Level
	out   io.Writer
	now   func() time.Time
}

// NewConsoleLogger creates a standard error logger limited to the specified level. Only log
// messages that are less verbose than the specified level are logged.
func NewConsoleLogger(level Level) Logger {
	return NewStreamLogger(os.Stderr, level)
}

// NewStreamLogger creates a logger limited to the specified level that writes to an arbitrary
// stream.
func NewStreamLogger(out io.Writer, level Level) Logger {
	return &ConsoleLogger{
		level: level,
		out:   out,
		now:   time.Now,
	}
}

// Debug logs a debug message, if permitted by the current level.
func (l *ConsoleLogger) Debug(format string, v ...interface{}) {
	l.log(Debug, format, v...)
}

// Info logs an informational message, if permitted by the current level.
func (l *ConsoleLogger) Info(format string, v ...interface{}) {
	l.log(Info, format, v...)
}

// Warn logs a warning message, if permitted by the current level.
func (l *ConsoleLogger) Warn(format string, v ...interface{}) {
	l.log(Warn, format, v...)
}

// Error logs an error message, if permitted by the current level.
func (l *ConsoleLogger) Error(format string, v ...interface{}) {
	l.log(Error, format, v...)
}

// Level reads the current logging level.
func (l *ConsoleLogger) Level() Level {
	return l.level
}

// log logs a message to the stream with a timestamp and level indicator, if permitted by the
// current level. Write failures are dropped: there is nowhere left to report them.
func (l *ConsoleLogger) log(level Level, format string, v ...interface{}) {
	if l.level.Enables(level) {
		fmt.Fprintf(
			l.out,
			"%s %s\t%s\n",
			l.now().Format("2006-01-02 15:04:05"),
			level,
			fmt.Sprintf(format, v...),
		)
	}
}
