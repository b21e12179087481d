package timer

import "fmt"

// SinkWriteError describes a measurement that could not be written to its sink.
type SinkWriteError struct {
	// Sink names the adapter that failed: console, file, path, buffer or custom.
	Sink string
	// Path is the file path, for path sinks.
	Path string
	// Fatal is set when the process output stream itself failed. File errors are recoverable.
	Fatal bool
	Err   error
}

func (e *SinkWriteError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("timer: error writing to %s sink: path=%s err=%v", e.Sink, e.Path, e.Err)
	}

	return fmt.Sprintf("timer: error writing to %s sink: err=%v", e.Sink, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}
