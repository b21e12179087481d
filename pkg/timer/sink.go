package timer

import (
	"bytes"
	"io"
	"os"
)

// Sink is an output a finalized timer appends its line to.
type Sink interface {
	// Emit appends one line of text, which includes its own line terminator.
	Emit(line string) error
}

// OpenMode selects how a PathSink opens an existing file.
type OpenMode int

const (
	// Append adds the line after any existing content.
	Append OpenMode = iota
	// Truncate discards existing content before writing the line.
	Truncate
)

// flusher is implemented by buffered streams, like *bufio.Writer.
type flusher interface {
	Flush() error
}

// ConsoleSink writes to a process output stream, standard output unless otherwise specified.
type ConsoleSink struct {
	out io.Writer
}

// NewConsoleSink creates a sink writing to out, or to standard output if out is nil.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	if out == nil {
		out = os.Stdout
	}

	return &ConsoleSink{out}
}

// Emit writes the line and flushes the stream if it is buffered. Files, including os.Stdout, are
// not synced: their writes are unbuffered in-process, and Sync fails on pipes and terminals. A
// failure here means the output stream itself is broken, so the error is marked fatal.
func (s *ConsoleSink) Emit(line string) error {
	if _, err := io.WriteString(s.out, line); err != nil {
		return &SinkWriteError{Sink: "console", Fatal: true, Err: err}
	}

	if f, ok := s.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return &SinkWriteError{Sink: "console", Fatal: true, Err: err}
		}
	}

	return nil
}

// FileSink writes to a file opened by the caller. The sink never closes it.
type FileSink struct {
	file *os.File
}

// NewFileSink creates a sink writing to an open file. A nil file discards every line.
func NewFileSink(file *os.File) *FileSink {
	return &FileSink{file}
}

// Emit writes the line to the file.
func (s *FileSink) Emit(line string) error {
	if s.file == nil {
		return nil
	}

	if _, err := s.file.WriteString(line); err != nil {
		return &SinkWriteError{Sink: "file", Path: s.file.Name(), Err: err}
	}

	return nil
}

// PathSink opens a file by path only when a line is emitted, and closes it right after.
type PathSink struct {
	path string
	mode OpenMode
}

// NewPathSink creates a sink for the file at path. An empty path discards every line without
// touching the filesystem.
func NewPathSink(path string, mode OpenMode) *PathSink {
	return &PathSink{path: path, mode: mode}
}

// Emit opens the file (creating it if needed), writes the line and closes it.
func (s *PathSink) Emit(line string) error {
	if s.path == "" {
		return nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if s.mode == Truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}

	file, err := os.OpenFile(s.path, flags, 0644)
	if err != nil {
		return &SinkWriteError{Sink: "path", Path: s.path, Err: err}
	}

	_, err = file.WriteString(line)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return &SinkWriteError{Sink: "path", Path: s.path, Err: err}
	}

	return nil
}

// BufferSink accumulates lines in memory.
type BufferSink struct {
	buf *bytes.Buffer
}

// NewBufferSink creates a sink appending to buf, or to a fresh buffer if buf is nil.
func NewBufferSink(buf *bytes.Buffer) *BufferSink {
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	return &BufferSink{buf}
}

// Emit appends the line to the buffer.
func (s *BufferSink) Emit(line string) error {
	if _, err := s.buf.WriteString(line); err != nil {
		return &SinkWriteError{Sink: "buffer", Err: err}
	}

	return nil
}

// String returns everything emitted so far.
func (s *BufferSink) String() string {
	return s.buf.String()
}

// DiscardSink drops every line.
type DiscardSink struct{}

// Emit noops.
func (DiscardSink) Emit(line string) error {
	return nil
}

var (
	_ Sink = (*ConsoleSink)(nil)
	_ Sink = (*FileSink)(nil)
	_ Sink = (*PathSink)(nil)
	_ Sink = (*BufferSink)(nil)
	_ Sink = DiscardSink{}
)
