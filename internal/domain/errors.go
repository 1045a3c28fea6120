package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the probemon domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyStarted is returned when Start() is called more than once.
	ErrAlreadyStarted = errors.New("probemon: already started")

	// ErrNotRunning is returned when Stop() is called before Start().
	ErrNotRunning = errors.New("probemon: not running")

	// ErrShutdownTimeout is returned when the ingestion loop did not terminate
	// within its bounded wait.
	ErrShutdownTimeout = errors.New("probemon: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("probemon: invalid configuration")

	// ErrParse is returned when a framed line is not a valid float.
	ErrParse = errors.New("probemon: parse failure")

	// ErrDurableWrite is returned when appending to the durable log fails.
	ErrDurableWrite = errors.New("probemon: durable write failure")

	// ErrByteSource is returned when the byte source fails with anything other
	// than a clean end-of-stream.
	ErrByteSource = errors.New("probemon: byte source failure")

	// ErrFramingOverrun is returned when the line buffer exceeds its configured
	// cap without a delimiter.
	ErrFramingOverrun = errors.New("probemon: framing overrun")
)

// ParseError describes a line that could not be parsed as a reading.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse line %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse as a match so callers need not know the concrete type.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// WriteError describes a failed append to the durable log.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("append %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrDurableWrite }

// SourceError describes a byte source read failure.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read byte source: %v", e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool { return target == ErrByteSource }
