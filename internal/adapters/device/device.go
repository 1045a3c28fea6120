// Package device provides the byte source over an already-configured device
// node, named pipe, or file. Line discipline and baud rate are set up outside
// probemon (for example with stty); this package only reads.
package device

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/internal/ports"
)

// StdinPath selects standard input as the byte source.
const StdinPath = "-"

// Source reads raw bytes from a device handle.
// Close is idempotent and safe to call while a Read is blocked.
type Source struct {
	name string
	rc   io.ReadCloser

	bytesRead atomic.Uint64
	closeOnce sync.Once
	closeErr  error
	closed    atomic.Bool
}

// Open opens path for reading. StdinPath selects os.Stdin.
func Open(path string) (*Source, error) {
	if path == StdinPath {
		return New("stdin", os.Stdin), nil
	}

	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, &domain.SourceError{Err: fmt.Errorf("open %s: %w", path, err)}
	}
	return New(path, f), nil
}

// New wraps an existing reader.
func New(name string, rc io.ReadCloser) *Source {
	return &Source{name: name, rc: rc}
}

// Read reads the next chunk from the device.
func (s *Source) Read(p []byte) (int, error) {
	n, err := s.rc.Read(p)
	if n > 0 {
		s.bytesRead.Add(uint64(n))
	}
	return n, err
}

// Close releases the device handle exactly once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.closeErr = s.rc.Close()
	})
	return s.closeErr
}

// Name returns the device path or "stdin".
func (s *Source) Name() string {
	return s.name
}

// BytesRead returns the number of bytes delivered so far.
func (s *Source) BytesRead() uint64 {
	return s.bytesRead.Load()
}

// Closed reports whether Close has been called.
func (s *Source) Closed() bool {
	return s.closed.Load()
}

var _ ports.ByteSource = (*Source)(nil)
