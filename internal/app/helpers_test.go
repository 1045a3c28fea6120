package app

import (
	"errors"
	"io"
	"sync"

	"github.com/bft-labs/probemon/internal/domain"
)

// memorySink records readings in memory, optionally failing after N rows.
type memorySink struct {
	mu       sync.Mutex
	rows     []domain.Reading
	failAt   int
	closed   bool
	writeErr error
}

func (m *memorySink) Record(r domain.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAt > 0 && len(m.rows)+1 >= m.failAt {
		return &domain.WriteError{Path: "memory", Err: m.writeErr}
	}
	m.rows = append(m.rows, r)
	return nil
}

func (m *memorySink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *memorySink) Values() []float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float32, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Value
	}
	return out
}

// fakeSurface records scheduled readings and can be paused.
type fakeSurface struct {
	mu        sync.Mutex
	scheduled []domain.Reading
	paused    bool
	panics    bool
}

func (f *fakeSurface) Schedule(r domain.Reading) {
	if f.panics {
		panic("surface exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, r)
}

func (f *fakeSurface) IsAccepting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.paused
}

func (f *fakeSurface) SetPaused(p bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = p
}

func (f *fakeSurface) Values() []float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]float32, len(f.scheduled))
	for i, r := range f.scheduled {
		out[i] = r.Value
	}
	return out
}

// chunkSource yields fixed chunks, then err (io.EOF if nil).
type chunkSource struct {
	mu     sync.Mutex
	chunks [][]byte
	err    error
	closed bool
	reads  int
}

func newChunkSource(chunks ...string) *chunkSource {
	s := &chunkSource{}
	for _, c := range chunks {
		s.chunks = append(s.chunks, []byte(c))
	}
	return s
}

func (s *chunkSource) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.closed {
		return 0, errors.New("read on closed source")
	}
	if len(s.chunks) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}
	n := copy(p, s.chunks[0])
	if n < len(s.chunks[0]) {
		s.chunks[0] = s.chunks[0][n:]
	} else {
		s.chunks = s.chunks[1:]
	}
	return n, nil
}

func (s *chunkSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *chunkSource) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// recordingEmitter collects OnReading callbacks.
type recordingEmitter struct {
	mu        sync.Mutex
	displayed []bool
}

func (e *recordingEmitter) OnReading(_ domain.Reading, displayed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.displayed = append(e.displayed, displayed)
}
