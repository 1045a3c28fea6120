// Package tui implements the interactive presentation surface on bubbletea.
//
// The bubbletea program is the presentation context: a single goroutine that
// owns the Model. The ingestion goroutine reaches it only through Schedule,
// which enqueues without blocking; a forwarder goroutine hands queued readings
// to Program.Send in production order.
package tui

import (
	"context"
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/internal/ports"
)

// DefaultQueueSize is the hand-off capacity between ingestion and the program.
const DefaultQueueSize = 256

// Surface is a ports.Surface backed by a bubbletea program.
type Surface struct {
	program  *tea.Program
	queue    chan domain.Reading
	paused   *atomic.Bool
	overflow atomic.Uint64
}

// New creates a surface. Extra program options (input/output, alt screen)
// are passed through to bubbletea.
func New(title string, threshold ports.ThresholdSource, queueSize int, opts ...tea.ProgramOption) *Surface {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	paused := &atomic.Bool{}
	return &Surface{
		program: tea.NewProgram(NewModel(title, threshold, paused), opts...),
		queue:   make(chan domain.Reading, queueSize),
		paused:  paused,
	}
}

// Schedule enqueues reading for the program. It never blocks.
func (s *Surface) Schedule(reading domain.Reading) {
	select {
	case s.queue <- reading:
	default:
		s.overflow.Add(1)
	}
}

// IsAccepting reports whether the view is live (not paused).
func (s *Surface) IsAccepting() bool {
	return !s.paused.Load()
}

// SetPaused pauses or resumes the view.
func (s *Surface) SetPaused(paused bool) {
	s.paused.Store(paused)
}

// Run runs the program until the user quits or ctx is canceled.
// It returns nil in both cases.
func (s *Surface) Run(ctx context.Context) error {
	fwdCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.forward(fwdCtx)

	_, err := s.program.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled)) {
		return nil
	}
	return err
}

func (s *Surface) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-s.queue:
			s.program.Send(readingMsg(r))
		}
	}
}

// Quit asks the program to exit.
func (s *Surface) Quit() {
	s.program.Quit()
}

// Overflow returns how many readings were dropped because the queue was full.
func (s *Surface) Overflow() uint64 {
	return s.overflow.Load()
}

var _ ports.Surface = (*Surface)(nil)
