// Package console implements a headless presentation surface that prints
// each reading with a threshold mark.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/bft-labs/probemon/internal/adapters/csvlog"
	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/internal/ports"
	"github.com/bft-labs/probemon/pkg/log"
)

// DefaultQueueSize is the hand-off capacity between ingestion and rendering.
const DefaultQueueSize = 256

const (
	markOK    = "✓"
	markBelow = "⚠"
)

// Surface renders readings on its own goroutine. Schedule only enqueues, so a
// slow writer never stalls ingestion; when the queue is full the reading is
// counted as overflow and dropped.
type Surface struct {
	out       io.Writer
	threshold ports.ThresholdSource
	logger    log.Logger

	queue    chan domain.Reading
	paused   atomic.Bool
	overflow atomic.Uint64
	rendered atomic.Uint64

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
}

// New creates a console surface writing to out.
func New(out io.Writer, threshold ports.ThresholdSource, logger log.Logger, queueSize int) *Surface {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Surface{
		out:       out,
		threshold: threshold,
		logger:    logger,
		queue:     make(chan domain.Reading, queueSize),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Schedule enqueues reading for rendering. It never blocks.
func (s *Surface) Schedule(reading domain.Reading) {
	select {
	case s.queue <- reading:
	default:
		s.overflow.Add(1)
	}
}

// IsAccepting reports whether the surface is updating.
func (s *Surface) IsAccepting() bool {
	return !s.paused.Load()
}

// SetPaused pauses or resumes the surface.
func (s *Surface) SetPaused(paused bool) {
	s.paused.Store(paused)
}

// Run renders queued readings until ctx is canceled or Close is called.
// Readings already queued are rendered before Run returns.
func (s *Surface) Run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case r := <-s.queue:
			s.render(r)
		case <-ctx.Done():
			s.drain()
			return
		case <-s.quit:
			s.drain()
			return
		}
	}
}

func (s *Surface) drain() {
	for {
		select {
		case r := <-s.queue:
			s.render(r)
		default:
			return
		}
	}
}

func (s *Surface) render(r domain.Reading) {
	mark := markOK
	below := s.threshold != nil && r.Below(s.threshold.Threshold())
	if below {
		mark = markBelow
		s.logger.Warn("reading below threshold",
			log.Float32("value", r.Value),
			log.Float64("threshold", s.threshold.Threshold()),
			log.Time("at", r.Timestamp),
		)
	}
	fmt.Fprintf(s.out, "%s %s\n", mark, csvlog.FormatValue(r.Value))
	s.rendered.Add(1)
}

// Close stops Run and waits for it to return.
func (s *Surface) Close() {
	s.quitOnce.Do(func() { close(s.quit) })
	<-s.done
}

// Overflow returns how many readings were dropped because the queue was full.
func (s *Surface) Overflow() uint64 {
	return s.overflow.Load()
}

// Rendered returns how many readings were printed.
func (s *Surface) Rendered() uint64 {
	return s.rendered.Load()
}

var _ ports.Surface = (*Surface)(nil)
