package app

import (
	"math"
	"sync/atomic"

	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/internal/ports"
	"github.com/bft-labs/probemon/pkg/log"
)

// LiveSink forwards readings to a presentation surface without ever blocking
// the ingestion goroutine. Readings offered while the surface is not accepting
// are dropped; there is no replay.
type LiveSink struct {
	surface ports.Surface
	logger  log.Logger

	latest    atomic.Uint32
	hasLatest atomic.Bool
	published atomic.Uint64
	dropped   atomic.Uint64
}

// NewLiveSink creates a live sink for surface. A nil surface drops everything.
func NewLiveSink(surface ports.Surface, logger log.Logger) *LiveSink {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &LiveSink{surface: surface, logger: logger}
}

// Publish offers reading to the surface. It never blocks and never fails.
// Returns true if the reading was scheduled for display.
func (s *LiveSink) Publish(reading domain.Reading) (scheduled bool) {
	s.latest.Store(math.Float32bits(reading.Value))
	s.hasLatest.Store(true)

	if s.surface == nil || !s.surface.IsAccepting() {
		s.dropped.Add(1)
		return false
	}

	defer func() {
		// A misbehaving surface must not take ingestion down with it.
		if r := recover(); r != nil {
			s.dropped.Add(1)
			s.logger.Error("live surface panicked", log.Any("panic", r))
			scheduled = false
		}
	}()

	s.surface.Schedule(reading)
	s.published.Add(1)
	return true
}

// Latest returns the most recently produced value, paused or not.
func (s *LiveSink) Latest() (float32, bool) {
	return math.Float32frombits(s.latest.Load()), s.hasLatest.Load()
}

// Published returns how many readings were scheduled on the surface.
func (s *LiveSink) Published() uint64 {
	return s.published.Load()
}

// Dropped returns how many readings were dropped.
func (s *LiveSink) Dropped() uint64 {
	return s.dropped.Load()
}
