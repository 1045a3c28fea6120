package probemon

import (
	"time"

	"github.com/bft-labs/probemon/internal/domain"
)

// StateChangeEvent is emitted on every lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// ReadingEvent is emitted after a reading reached the durable log.
type ReadingEvent struct {
	Value     float32
	Timestamp time.Time

	// Displayed is false when the live sink dropped the reading.
	Displayed bool
}

// ShutdownTimeoutEvent is emitted when a bounded wait expires during Stop.
type ShutdownTimeoutEvent struct {
	// Phase is "stop" for the first wait and "interrupt" for the second.
	Phase   string
	Timeout time.Duration
}

// EventHandler receives Monitor events.
// OnReading is called synchronously from the ingestion goroutine and must
// return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnReading(event ReadingEvent)
	OnShutdownTimeout(event ShutdownTimeoutEvent)
}

// BaseEventHandler provides no-op implementations for embedding.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)         {}
func (BaseEventHandler) OnReading(ReadingEvent)                 {}
func (BaseEventHandler) OnShutdownTimeout(ShutdownTimeoutEvent) {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnReading(reading domain.Reading, displayed bool) {
	if e.handler == nil {
		return
	}
	e.handler.OnReading(ReadingEvent{
		Value:     reading.Value,
		Timestamp: reading.Timestamp,
		Displayed: displayed,
	})
}

func (e *eventEmitterWrapper) onShutdownTimeout(phase string, timeout time.Duration) {
	if e.handler == nil {
		return
	}
	e.handler.OnShutdownTimeout(ShutdownTimeoutEvent{Phase: phase, Timeout: timeout})
}
