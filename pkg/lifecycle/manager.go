package lifecycle

import (
	"sync"
	"time"

	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/pkg/log"
)

// Common lifecycle errors. They are the domain sentinels so callers can match
// either.
var (
	ErrNotRunning      = domain.ErrNotRunning
	ErrAlreadyStarted  = domain.ErrAlreadyStarted
	ErrShutdownTimeout = domain.ErrShutdownTimeout
)

// DefaultManager implements Manager.
//
// A session is single-shot:
//
//	NotStarted -> Running -> StopRequested -> Stopped
//	                 |                           ^
//	                 +--------> Failed ----------+
type DefaultManager struct {
	mu           sync.RWMutex
	state        State
	wg           sync.WaitGroup
	logger       log.Logger
	eventEmitter EventEmitter
}

// NewManager creates a new lifecycle manager in StateNotStarted.
func NewManager(logger log.Logger, emitter EventEmitter) *DefaultManager {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &DefaultManager{
		state:        StateNotStarted,
		logger:       logger,
		eventEmitter: emitter,
	}
}

// State returns the current lifecycle state.
func (l *DefaultManager) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to transition to a new state.
// Returns an error if the transition is not valid.
func (l *DefaultManager) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	if err := validTransition(oldState, newState); err != nil {
		l.mu.Unlock()
		return err
	}

	l.state = newState
	l.mu.Unlock()

	// Emit event outside of lock
	if l.eventEmitter != nil {
		l.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Info("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)

	return nil
}

func validTransition(from, to State) error {
	switch from {
	case StateNotStarted:
		if to != StateRunning {
			return ErrNotRunning
		}
	case StateRunning:
		if to != StateStopRequested && to != StateFailed {
			return ErrAlreadyStarted
		}
	case StateStopRequested:
		if to != StateStopped {
			return ErrAlreadyStarted
		}
	case StateFailed:
		if to != StateStopRequested && to != StateStopped {
			return ErrNotRunning
		}
	case StateStopped:
		if to == StateRunning {
			return ErrAlreadyStarted
		}
		return ErrNotRunning
	}
	return nil
}

// CanStart returns true if Start() can be called.
func (l *DefaultManager) CanStart() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateNotStarted
}

// CanStop returns true if Stop() can be called.
func (l *DefaultManager) CanStop() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateRunning || l.state == StateFailed
}

// AddWorker increments the worker count.
func (l *DefaultManager) AddWorker() {
	l.wg.Add(1)
}

// WorkerDone decrements the worker count.
func (l *DefaultManager) WorkerDone() {
	l.wg.Done()
}

// WaitWithTimeout waits for all workers to finish with a timeout.
// Returns ErrShutdownTimeout if the timeout expires. It may be called again
// after a timeout to extend the wait.
func (l *DefaultManager) WaitWithTimeout(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		l.logger.Warn("bounded wait expired",
			log.Duration("timeout", timeout),
		)
		return ErrShutdownTimeout
	}
}
