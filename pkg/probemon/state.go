package probemon

import "github.com/bft-labs/probemon/pkg/lifecycle"

// State is the lifecycle state of a Monitor.
type State = lifecycle.State

// Lifecycle states.
const (
	StateNotStarted    = lifecycle.StateNotStarted
	StateRunning       = lifecycle.StateRunning
	StateStopRequested = lifecycle.StateStopRequested
	StateStopped       = lifecycle.StateStopped
	StateFailed        = lifecycle.StateFailed
)
