// Package lifecycle provides the session state machine used by the
// ingestion controller.
//
// # Usage
//
//	manager := lifecycle.NewManager(logger, eventEmitter)
//
//	if err := manager.TransitionTo(lifecycle.StateRunning, "Start() called"); err != nil {
//	    return err
//	}
//
//	manager.AddWorker()
//	go func() {
//	    defer manager.WorkerDone()
//	    // ... ingestion loop ...
//	}()
//
//	// Bounded-wait join
//	if err := manager.WaitWithTimeout(2 * time.Second); err != nil {
//	    // interrupt the worker, then wait again with a longer timeout
//	}
//
// # State Machine
//
// Valid state transitions:
//   - NotStarted -> Running
//   - Running -> StopRequested, Failed
//   - Failed -> StopRequested, Stopped
//   - StopRequested -> Stopped
//
// Stopped is terminal; a session cannot be restarted.
//
// # Version
//
// Current version: 2.0.0
// Minimum compatible version: 2.0.0
//
// See version.go for version constants that can be used programmatically.
package lifecycle
