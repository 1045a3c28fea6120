package probemon

import "github.com/bft-labs/probemon/internal/domain"

// Errors returned by the Monitor. Check with errors.Is.
var (
	ErrAlreadyStarted  = domain.ErrAlreadyStarted
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrParse           = domain.ErrParse
	ErrDurableWrite    = domain.ErrDurableWrite
	ErrByteSource      = domain.ErrByteSource
	ErrFramingOverrun  = domain.ErrFramingOverrun
)
