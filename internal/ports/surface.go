package ports

import "github.com/bft-labs/probemon/internal/domain"

// Surface is the presentation surface fed by the live sink.
// The surface runs on its own execution context; the ingestion goroutine only
// ever hands readings over through Schedule.
type Surface interface {
	// Schedule hands reading to the surface's own context. It must not block.
	Schedule(reading domain.Reading)

	// IsAccepting reports whether the surface is currently updating.
	// Readings offered while it returns false are dropped.
	IsAccepting() bool
}

// ThresholdSource supplies the current alert threshold.
type ThresholdSource interface {
	Threshold() float64
}
