package app

import (
	"math"
	"sync/atomic"
)

// ThresholdCell holds the alert threshold shared between the config watcher
// (single writer) and the presentation surfaces (readers).
type ThresholdCell struct {
	bits atomic.Uint64
}

// NewThresholdCell creates a cell holding v.
func NewThresholdCell(v float64) *ThresholdCell {
	c := &ThresholdCell{}
	c.Set(v)
	return c
}

// Threshold returns the current threshold.
func (c *ThresholdCell) Threshold() float64 {
	return math.Float64frombits(c.bits.Load())
}

// Set replaces the threshold.
func (c *ThresholdCell) Set(v float64) {
	c.bits.Store(math.Float64bits(v))
}
