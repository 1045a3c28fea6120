package domain

import "time"

// Reading is one timestamped sample extracted from the probe byte stream.
// A Reading is a value type; sinks receive copies and never share state.
type Reading struct {
	// Value is the temperature in degrees Celsius.
	Value float32

	// Timestamp is the wall-clock instant the sample was parsed.
	Timestamp time.Time
}

// NewReading creates a Reading for value observed at ts.
func NewReading(value float32, ts time.Time) Reading {
	return Reading{Value: value, Timestamp: ts}
}

// Below reports whether the reading is strictly below threshold. The
// comparison is done at the reading's float32 precision, so a sample of
// "62.8" is not below a threshold of 62.8.
func (r Reading) Below(threshold float64) bool {
	return r.Value < float32(threshold)
}
