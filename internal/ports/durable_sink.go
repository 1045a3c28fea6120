package ports

import "github.com/bft-labs/probemon/internal/domain"

// DurableSink appends readings to an append-only log.
// Implementations must perform one write per reading with no buffering across
// readings, so a crash loses at most the in-flight write.
type DurableSink interface {
	// Record appends reading. It is not idempotent: recording the same
	// reading twice produces two rows.
	Record(reading domain.Reading) error

	// Close releases the log destination.
	Close() error
}
