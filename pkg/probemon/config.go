package probemon

import (
	"fmt"
	"time"

	"github.com/bft-labs/probemon/internal/app"
	"github.com/bft-labs/probemon/internal/domain"
)

// Defaults applied by SetDefaults.
const (
	// DefaultThreshold is the minimum safe temperature in degrees Celsius.
	DefaultThreshold = 62.8

	DefaultChunkSize        = app.DefaultChunkSize
	DefaultStopTimeout      = 2 * time.Second
	DefaultInterruptTimeout = 20 * time.Second
)

// Config holds the configuration for a Monitor.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// Threshold is the alert threshold used by presentation surfaces.
	// It never affects ingestion or logging. Zero is a valid threshold and is
	// not replaced by SetDefaults; start from DefaultConfig() to get 62.8.
	Threshold float64

	// OutputPath is the CSV session log. Required unless a durable sink is
	// injected with WithDurableSink.
	OutputPath string

	// TimestampMillis writes HH:MM:SS.mmm instead of HH:MM:SS.
	TimestampMillis bool

	// ChunkSize is the read buffer size. Default: 1024
	ChunkSize int

	// MaxLineBytes caps bytes buffered without a delimiter. Zero is unbounded;
	// exceeding a non-zero cap is fatal (ErrFramingOverrun).
	MaxLineBytes int

	// StopTimeout is the first bounded wait after a cooperative stop.
	// Default: 2s
	StopTimeout time.Duration

	// InterruptTimeout is the second bounded wait after forcibly
	// interrupting the byte source. Default: 20s
	InterruptTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Threshold:        DefaultThreshold,
		ChunkSize:        DefaultChunkSize,
		StopTimeout:      DefaultStopTimeout,
		InterruptTimeout: DefaultInterruptTimeout,
	}
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.StopTimeout <= 0 {
		c.StopTimeout = DefaultStopTimeout
	}
	if c.InterruptTimeout <= 0 {
		c.InterruptTimeout = DefaultInterruptTimeout
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxLineBytes < 0 {
		return fmt.Errorf("%w: max line bytes must not be negative", domain.ErrInvalidConfig)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", domain.ErrInvalidConfig)
	}
	if c.StopTimeout <= 0 || c.InterruptTimeout <= 0 {
		return fmt.Errorf("%w: stop and interrupt timeouts must be positive", domain.ErrInvalidConfig)
	}
	if c.InterruptTimeout < c.StopTimeout {
		return fmt.Errorf("%w: interrupt timeout (%v) must not be shorter than stop timeout (%v)",
			domain.ErrInvalidConfig, c.InterruptTimeout, c.StopTimeout)
	}
	return nil
}
