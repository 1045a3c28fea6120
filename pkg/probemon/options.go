package probemon

import (
	"time"

	"github.com/bft-labs/probemon/internal/app"
	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/internal/ports"
	"github.com/bft-labs/probemon/pkg/log"
)

// Re-export collaborator types so embedders need not import internal packages.
type (
	// Reading is one timestamped sample.
	Reading = domain.Reading

	// ByteSource is the blocking probe byte stream.
	ByteSource = ports.ByteSource

	// DurableSink is the append-only log.
	DurableSink = ports.DurableSink

	// Surface is the presentation surface fed by the live sink.
	Surface = ports.Surface

	// ThresholdCell is the shared, hot-reloadable alert threshold.
	ThresholdCell = app.ThresholdCell

	// Logger is the structured logging interface.
	Logger = log.Logger

	// LogField is a structured log field.
	LogField = log.Field
)

// NewThresholdCell creates a threshold cell holding v.
func NewThresholdCell(v float64) *ThresholdCell {
	return app.NewThresholdCell(v)
}

// Option configures optional behavior of a Monitor.
type Option func(*options)

// options holds the optional configuration for a Monitor.
type options struct {
	logger       log.Logger
	eventHandler EventHandler
	plugins      []Plugin
	durableSink  ports.DurableSink
	surface      ports.Surface
	threshold    *app.ThresholdCell
	clock        func() time.Time
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
		clock:  time.Now,
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for monitor events.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the Monitor starts.
// Plugins are initialized in registration order and shutdown in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithDurableSink replaces the CSV session log with sink.
// The Monitor closes the sink on Stop.
func WithDurableSink(sink DurableSink) Option {
	return func(o *options) {
		o.durableSink = sink
	}
}

// WithSurface sets the presentation surface fed by the live sink.
// Without one every reading is dropped by the live sink (and still logged).
func WithSurface(surface Surface) Option {
	return func(o *options) {
		o.surface = surface
	}
}

// WithThresholdCell shares an existing threshold cell with the Monitor, so
// surfaces and plugins observe the same value.
func WithThresholdCell(cell *ThresholdCell) Option {
	return func(o *options) {
		o.threshold = cell
	}
}

// WithClock overrides the timestamp source for readings.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}
