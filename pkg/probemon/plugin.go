package probemon

import (
	"context"

	"github.com/bft-labs/probemon/pkg/log"
)

// Plugin extends a Monitor with optional behavior.
// Plugins are initialized in registration order when the Monitor starts and
// shut down in reverse order when it stops.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to every plugin on Initialize.
type PluginConfig struct {
	// OutputPath is the session log path (empty if a sink was injected).
	OutputPath string

	// Threshold is the shared alert threshold cell. Plugins may update it.
	Threshold *ThresholdCell

	Logger log.Logger
}
