package thresholdwatcher

import "github.com/bft-labs/probemon/pkg/probemon"

// WithThresholdWatcher returns a probemon Option that enables threshold hot
// reload from cfg.Path.
//
// Usage:
//
//	m, err := probemon.New(cfg,
//	    thresholdwatcher.WithThresholdWatcher(thresholdwatcher.Config{
//	        Path:          "/home/me/.probemon/config.toml",
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithThresholdWatcher(cfg Config) probemon.Option {
	return probemon.WithPlugin(New(cfg))
}
