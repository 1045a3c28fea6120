// Package thresholdwatcher provides hot reload of the alert threshold.
// When enabled, it watches a TOML file for changes and stores its
// `threshold` value in the Monitor's shared threshold cell.
package thresholdwatcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/probemon/pkg/log"
	"github.com/bft-labs/probemon/pkg/probemon"
)

// ErrNoThreshold is returned by Load when the file has no threshold key.
var ErrNoThreshold = errors.New("thresholdwatcher: threshold not set")

// Plugin implements threshold watching functionality.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	path          string
	debounceDelay time.Duration

	// Runtime state
	cell     *probemon.ThresholdCell
	logger   probemon.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	reloads  int
}

// Config holds configuration options for the threshold watcher plugin.
type Config struct {
	// Path is the TOML file holding `threshold = <celsius>`.
	Path string

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:          path,
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new threshold watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}

	return &Plugin{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "thresholdwatcher"
}

// Initialize applies the current file value and starts the watcher.
func (p *Plugin) Initialize(ctx context.Context, cfg probemon.PluginConfig) error {
	p.mu.Lock()
	p.cell = cfg.Threshold
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	p.mu.Unlock()

	if p.path == "" || p.cell == nil {
		p.logger.Warn("threshold watcher disabled: no file or threshold cell")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// The directory is watched so that editors replacing the file by rename
	// are still observed.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	p.reload()

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("threshold watcher initialized", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

// Reloads returns how many times the threshold was applied from the file.
func (p *Plugin) Reloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reloads
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("threshold watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reload()
	})
}

// reload keeps the previous threshold when the file is missing or invalid.
func (p *Plugin) reload() {
	v, err := Load(p.path)
	if err != nil {
		p.logger.Warn("threshold not reloaded",
			log.String("path", p.path),
			log.Err(err))
		return
	}

	prev := p.cell.Threshold()
	p.cell.Set(v)

	p.mu.Lock()
	p.reloads++
	p.mu.Unlock()

	if prev != v {
		p.logger.Info("threshold updated",
			log.Float64("previous", prev),
			log.Float64("threshold", v))
	}
}

type thresholdFile struct {
	Threshold *float64 `toml:"threshold"`
}

// Load reads the threshold value from a TOML file.
func Load(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var f thresholdFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Threshold == nil {
		return 0, ErrNoThreshold
	}
	if math.IsNaN(*f.Threshold) || math.IsInf(*f.Threshold, 0) {
		return 0, fmt.Errorf("%w: threshold must be finite", probemon.ErrInvalidConfig)
	}
	return *f.Threshold, nil
}
