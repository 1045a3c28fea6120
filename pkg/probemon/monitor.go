package probemon

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bft-labs/probemon/internal/adapters/csvlog"
	"github.com/bft-labs/probemon/internal/app"
	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/internal/ports"
	"github.com/bft-labs/probemon/pkg/lifecycle"
	"github.com/bft-labs/probemon/pkg/log"
)

// Monitor is the lifecycle controller for one ingestion session.
// Use New() to create an instance, then Start() to begin ingesting.
type Monitor struct {
	config    Config
	opts      options
	lifecycle *lifecycle.DefaultManager
	logger    log.Logger
	emitter   *eventEmitterWrapper
	threshold *app.ThresholdCell

	mu       sync.Mutex
	ingestor *app.Ingestor
	durable  ports.DurableSink
	live     *app.LiveSink
	cancel   context.CancelFunc
	done     chan struct{}
	runErr   error
}

// New creates a Monitor with the given configuration.
// The instance is created in StateNotStarted; call Start() to begin.
// Returns an error if configuration is invalid. A zero Config.Threshold is
// used as is, so build cfg from DefaultConfig() unless 0 is intended.
func New(cfg Config, opts ...Option) (*Monitor, error) {
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.durableSink == nil && cfg.OutputPath == "" {
		return nil, fmt.Errorf("%w: output path is required", domain.ErrInvalidConfig)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}

	threshold := o.threshold
	if threshold == nil {
		threshold = app.NewThresholdCell(cfg.Threshold)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	return &Monitor{
		config:    cfg,
		opts:      o,
		lifecycle: lifecycle.NewManager(o.logger, emitter),
		logger:    o.logger,
		emitter:   emitter,
		threshold: threshold,
		done:      make(chan struct{}),
	}, nil
}

// Start launches the ingestion loop over source on its own goroutine and
// returns immediately. The session log is created here. A Monitor can be
// started once; later calls return ErrAlreadyStarted.
func (m *Monitor) Start(ctx context.Context, source ByteSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.lifecycle.CanStart() {
		return domain.ErrAlreadyStarted
	}
	if source == nil {
		return fmt.Errorf("%w: byte source is required", domain.ErrInvalidConfig)
	}

	durable := m.opts.durableSink
	if durable == nil {
		sink, err := csvlog.Create(m.config.OutputPath, csvlog.Options{Millis: m.config.TimestampMillis})
		if err != nil {
			return fmt.Errorf("create session log: %w", err)
		}
		durable = sink
		m.logger.Info("logging readings", log.String("path", m.config.OutputPath))
	}
	m.durable = durable

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	pluginCfg := PluginConfig{
		OutputPath: m.config.OutputPath,
		Threshold:  m.threshold,
		Logger:     m.logger,
	}
	for i, p := range m.opts.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			m.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			cancel()
			m.shutdownPlugins(m.opts.plugins[:i])
			_ = durable.Close()
			return fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
		m.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	m.live = app.NewLiveSink(m.opts.surface, m.logger)
	m.ingestor = app.NewIngestor(app.IngestorConfig{
		ChunkSize:    m.config.ChunkSize,
		MaxLineBytes: m.config.MaxLineBytes,
	}, source, durable, m.live, m.logger, m.emitter)
	m.ingestor.SetClock(m.opts.clock)

	if err := m.lifecycle.TransitionTo(lifecycle.StateRunning, "Start() called"); err != nil {
		cancel()
		return err
	}

	ingestor := m.ingestor
	m.lifecycle.AddWorker()
	go func() {
		defer m.lifecycle.WorkerDone()
		defer close(m.done)

		err := ingestor.Run(runCtx)
		if err == nil {
			return
		}

		m.mu.Lock()
		m.runErr = err
		m.mu.Unlock()

		// Only a running session fails; during shutdown the error is just recorded.
		_ = m.lifecycle.TransitionTo(lifecycle.StateFailed, err.Error())
	}()

	return nil
}

// Stop shuts the session down:
//
//  1. set the cooperative stop flag and wait up to StopTimeout,
//  2. if the loop is still parked in a read, interrupt it by releasing the
//     byte source and wait up to InterruptTimeout,
//  3. release the byte source and the durable sink regardless.
//
// A timeout is logged and reported through EventHandler.OnShutdownTimeout but
// never returned. Stop returns the fatal ingestion error, if any, or nil.
func (m *Monitor) Stop() error {
	m.mu.Lock()

	if !m.lifecycle.CanStop() {
		m.mu.Unlock()
		return domain.ErrNotRunning
	}

	if err := m.lifecycle.TransitionTo(lifecycle.StateStopRequested, "Stop() called"); err != nil {
		m.mu.Unlock()
		return err
	}

	ingestor := m.ingestor
	ingestor.RequestStop()
	if m.cancel != nil {
		m.cancel()
	}

	m.mu.Unlock()

	reason := "graceful shutdown"
	if err := m.lifecycle.WaitWithTimeout(m.config.StopTimeout); err != nil {
		m.emitter.onShutdownTimeout("stop", m.config.StopTimeout)
		m.logger.Warn("ingestion loop did not stop, interrupting byte source",
			log.Duration("timeout", m.config.StopTimeout))

		if ierr := ingestor.Interrupt(); ierr != nil {
			m.logger.Warn("interrupt byte source failed", log.Err(ierr))
		}

		reason = "interrupted"
		if err := m.lifecycle.WaitWithTimeout(m.config.InterruptTimeout); err != nil {
			m.emitter.onShutdownTimeout("interrupt", m.config.InterruptTimeout)
			m.logger.Warn("ingestion loop unrecovered, abandoning byte source",
				log.Duration("timeout", m.config.InterruptTimeout),
				log.Err(domain.ErrShutdownTimeout))
			reason = "shutdown timeout"
		}
	}

	// Final release is attempted whatever happened above.
	if err := ingestor.Release(); err != nil {
		m.logger.Warn("release byte source failed", log.Err(err))
	}
	if err := m.durable.Close(); err != nil {
		m.logger.Warn("close durable sink failed", log.Err(err))
	}

	m.shutdownPlugins(m.opts.plugins)

	_ = m.lifecycle.TransitionTo(lifecycle.StateStopped, reason)

	return m.Err()
}

func (m *Monitor) shutdownPlugins(plugins []Plugin) {
	shutdownCtx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(shutdownCtx); err != nil {
			m.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
		} else {
			m.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	}
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (m *Monitor) Status() State {
	return m.lifecycle.State()
}

// Done is closed when the ingestion loop has exited, for any reason.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// Err returns the fatal error that terminated the ingestion loop, or nil.
// Match with errors.Is against ErrParse, ErrDurableWrite, ErrByteSource or
// ErrFramingOverrun.
func (m *Monitor) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runErr
}

// Threshold returns the shared alert threshold cell.
func (m *Monitor) Threshold() *ThresholdCell {
	return m.threshold
}

// Stats is a point-in-time snapshot of ingestion counters.
type Stats struct {
	Readings  uint64
	Displayed uint64
	Dropped   uint64
	Latest    float32
	HasLatest bool
}

// Stats returns ingestion counters. Zero before Start.
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	ingestor, live := m.ingestor, m.live
	m.mu.Unlock()

	if ingestor == nil {
		return Stats{}
	}
	latest, ok := live.Latest()
	return Stats{
		Readings:  ingestor.Readings(),
		Displayed: live.Published(),
		Dropped:   live.Dropped(),
		Latest:    latest,
		HasLatest: ok,
	}
}

// IsFatal reports whether err terminated an ingestion session.
func IsFatal(err error) bool {
	return errors.Is(err, domain.ErrParse) ||
		errors.Is(err, domain.ErrDurableWrite) ||
		errors.Is(err, domain.ErrByteSource) ||
		errors.Is(err, domain.ErrFramingOverrun)
}
