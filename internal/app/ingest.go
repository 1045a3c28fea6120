package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/internal/ports"
	"github.com/bft-labs/probemon/pkg/log"
)

// DefaultChunkSize is the read buffer size used when none is configured.
const DefaultChunkSize = 1024

// IngestorConfig contains configuration for the ingestion loop.
type IngestorConfig struct {
	// ChunkSize is the size of the buffer handed to each Read.
	ChunkSize int

	// MaxLineBytes caps bytes buffered without a delimiter. Zero is unbounded.
	MaxLineBytes int
}

// ReadingEmitter is called for every reading that reached the durable log.
type ReadingEmitter interface {
	OnReading(reading domain.Reading, displayed bool)
}

// Ingestor owns the read cursor and drives
// Framer -> ParseReading -> {DurableSink, LiveSink}.
//
// Run is the only blocking operation. Stop is cooperative first (RequestStop,
// checked between chunks) and forcible second (Interrupt, which closes the
// source so a parked Read returns).
type Ingestor struct {
	config  IngestorConfig
	source  ports.ByteSource
	durable ports.DurableSink
	live    *LiveSink
	framer  *Framer
	logger  log.Logger
	emitter ReadingEmitter
	now     func() time.Time

	stop        atomic.Bool
	interrupted atomic.Bool
	readings    atomic.Uint64

	releaseOnce sync.Once
	releaseErr  error
}

// NewIngestor creates an ingestion loop over source.
func NewIngestor(
	config IngestorConfig,
	source ports.ByteSource,
	durable ports.DurableSink,
	live *LiveSink,
	logger log.Logger,
	emitter ReadingEmitter,
) *Ingestor {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if live == nil {
		live = NewLiveSink(nil, logger)
	}
	return &Ingestor{
		config:  config,
		source:  source,
		durable: durable,
		live:    live,
		framer:  NewFramer(config.MaxLineBytes),
		logger:  logger,
		emitter: emitter,
		now:     time.Now,
	}
}

// SetClock replaces the timestamp source. Must be called before Run.
func (i *Ingestor) SetClock(now func() time.Time) {
	i.now = now
}

// Run executes the ingestion loop until the source is exhausted, a stop is
// requested, ctx is canceled, or a fatal error occurs. The source is released
// on return. Returns nil for every clean exit.
func (i *Ingestor) Run(ctx context.Context) error {
	defer func() {
		if err := i.Release(); err != nil {
			i.logger.Warn("failed to release byte source", log.Err(err))
		}
	}()

	buf := make([]byte, i.config.ChunkSize)

	for {
		if i.shouldExit(ctx) {
			i.logger.Info("ingestion stopped", log.Uint64("readings", i.readings.Load()))
			return nil
		}

		n, err := i.source.Read(buf)

		// Bytes that arrive after a stop are not ingested.
		if i.shouldExit(ctx) {
			i.logger.Info("ingestion stopped", log.Uint64("readings", i.readings.Load()))
			return nil
		}

		if n > 0 {
			if ferr := i.ingest(buf[:n]); ferr != nil {
				i.logger.Error("ingestion aborted", log.Err(ferr))
				return ferr
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				i.logger.Info("byte source exhausted", log.Uint64("readings", i.readings.Load()))
				return nil
			}
			serr := &domain.SourceError{Err: err}
			i.logger.Error("ingestion aborted", log.Err(serr))
			return serr
		}
	}
}

// ingest frames chunk and fans every completed line out to both sinks.
// The durable append always precedes the live publish.
func (i *Ingestor) ingest(chunk []byte) error {
	lines, err := i.framer.Feed(chunk)
	for _, line := range lines {
		reading, perr := ParseReading(line, i.now())
		if perr != nil {
			return perr
		}

		if werr := i.durable.Record(reading); werr != nil {
			return werr
		}

		displayed := i.live.Publish(reading)
		i.readings.Add(1)

		if i.emitter != nil {
			i.emitter.OnReading(reading, displayed)
		}
	}
	return err
}

func (i *Ingestor) shouldExit(ctx context.Context) bool {
	return i.stop.Load() || i.interrupted.Load() || ctx.Err() != nil
}

// RequestStop sets the cooperative stop flag. The loop observes it before and
// after every read.
func (i *Ingestor) RequestStop() {
	i.stop.Store(true)
}

// StopRequested reports whether RequestStop has been called.
func (i *Ingestor) StopRequested() bool {
	return i.stop.Load()
}

// Interrupt forcibly unblocks a parked Read by releasing the source.
func (i *Ingestor) Interrupt() error {
	i.interrupted.Store(true)
	return i.Release()
}

// Release closes the byte source exactly once. Later calls return the first
// result.
func (i *Ingestor) Release() error {
	i.releaseOnce.Do(func() {
		i.releaseErr = i.source.Close()
	})
	return i.releaseErr
}

// Readings returns how many readings reached the durable log.
func (i *Ingestor) Readings() uint64 {
	return i.readings.Load()
}

// Live returns the live sink fed by this loop.
func (i *Ingestor) Live() *LiveSink {
	return i.live
}
