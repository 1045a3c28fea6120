// Package probemon provides an embeddable telemetry ingestion pipeline for a
// serial temperature probe.
//
// A Monitor reads a CRLF-framed byte stream, parses each line as a
// temperature, appends every reading to a durable CSV log, and offers it to a
// live presentation surface without ever blocking ingestion.
//
// # Basic Usage
//
//	cfg := probemon.DefaultConfig()
//	cfg.OutputPath = "/var/log/probe/session.csv"
//
//	m, err := probemon.New(cfg, probemon.WithSurface(surface))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := m.Start(ctx, source); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal or <-m.Done() ...
//
//	if err := m.Stop(); err != nil {
//	    log.Printf("session ended with: %v", err)
//	}
//
// # Framing
//
// The first logical line after the stream starts is always discarded, since
// the device may have been opened mid-transmission. A malformed line is fatal
// to the session: the loop stops and [Monitor.Err] reports [ErrParse].
//
// # Shutdown
//
// [Monitor.Stop] asks the loop to stop and waits [Config.StopTimeout]. A loop
// still parked in a read is interrupted by releasing the byte source, then
// given [Config.InterruptTimeout]. Timeouts are logged and reported through
// [EventHandler.OnShutdownTimeout]; Stop itself always completes.
//
// # Lifecycle States
//
// A Monitor moves through [StateNotStarted], [StateRunning],
// [StateStopRequested] and [StateStopped]. A fatal ingestion error moves a
// running Monitor to [StateFailed]; Stop still has to be called to release
// resources. A Monitor cannot be restarted.
//
// # Plugins
//
//	import "github.com/bft-labs/probemon/plugins/thresholdwatcher"
//
//	m, err := probemon.New(cfg,
//	    thresholdwatcher.WithThresholdWatcher(thresholdwatcher.Config{Path: cfgPath}),
//	)
package probemon
