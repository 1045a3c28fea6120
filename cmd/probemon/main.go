package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/probemon/internal/adapters/console"
	"github.com/bft-labs/probemon/internal/adapters/csvlog"
	"github.com/bft-labs/probemon/internal/adapters/device"
	"github.com/bft-labs/probemon/internal/adapters/tui"
	"github.com/bft-labs/probemon/internal/cliconfig"
	"github.com/bft-labs/probemon/pkg/log"
	"github.com/bft-labs/probemon/pkg/probemon"
	"github.com/bft-labs/probemon/plugins/thresholdwatcher"
)

const helpDescription = `
Log a serial temperature probe to CSV while watching it live.

Highlights:
  - Every reading is appended to <output-dir>/<prefix>_YYYY_MM_DD_HH_MM_SS.csv.
  - The live view never slows down logging; pause it with space.
  - Readings below the threshold are flagged; edit the config file to change it live.
  - The device must already be configured (e.g. stty -F /dev/ttyUSB0 9600 raw).
`

var exampleUsage = strings.TrimSpace(`
  probemon --device /dev/ttyUSB0
  probemon --device /dev/ttyUSB0 --headless --threshold 60 --output-dir ./logs
  cat capture.txt | probemon --device - --headless
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "probemon",
		Short:   "Log a serial temperature probe to CSV while watching it live",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			hasFile := cfgFile != "" && cliconfig.FileExists(cfgFile)
			if hasFile {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment overrides the file; flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cfg, cfgFile, hasFile && !changed["threshold"] && os.Getenv("PROBEMON_THRESHOLD") == "")
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.probemon/config.toml)")
	root.Flags().StringVar(&cfg.Device, "device", cfg.Device, `configured device node, FIFO or file to read ("-" for stdin)`)
	root.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for session CSV logs")
	root.Flags().StringVar(&cfg.OutputPrefix, "output-prefix", cfg.OutputPrefix, "file name prefix for session CSV logs")
	root.Flags().Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "alert threshold in degrees Celsius")
	root.Flags().BoolVar(&cfg.TimestampMillis, "millis", cfg.TimestampMillis, "log timestamps with millisecond precision")
	root.Flags().BoolVar(&cfg.Headless, "headless", cfg.Headless, "print readings to stdout instead of the interactive view")

	root.Flags().IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "bytes requested per device read")
	root.Flags().IntVar(&cfg.MaxLineBytes, "max-line-bytes", cfg.MaxLineBytes, "fail when this many bytes arrive without a line break (0 = unbounded)")
	root.Flags().DurationVar(&cfg.StopTimeout, "stop-timeout", cfg.StopTimeout, "wait for the reader to stop before interrupting it")
	root.Flags().DurationVar(&cfg.InterruptTimeout, "interrupt-timeout", cfg.InterruptTimeout, "wait after interrupting the reader before abandoning it")
	if err := root.Flags().MarkHidden("chunk-size"); err != nil {
		logger.Info().Err(err).Msg("failed to hide chunk-size flag")
	}

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file (default: stderr, or next to the CSV in interactive mode)")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("probemon")
		os.Exit(1)
	}
}

func run(cfg cliconfig.Config, cfgFile string, watchThreshold bool) error {
	outputPath := csvlog.SessionPath(cfg.OutputDir, cfg.OutputPrefix, time.Now())

	logOut, closeLog, err := logDestination(cfg, outputPath)
	if err != nil {
		return err
	}
	defer closeLog()

	level, err := cliconfig.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zl := cliconfig.NewLogger(logOut, level)
	zl.Info().Interface("config", cfg).Str("output", outputPath).Msg("configuration")

	src, err := device.Open(cfg.Device)
	if err != nil {
		return err
	}

	threshold := probemon.NewThresholdCell(cfg.Threshold)
	adapter := log.NewZerologAdapterWithLogger(zl)

	opts := []probemon.Option{
		probemon.WithLogger(adapter),
		probemon.WithThresholdCell(threshold),
	}
	if watchThreshold {
		opts = append(opts, thresholdwatcher.WithThresholdWatcher(thresholdwatcher.DefaultConfig(cfgFile)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// uiDone is closed when the user leaves the interactive view.
	uiDone := make(chan struct{})
	var (
		view   *tui.Surface
		uiErr  error
		closer func()
	)

	if cfg.Headless {
		cs := console.New(os.Stdout, threshold, adapter, console.DefaultQueueSize)
		go cs.Run(ctx)
		closer = cs.Close
		opts = append(opts, probemon.WithSurface(cs))
	} else {
		programOpts := []tea.ProgramOption{tea.WithAltScreen()}
		if cfg.Device == cliconfig.StdinDevice {
			// stdin carries the probe stream; keys come from the terminal.
			programOpts = append(programOpts, tea.WithInputTTY())
		}
		view = tui.New(fmt.Sprintf("probemon · %s", src.Name()), threshold, tui.DefaultQueueSize, programOpts...)
		opts = append(opts, probemon.WithSurface(view))
	}

	m, err := probemon.New(cfg.MonitorConfig(outputPath), opts...)
	if err != nil {
		_ = src.Close()
		return fmt.Errorf("create monitor: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := m.Start(ctx, src); err != nil {
		_ = src.Close()
		return fmt.Errorf("start monitor: %w", err)
	}

	if view != nil {
		go func() {
			defer close(uiDone)
			uiErr = view.Run(ctx)
		}()
	}

	select {
	case sig := <-sigCh:
		zl.Info().Str("signal", sig.String()).Msg("received signal, stopping...")
	case <-uiDone:
		zl.Info().Msg("view closed, stopping...")
	case <-m.Done():
		if err := m.Err(); err != nil {
			zl.Error().Err(err).Msg("ingestion stopped")
		} else {
			zl.Info().Msg("byte source exhausted")
		}
	}

	stopErr := m.Stop()

	stats := m.Stats()
	zl.Info().
		Uint64("readings", stats.Readings).
		Uint64("displayed", stats.Displayed).
		Uint64("dropped", stats.Dropped).
		Str("output", outputPath).
		Msg("session closed")

	if view != nil {
		view.Quit()
		<-uiDone
		if uiErr != nil {
			zl.Warn().Err(uiErr).Msg("interactive view failed")
		}
	}
	if closer != nil {
		closer()
	}

	if stopErr != nil {
		return fmt.Errorf("session failed: %w", stopErr)
	}
	return nil
}

// logDestination keeps log lines off the terminal while the interactive view
// owns it.
func logDestination(cfg cliconfig.Config, outputPath string) (io.Writer, func(), error) {
	path := cfg.LogFile
	if path == "" && cfg.Headless {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		path = strings.TrimSuffix(outputPath, ".csv") + ".log"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
