package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
// The threshold key is also what the threshold watcher reloads at runtime.
type FileConfig struct {
	Device           string   `toml:"device"`
	OutputDir        string   `toml:"output_dir"`
	OutputPrefix     string   `toml:"output_prefix"`
	Threshold        *float64 `toml:"threshold"`
	TimestampMillis  *bool    `toml:"timestamp_millis"`
	ChunkSize        int      `toml:"chunk_size"`
	MaxLineBytes     int      `toml:"max_line_bytes"`
	StopTimeout      string   `toml:"stop_timeout"`
	InterruptTimeout string   `toml:"interrupt_timeout"`
	Headless         *bool    `toml:"headless"`
	LogLevel         string   `toml:"log_level"`
	LogFile          string   `toml:"log_file"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.probemon/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".probemon", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device", fc.Device, &cfg.Device)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)
	s.setString("output-prefix", fc.OutputPrefix, &cfg.OutputPrefix)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)

	if err := s.setDuration("stop-timeout", fc.StopTimeout, &cfg.StopTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interrupt-timeout", fc.InterruptTimeout, &cfg.InterruptTimeout); err != nil {
		return err
	}

	s.setFloat("threshold", fc.Threshold, &cfg.Threshold)

	s.setInt("chunk-size", fc.ChunkSize, &cfg.ChunkSize)
	s.setInt("max-line-bytes", fc.MaxLineBytes, &cfg.MaxLineBytes)

	s.setBool("millis", fc.TimestampMillis, &cfg.TimestampMillis)
	s.setBool("headless", fc.Headless, &cfg.Headless)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
