package cliconfig

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/probemon/pkg/probemon"
)

// DefaultOutputPrefix is the file name prefix of session logs.
const DefaultOutputPrefix = "probe"

// StdinDevice reads the probe stream from standard input.
const StdinDevice = "-"

// Config holds CLI configuration for probemon.
type Config struct {
	// Device is an already-configured serial device node, a FIFO, a plain
	// file, or "-" for stdin.
	Device string

	OutputDir    string
	OutputPrefix string

	Threshold       float64
	TimestampMillis bool

	ChunkSize    int
	MaxLineBytes int

	StopTimeout      time.Duration
	InterruptTimeout time.Duration

	Headless bool
	LogLevel string
	LogFile  string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputDir:        ".",
		OutputPrefix:     DefaultOutputPrefix,
		Threshold:        probemon.DefaultThreshold,
		ChunkSize:        probemon.DefaultChunkSize,
		StopTimeout:      probemon.DefaultStopTimeout,
		InterruptTimeout: probemon.DefaultInterruptTimeout,
		LogLevel:         "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("device is required (use %q for stdin)", StdinDevice)
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.OutputPrefix == "" {
		c.OutputPrefix = DefaultOutputPrefix
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("threshold must be a finite number")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive")
	}
	if c.MaxLineBytes < 0 {
		return fmt.Errorf("max line bytes must not be negative")
	}
	if c.StopTimeout <= 0 {
		return fmt.Errorf("stop timeout must be positive")
	}
	if c.InterruptTimeout < c.StopTimeout {
		return fmt.Errorf("interrupt timeout must be at least the stop timeout")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// MonitorConfig converts the CLI configuration into a probemon.Config that
// logs to outputPath.
func (c Config) MonitorConfig(outputPath string) probemon.Config {
	return probemon.Config{
		Threshold:        c.Threshold,
		OutputPath:       outputPath,
		TimestampMillis:  c.TimestampMillis,
		ChunkSize:        c.ChunkSize,
		MaxLineBytes:     c.MaxLineBytes,
		StopTimeout:      c.StopTimeout,
		InterruptTimeout: c.InterruptTimeout,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value from a pointer if not nil and flag not changed.
// Temperatures may be zero or negative, so presence is what counts.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
