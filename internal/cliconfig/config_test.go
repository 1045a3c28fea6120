package cliconfig

import (
	"math"
	"testing"
	"time"

	"github.com/bft-labs/probemon/pkg/probemon"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Device = "/dev/ttyUSB0"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Threshold != 62.8 {
		t.Errorf("Threshold = %v, want 62.8", cfg.Threshold)
	}
	if cfg.OutputPrefix != DefaultOutputPrefix {
		t.Errorf("OutputPrefix = %v, want %v", cfg.OutputPrefix, DefaultOutputPrefix)
	}
	if cfg.ChunkSize != 1024 {
		t.Errorf("ChunkSize = %v, want 1024", cfg.ChunkSize)
	}
	if cfg.StopTimeout != 2*time.Second {
		t.Errorf("StopTimeout = %v, want 2s", cfg.StopTimeout)
	}
	if cfg.InterruptTimeout != 20*time.Second {
		t.Errorf("InterruptTimeout = %v, want 20s", cfg.InterruptTimeout)
	}
	if cfg.Device != "" {
		t.Errorf("Device = %v, want empty", cfg.Device)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults with device",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "stdin device",
			mutate:  func(c *Config) { c.Device = StdinDevice },
			wantErr: false,
		},
		{
			name:    "missing device",
			mutate:  func(c *Config) { c.Device = "" },
			wantErr: true,
		},
		{
			name:    "negative threshold is allowed",
			mutate:  func(c *Config) { c.Threshold = -18 },
			wantErr: false,
		},
		{
			name:    "nan threshold",
			mutate:  func(c *Config) { c.Threshold = math.NaN() },
			wantErr: true,
		},
		{
			name:    "zero chunk size",
			mutate:  func(c *Config) { c.ChunkSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative max line bytes",
			mutate:  func(c *Config) { c.MaxLineBytes = -1 },
			wantErr: true,
		},
		{
			name:    "invalid stop timeout",
			mutate:  func(c *Config) { c.StopTimeout = 0 },
			wantErr: true,
		},
		{
			name: "interrupt shorter than stop",
			mutate: func(c *Config) {
				c.StopTimeout = 10 * time.Second
				c.InterruptTimeout = time.Second
			},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	c := Config{
		Device:           "-",
		ChunkSize:        64,
		StopTimeout:      time.Second,
		InterruptTimeout: time.Second,
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c.OutputDir != "." {
		t.Errorf("OutputDir = %v, want .", c.OutputDir)
	}
	if c.OutputPrefix != DefaultOutputPrefix {
		t.Errorf("OutputPrefix = %v, want %v", c.OutputPrefix, DefaultOutputPrefix)
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", c.LogLevel)
	}
}

func TestConfig_MonitorConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Threshold = 70
	cfg.TimestampMillis = true
	cfg.MaxLineBytes = 256

	mc := cfg.MonitorConfig("/tmp/probe.csv")

	if mc.OutputPath != "/tmp/probe.csv" {
		t.Errorf("OutputPath = %v, want /tmp/probe.csv", mc.OutputPath)
	}
	if mc.Threshold != 70 || !mc.TimestampMillis || mc.MaxLineBytes != 256 {
		t.Errorf("MonitorConfig() = %+v, fields not carried over", mc)
	}
	if err := mc.Validate(); err != nil {
		t.Errorf("MonitorConfig().Validate() = %v", err)
	}
	if mc.StopTimeout != probemon.DefaultStopTimeout {
		t.Errorf("StopTimeout = %v, want %v", mc.StopTimeout, probemon.DefaultStopTimeout)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel(""); err != nil || lvl.String() != "info" {
		t.Errorf("ParseLevel(\"\") = %v, %v; want info", lvl, err)
	}
	if lvl, err := ParseLevel("debug"); err != nil || lvl.String() != "debug" {
		t.Errorf("ParseLevel(debug) = %v, %v; want debug", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) expected error")
	}
}
