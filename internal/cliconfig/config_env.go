package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PROBEMON_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device", os.Getenv("PROBEMON_DEVICE"), &cfg.Device)
	s.setString("output-dir", os.Getenv("PROBEMON_OUTPUT_DIR"), &cfg.OutputDir)
	s.setString("output-prefix", os.Getenv("PROBEMON_OUTPUT_PREFIX"), &cfg.OutputPrefix)
	s.setString("log-level", os.Getenv("PROBEMON_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv("PROBEMON_LOG_FILE"), &cfg.LogFile)

	if err := s.setDuration("stop-timeout", os.Getenv("PROBEMON_STOP_TIMEOUT"), &cfg.StopTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interrupt-timeout", os.Getenv("PROBEMON_INTERRUPT_TIMEOUT"), &cfg.InterruptTimeout); err != nil {
		return err
	}

	if err := s.setFloatFromString("threshold", os.Getenv("PROBEMON_THRESHOLD"), &cfg.Threshold); err != nil {
		return err
	}

	if err := s.setIntFromString("chunk-size", os.Getenv("PROBEMON_CHUNK_SIZE"), &cfg.ChunkSize); err != nil {
		return err
	}
	if err := s.setIntFromString("max-line-bytes", os.Getenv("PROBEMON_MAX_LINE_BYTES"), &cfg.MaxLineBytes); err != nil {
		return err
	}

	s.setBoolFromString("millis", os.Getenv("PROBEMON_TIMESTAMP_MILLIS"), &cfg.TimestampMillis)
	s.setBoolFromString("headless", os.Getenv("PROBEMON_HEADLESS"), &cfg.Headless)

	return nil
}
