package probemon_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/probemon/pkg/probemon"
)

func TestDefaultConfig(t *testing.T) {
	cfg := probemon.DefaultConfig()

	assert.Equal(t, 62.8, cfg.Threshold)
	assert.Equal(t, probemon.DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, probemon.DefaultStopTimeout, cfg.StopTimeout)
	assert.Equal(t, probemon.DefaultInterruptTimeout, cfg.InterruptTimeout)
}

func TestConfig_SetDefaultsKeepsZeroThreshold(t *testing.T) {
	cfg := probemon.Config{OutputPath: "session.csv"}
	cfg.SetDefaults()

	assert.Zero(t, cfg.Threshold)
	assert.Equal(t, probemon.DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, 2*time.Second, cfg.StopTimeout)
}

func TestNew_ThresholdFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  probemon.Config
		want float64
	}{
		{"default config", probemon.DefaultConfig(), 62.8},
		{"zero value config", probemon.Config{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.OutputPath = filepath.Join(t.TempDir(), "session.csv")

			m, err := probemon.New(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Threshold().Threshold())
		})
	}
}
