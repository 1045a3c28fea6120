package probemon_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/probemon/pkg/probemon"
	"github.com/bft-labs/probemon/plugins/thresholdwatcher"
)

func TestE2E_ThresholdWatcherUpdatesRunningMonitor(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("threshold = 61.0\n"), 0o644))

	cfg := probemon.DefaultConfig()
	cfg.OutputPath = filepath.Join(dir, "session.csv")
	cfg.StopTimeout = 50 * time.Millisecond

	m, err := probemon.New(cfg,
		thresholdwatcher.WithThresholdWatcher(thresholdwatcher.Config{
			Path:          cfgPath,
			DebounceDelay: 10 * time.Millisecond,
		}),
	)
	require.NoError(t, err)

	pr, pw := io.Pipe()
	defer pw.Close()

	require.NoError(t, m.Start(context.Background(), pr))
	assert.Equal(t, 61.0, m.Threshold().Threshold(), "initial value applied on start")

	require.NoError(t, os.WriteFile(cfgPath, []byte("threshold = 66.6\n"), 0o644))
	require.Eventually(t, func() bool {
		return m.Threshold().Threshold() == 66.6
	}, 3*time.Second, 10*time.Millisecond)

	// Pipe readers unblock on Close, so the interrupt phase is enough.
	require.NoError(t, m.Stop())
	assert.Equal(t, probemon.StateStopped, m.Status())
}
