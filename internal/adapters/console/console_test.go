package console

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/probemon/internal/app"
	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/pkg/log"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSurface_RendersInOrderWithMarks(t *testing.T) {
	var out syncBuffer
	rec := log.NewRecorder()
	s := New(&out, app.NewThresholdCell(62.8), rec, 8)

	go s.Run(context.Background())

	now := time.Now()
	s.Schedule(domain.NewReading(65, now))
	s.Schedule(domain.NewReading(60.5, now))
	s.Schedule(domain.NewReading(62.8, now))

	assert.Eventually(t, func() bool { return s.Rendered() == 3 }, time.Second, 5*time.Millisecond)
	s.Close()

	assert.Equal(t, "✓ 65.0\n⚠ 60.5\n✓ 62.8\n", out.String())
	assert.True(t, rec.Has("warn", "reading below threshold"))

	var warned []log.Entry
	for _, e := range rec.Entries() {
		if e.Level == "warn" {
			warned = append(warned, e)
		}
	}
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0].Fields, log.Time("at", now))
}

func TestSurface_ScheduleNeverBlocks(t *testing.T) {
	var out syncBuffer
	s := New(&out, nil, nil, 2)

	// Run is not started: the queue fills and the rest overflow.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			s.Schedule(domain.NewReading(float32(i), time.Now()))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Schedule blocked")
	}
	assert.Equal(t, uint64(8), s.Overflow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Run(ctx)
	assert.Equal(t, uint64(2), s.Rendered(), "queued readings are drained on exit")
}

func TestSurface_Pause(t *testing.T) {
	s := New(&syncBuffer{}, nil, nil, 1)
	assert.True(t, s.IsAccepting())
	s.SetPaused(true)
	assert.False(t, s.IsAccepting())
}
