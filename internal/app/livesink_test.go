package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bft-labs/probemon/internal/domain"
)

func TestLiveSink_PausedDrops(t *testing.T) {
	surface := &fakeSurface{}
	sink := NewLiveSink(surface, nil)

	assert.True(t, sink.Publish(domain.NewReading(1, time.Now())))
	surface.SetPaused(true)
	assert.False(t, sink.Publish(domain.NewReading(2, time.Now())))
	surface.SetPaused(false)
	assert.True(t, sink.Publish(domain.NewReading(3, time.Now())))

	assert.Equal(t, []float32{1, 3}, surface.Values())
	assert.Equal(t, uint64(2), sink.Published())
	assert.Equal(t, uint64(1), sink.Dropped())

	latest, ok := sink.Latest()
	assert.True(t, ok)
	assert.Equal(t, float32(3), latest)
}

func TestLiveSink_LatestTracksPausedReadings(t *testing.T) {
	surface := &fakeSurface{paused: true}
	sink := NewLiveSink(surface, nil)

	_, ok := sink.Latest()
	assert.False(t, ok)

	sink.Publish(domain.NewReading(42.5, time.Now()))
	latest, ok := sink.Latest()
	assert.True(t, ok)
	assert.Equal(t, float32(42.5), latest)
}

func TestLiveSink_NilSurface(t *testing.T) {
	sink := NewLiveSink(nil, nil)
	assert.False(t, sink.Publish(domain.NewReading(1, time.Now())))
	assert.Equal(t, uint64(1), sink.Dropped())
}

func TestLiveSink_SurfacePanicIsContained(t *testing.T) {
	sink := NewLiveSink(&fakeSurface{panics: true}, nil)

	assert.NotPanics(t, func() {
		assert.False(t, sink.Publish(domain.NewReading(1, time.Now())))
	})
	assert.Equal(t, uint64(1), sink.Dropped())
	assert.Equal(t, uint64(0), sink.Published())
}

func TestThresholdCell(t *testing.T) {
	c := NewThresholdCell(62.8)
	assert.Equal(t, 62.8, c.Threshold())
	c.Set(70)
	assert.Equal(t, 70.0, c.Threshold())
}
