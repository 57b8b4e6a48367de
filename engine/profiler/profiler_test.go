package profiler

import (
	"bytes"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	ms := &runtime.MemStats{
		Alloc:      2 * 1024 * 1024,
		Sys:        8 * 1024 * 1024,
		TotalAlloc: 6 * 1024 * 1024,
		NumGC:      3,
	}
	ms.PauseNs[0] = 5000
	ms.PauseNs[1] = 90000
	ms.PauseNs[2] = 20000

	s := sample(ms, 120, 2*time.Second, 1, 2*1024*1024)
	assert.InDelta(t, 60, s.FPS, 1e-9)
	assert.InDelta(t, 2, s.HeapMB, 1e-9)
	assert.InDelta(t, 8, s.SysMB, 1e-9)
	assert.InDelta(t, 2, s.AllocRateMB, 1e-9)
	assert.Equal(t, uint64(20), s.LastPauseUs)
	assert.Equal(t, uint64(90), s.MaxPauseUs)
}

func TestSampleWithoutGC(t *testing.T) {
	s := sample(&runtime.MemStats{}, 10, time.Second, 0, 0)
	assert.InDelta(t, 10, s.FPS, 1e-9)
	assert.Zero(t, s.LastPauseUs)
	assert.Zero(t, s.MaxPauseUs)
}

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Unix(0, 0)
	p := NewProfiler(
		WithInterval(500*time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	for range 49 {
		clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	clock = clock.Add(10 * time.Millisecond)
	require.True(t, p.Tick())

	assert.InDelta(t, 100, p.Last().FPS, 1e-6)
	assert.Contains(t, buf.String(), "component=profiler")
	assert.Contains(t, buf.String(), "fps=")
	assert.False(t, p.Tick())
}
