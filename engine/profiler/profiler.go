package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is one profiler sample covering the frames since the previous sample.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	NumGC       uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the structured log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
	logger         *slog.Logger
	now            func() time.Time
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often a sample is logged. Defaults to 1 second.
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithLogger sets the logger samples are written to. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: optional profiler options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	p.last = sample(&p.memStats, p.frameCount, elapsed, p.lastGCCount, p.lastTotalAlloc)

	p.logger.Info("profile",
		"component", "profiler",
		"fps", p.last.FPS,
		"heap_mb", p.last.HeapMB,
		"alloc_rate_mb_s", p.last.AllocRateMB,
		"gc", p.last.NumGC,
		"gc_last_us", p.last.LastPauseUs,
		"gc_max_us", p.last.MaxPauseUs,
		"sys_mb", p.last.SysMB,
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently logged sample.
func (p *Profiler) Last() Stats {
	return p.last
}

// sample turns raw memory statistics into a Stats value.
//
// Parameters:
//   - ms: the memory statistics read this tick
//   - frames: frames counted since the previous sample
//   - elapsed: time since the previous sample, must be positive
//   - prevGC: the GC count at the previous sample
//   - prevTotalAlloc: the cumulative allocation at the previous sample
//
// Returns:
//   - Stats: the sample
func sample(ms *runtime.MemStats, frames int, elapsed time.Duration, prevGC uint32, prevTotalAlloc uint64) Stats {
	const mb = 1024 * 1024
	s := Stats{
		FPS:    float64(frames) / elapsed.Seconds(),
		HeapMB: float64(ms.Alloc) / mb,
		SysMB:  float64(ms.Sys) / mb,
		NumGC:  ms.NumGC,
	}
	if ms.TotalAlloc >= prevTotalAlloc {
		s.AllocRateMB = float64(ms.TotalAlloc-prevTotalAlloc) / mb / elapsed.Seconds()
	}

	gcCount := ms.NumGC
	if gcCount == 0 {
		return s
	}
	// PauseNs is a circular buffer of the last 256 pauses
	s.LastPauseUs = ms.PauseNs[(gcCount-1)%256] / 1000
	start := prevGC
	if gcCount-start > 256 {
		start = gcCount - 256
	}
	for i := start; i < gcCount; i++ {
		s.MaxPauseUs = max(s.MaxPauseUs, ms.PauseNs[i%256]/1000)
	}
	return s
}
