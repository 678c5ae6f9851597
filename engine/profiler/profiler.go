package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one reporting window of the profiler.
type Stats struct {
	FPS            float64
	TrianglesPerS  float64
	Order          int
	HeapMB         float64
	AllocRateMB    float64
	GCCount        uint32
	LastPauseUs    uint64
	MaxPauseUs     uint64
	SysMB          float64
	Elapsed        time.Duration
	FramesRendered int
}

// Profiler tracks frame rate, drawn triangles and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	triangleCount  int
	order          int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	now      func() time.Time
	report   func(Stats)
	last     Stats
	hasStats bool
}

// NewProfiler creates a new Profiler with the provided options.
// Update interval defaults to 1 second and stats are written to the standard logger.
//
// Parameters:
//   - options: a variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		report:         logStats,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per rendered frame.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - triangles: the number of triangles drawn this frame
//   - order: the subdivision order of the sphere drawn this frame
//
// Returns:
//   - bool: true if stats were reported this tick, false otherwise
func (p *Profiler) Tick(triangles, order int) bool {
	p.frameCount++
	p.triangleCount += triangles
	p.order = order
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	secs := elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)

	// Alloc is live heap; TotalAlloc only grows and tracks churn; Sys is the process footprint.
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	s := Stats{
		FPS:            float64(p.frameCount) / secs,
		TrianglesPerS:  float64(p.triangleCount) / secs,
		Order:          p.order,
		HeapMB:         float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:    float64(allocDelta) / 1024 / 1024 / secs,
		GCCount:        gcCount,
		LastPauseUs:    lastPauseUs,
		MaxPauseUs:     maxPauseUs,
		SysMB:          float64(p.memStats.Sys) / 1024 / 1024,
		Elapsed:        elapsed,
		FramesRendered: p.frameCount,
	}
	p.report(s)
	p.last = s
	p.hasStats = true

	p.frameCount = 0
	p.triangleCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently reported stats.
//
// Returns:
//   - Stats: the last report
//   - bool: false if nothing has been reported yet
func (p *Profiler) Last() (Stats, bool) {
	return p.last, p.hasStats
}

func logStats(s Stats) {
	log.Printf("[Profiler] FPS: %.2f | Order: %d | Tris/s: %.0f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.Order, s.TrianglesPerS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
}
