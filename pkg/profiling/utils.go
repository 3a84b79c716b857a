package profiling

import (
	"runtime"
	"time"

	"github.com/kacperjurak/goramancore/internal/log"
)

// Profiler measures wall time and heap growth of one operation
type Profiler struct {
	StartTime   time.Time
	StartMemory uint64
	Name        string
}

// NewProfiler starts profiling the named operation
func NewProfiler(name string) *Profiler {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &Profiler{
		StartTime:   time.Now(),
		StartMemory: m.Alloc,
		Name:        name,
	}
}

// Finish completes the profiling and returns metrics
func (p *Profiler) Finish() ProfileMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return ProfileMetrics{
		Name:        p.Name,
		Duration:    time.Since(p.StartTime),
		MemoryDelta: int64(m.Alloc) - int64(p.StartMemory),
		FinalMemory: m.Alloc,
		Goroutines:  runtime.NumGoroutine(),
	}
}

// ProfileMetrics holds profiling metrics for one operation
type ProfileMetrics struct {
	Name        string
	Duration    time.Duration
	MemoryDelta int64
	FinalMemory uint64
	Goroutines  int
}

// Milliseconds returns the duration as fractional milliseconds.
func (pm ProfileMetrics) Milliseconds() float64 {
	return float64(pm.Duration.Nanoseconds()) / 1e6
}

// ProfileFunc runs fn and logs its duration and memory delta at debug level
func ProfileFunc(name string, fn func()) ProfileMetrics {
	profiler := NewProfiler(name)
	fn()
	metrics := profiler.Finish()

	log.Debugw("profiled",
		"operation", metrics.Name,
		"duration_ms", metrics.Milliseconds(),
		"memory_delta_bytes", metrics.MemoryDelta,
		"goroutines", metrics.Goroutines)
	return metrics
}

// LogMemoryStats logs current heap and GC statistics
func LogMemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	log.Debugw("memory",
		"alloc_mb", bToMb(m.Alloc),
		"total_alloc_mb", bToMb(m.TotalAlloc),
		"sys_mb", bToMb(m.Sys),
		"num_gc", m.NumGC,
		"goroutines", runtime.NumGoroutine())
}

// bToMb converts bytes to megabytes
func bToMb(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
