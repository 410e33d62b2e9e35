// Package debug holds optional runtime instrumentation, started only
// when the library's debug flag is set. It carries no search semantics
// and never affects match results.
package debug

import (
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StartGoroutineLogger launches a ticker that logs goroutine count and
// heap/stack memory at interval, cross-platform (the teacher's
// Windows-only RSS probe in debug/memstats.go has no portable
// equivalent and is not carried over; runtime.MemStats already covers
// the Go-heap side of that signal). It returns a stop function; the
// caller must invoke it to release the ticker.
func StartGoroutineLogger(interval time.Duration, logger *slog.Logger) (stop func()) {
	if interval <= 0 {
		interval = time.Second
	}
	done := make(chan struct{})

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-done:
				return
			case <-t.C:
				metrics.Read(samples)
				goroutines := samples[0].Value.Uint64()
				var ms runtime.MemStats
				runtime.ReadMemStats(&ms)
				logger.Info("runtime-stats",
					slog.Uint64("goroutines", goroutines),
					slog.Uint64("stack_inuse", uint64(ms.StackInuse)),
					slog.Uint64("stack_sys", uint64(ms.StackSys)),
					slog.Uint64("heap_alloc", uint64(ms.HeapAlloc)),
					slog.Uint64("heap_sys", uint64(ms.HeapSys)),
					slog.Uint64("num_gc", uint64(ms.NumGC)),
				)
			}
		}
	}()

	return func() { close(done) }
}
