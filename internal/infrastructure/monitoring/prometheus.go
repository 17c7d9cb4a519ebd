package monitoring

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// PrometheusHandler returns an http.Handler that serves Prometheus text format metrics.
// This avoids pulling in the full prometheus/client_golang dependency.
// Mount it at "/metrics" in your HTTP server.
func (m *Monitor) PrometheusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(m.metrics.StartTime).Seconds()

		// Write metrics in Prometheus exposition format
		lines := []struct {
			name string
			help string
			typ  string
			val  interface{}
		}{
			// Request counters
			{"agenthub_requests_total", "Total number of HTTP requests processed", "counter", atomic.LoadUint64(&m.metrics.RequestsTotal)},
			{"agenthub_requests_success_total", "Total successful HTTP requests", "counter", atomic.LoadUint64(&m.metrics.RequestsSuccess)},
			{"agenthub_requests_failed_total", "Total failed HTTP requests", "counter", atomic.LoadUint64(&m.metrics.RequestsFailed)},

			// Repository counters
			{"agenthub_db_ops_total", "Total repository operations executed", "counter", atomic.LoadUint64(&m.metrics.DBOpsTotal)},
			{"agenthub_db_ops_failed_total", "Total failed repository operations", "counter", atomic.LoadUint64(&m.metrics.DBOpsFailed)},

			// Trainer counters
			{"agenthub_trainer_registrations_total", "Total successful trainer registrations", "counter", atomic.LoadUint64(&m.metrics.TrainerRegistrations)},
			{"agenthub_trainer_failures_total", "Total failed trainer registrations", "counter", atomic.LoadUint64(&m.metrics.TrainerFailures)},

			// Errors
			{"agenthub_errors_total", "Total errors encountered", "counter", atomic.LoadUint64(&m.metrics.ErrorsTotal)},

			// Gauges
			{"agenthub_uptime_seconds", "Process uptime in seconds", "gauge", uptime},

			// Runtime metrics
			{"agenthub_memory_alloc_bytes", "Current memory allocation in bytes", "gauge", memStats.Alloc},
			{"agenthub_memory_sys_bytes", "Total memory obtained from OS", "gauge", memStats.Sys},
			{"agenthub_goroutines", "Number of goroutines", "gauge", runtime.NumGoroutine()},
			{"agenthub_gc_pause_total_ns", "Total GC pause time in nanoseconds", "counter", memStats.PauseTotalNs},
			{"agenthub_gc_cycles_total", "Total number of completed GC cycles", "counter", memStats.NumGC},
		}

		for _, l := range lines {
			fmt.Fprintf(w, "# HELP %s %s\n", l.name, l.help)
			fmt.Fprintf(w, "# TYPE %s %s\n", l.name, l.typ)
			switch v := l.val.(type) {
			case uint64:
				fmt.Fprintf(w, "%s %d\n", l.name, v)
			case int64:
				fmt.Fprintf(w, "%s %d\n", l.name, v)
			case int:
				fmt.Fprintf(w, "%s %d\n", l.name, v)
			case float64:
				fmt.Fprintf(w, "%s %f\n", l.name, v)
			case uint32:
				fmt.Fprintf(w, "%s %d\n", l.name, v)
			}
			fmt.Fprintln(w)
		}

		// Latency summary
		reqCount := atomic.LoadUint64(&m.metrics.RequestLatencyCount)
		if reqCount > 0 {
			avgMs := float64(atomic.LoadUint64(&m.metrics.RequestLatencySum)) / float64(reqCount) / 1e6
			fmt.Fprintf(w, "# HELP agenthub_request_latency_avg_ms Average request latency in milliseconds\n")
			fmt.Fprintf(w, "# TYPE agenthub_request_latency_avg_ms gauge\n")
			fmt.Fprintf(w, "agenthub_request_latency_avg_ms %f\n\n", avgMs)
		}
	})
}
