package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// httpMetrics holds the Prometheus collectors for the HTTP surface
type httpMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metricsInst *httpMetrics
)

// metricsFor registers the collectors exactly once per process
// promauto panics on duplicate registration so construction is memoized
func metricsFor() *httpMetrics {
	metricsOnce.Do(func() {
		metricsInst = &httpMetrics{
			RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "callsift",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by method and status.",
			}, []string{"method", "status"}),
			RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "callsift",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by method.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method"}),
			InFlight: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "callsift",
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served.",
			}),
		}
	})
	return metricsInst
}

// Metrics records request counts, latency, and in-flight gauge
func Metrics() func(http.Handler) http.Handler {
	m := metricsFor()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			m.InFlight.Inc()
			start := time.Now()

			next.ServeHTTP(sw, r)

			m.InFlight.Dec()
			m.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
			m.RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
