// Package metrics collects and exposes Prometheus metrics for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus instruments for the API surface.
type Collector struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	authFailures   prometheus.Counter
	rateLimited    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cookshelf_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cookshelf_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookshelf_auth_failures_total",
			Help: "Requests rejected with an invalid or missing bearer token",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookshelf_rate_limited_total",
			Help: "Requests rejected by the per-user rate limiter",
		}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestLatency,
		c.authFailures,
		c.rateLimited,
	)

	return c
}

// RecordRequest records one completed request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthFailure records a rejected authentication attempt.
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Inc()
}

// RecordRateLimited records a request rejected by the rate limiter.
func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Middleware instruments every request passing through it. The route label
// uses the matched mux pattern so that per-document URLs do not explode
// label cardinality.
func (c *Collector) Middleware(mux *http.ServeMux) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			_, route := mux.Handler(r)
			if route == "" {
				route = "unmatched"
			}
			c.RecordRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}

// statusWriter captures the status code written by the handler chain.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
