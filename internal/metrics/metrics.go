package metrics

import (
	"net/http"
	"strconv"
	"time"

	"querybench/internal/benchmark"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics represents the collection of all Prometheus metrics
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Simulated benchmark metrics
	SimulatedLatency *prometheus.HistogramVec
	TrialsSampled    prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates all metrics and registers them with reg.
// A nil reg uses a fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{gatherer: reg}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "querybench_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "querybench_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.SimulatedLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "querybench_simulated_latency_milliseconds",
			Help:    "Latency values returned by the simulated benchmark",
			Buckets: []float64{50, 100, 250, 400, 1000, 2000, 3000},
		},
		[]string{"data_method"},
	)

	m.TrialsSampled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "querybench_trials_sampled_total",
			Help: "Total number of simulated trials served",
		},
	)

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SimulatedLatency,
		m.TrialsSampled,
	)

	return m
}

// ObserveTrial records every latency of one simulated trial.
func (m *Metrics) ObserveTrial(trial benchmark.Trial) {
	for method, ms := range trial {
		m.SimulatedLatency.WithLabelValues(string(method)).Observe(float64(ms))
	}
	m.TrialsSampled.Inc()
}

// Middleware for tracking HTTP requests
func (m *Metrics) RequestTrackingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := routeLabel(r)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// UnmatchedRoute labels requests that matched no registered route.
const UnmatchedRoute = "unmatched"

// routeLabel returns the chi route template of r so that the path label
// stays bounded by the number of registered routes.
func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return UnmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return UnmatchedRoute
}

// responseWriter is a wrapper to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Handler returns the Prometheus HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}
