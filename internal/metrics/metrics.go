package metrics

import (
	"net/http"
	"strconv"
	"time"

	"benchdata/internal/benchmark"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics represents the collection of all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Standard metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Dataset metrics
	Entries      *prometheus.GaugeVec
	LatestValue  *prometheus.GaugeVec
	LastUpdate   prometheus.Gauge
	Reloads      *prometheus.CounterVec
	AppendsTotal *prometheus.CounterVec
	AlertsTotal  *prometheus.CounterVec
}

// NewMetrics creates all collectors on a private registry, together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.Entries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "benchdata_entries",
			Help: "Number of entries recorded per suite",
		},
		[]string{"suite"},
	)

	m.LatestValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "benchdata_latest_value",
			Help: "Value of each bench in the newest entry of its suite",
		},
		[]string{"suite", "bench", "unit"},
	)

	m.LastUpdate = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "benchdata_last_update_timestamp_seconds",
			Help: "lastUpdate of the dataset as a unix timestamp",
		},
	)

	m.Reloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchdata_reloads_total",
			Help: "Dataset reloads triggered by file changes",
		},
		[]string{"result"},
	)

	m.AppendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchdata_appends_total",
			Help: "Entries appended per suite",
		},
		[]string{"suite"},
	)

	m.AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchdata_alerts_total",
			Help: "Regression alerts raised per suite and bench",
		},
		[]string{"suite", "bench"},
	)

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.Entries,
		m.LatestValue,
		m.LastUpdate,
		m.Reloads,
		m.AppendsTotal,
		m.AlertsTotal,
	)

	return m
}

// Registry exposes the registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveDataset refreshes the dataset gauges from d.
func (m *Metrics) ObserveDataset(d *benchmark.Dataset) {
	m.Entries.Reset()
	m.LatestValue.Reset()
	for _, suite := range d.Suites() {
		entries, _ := d.Entries.Get(suite)
		m.Entries.WithLabelValues(suite).Set(float64(len(entries)))
		if len(entries) == 0 {
			continue
		}
		for _, b := range entries[len(entries)-1].Benches {
			m.LatestValue.WithLabelValues(suite, b.Name, b.Unit).Set(b.Value)
		}
	}
	m.LastUpdate.Set(float64(d.LastUpdate) / 1000)
}

// RecordAppend counts an appended entry and the alerts it raised.
func (m *Metrics) RecordAppend(suite string, alerts []benchmark.Comparison) {
	m.AppendsTotal.WithLabelValues(suite).Inc()
	for _, a := range alerts {
		m.AlertsTotal.WithLabelValues(suite, a.Name).Inc()
	}
}

// RecordReload counts a dataset reload attempt.
func (m *Metrics) RecordReload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Reloads.WithLabelValues(result).Inc()
}

// RequestTrackingMiddleware records count and latency per request. The path
// label is the matched mux pattern, not the raw URL.
func (m *Metrics) RequestTrackingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
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
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
