// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for gate and telemetry counters.
const (
	OutcomeIssued   = "issued"
	OutcomeBypassed = "bypassed"
	OutcomeMissing  = "missing_proof"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeGranted  = "granted"
	OutcomeDenied   = "denied"
	OutcomeRecorded = "recorded"
)

// Metrics groups the service collectors on a private registry so several
// instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	GateTokens      *prometheus.CounterVec
	CatalogRequests *prometheus.CounterVec
	Downloads       *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		GateTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "downloadgate_gate_tokens_total",
				Help: "Gate token issuance attempts by outcome.",
			},
			[]string{"outcome"},
		),
		CatalogRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "downloadgate_catalog_requests_total",
				Help: "Catalog reads by outcome.",
			},
			[]string{"outcome"},
		),
		Downloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "downloadgate_downloads_total",
				Help: "Download telemetry writes by outcome.",
			},
			[]string{"outcome"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "downloadgate_http_request_duration_seconds",
				Help:    "HTTP request latency by route and status code.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "code"},
		),
	}

	m.registry.MustRegister(
		m.GateTokens,
		m.CatalogRequests,
		m.Downloads,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// GateToken counts one issuance attempt. Safe on a nil *Metrics.
func (m *Metrics) GateToken(outcome string) {
	if m != nil {
		m.GateTokens.WithLabelValues(outcome).Inc()
	}
}

// CatalogRequest counts one catalog read. Safe on a nil *Metrics.
func (m *Metrics) CatalogRequest(outcome string) {
	if m != nil {
		m.CatalogRequests.WithLabelValues(outcome).Inc()
	}
}

// Download counts one telemetry write. Safe on a nil *Metrics.
func (m *Metrics) Download(outcome string) {
	if m != nil {
		m.Downloads.WithLabelValues(outcome).Inc()
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument records the latency of every request under route.
func (m *Metrics) Instrument(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			m.HTTPDuration.
				WithLabelValues(route, strconv.Itoa(rec.status)).
				Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
