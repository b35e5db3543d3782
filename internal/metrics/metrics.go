// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes
const (
	OutcomeSuccess          = "success"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeNotFound         = "not_found"
	OutcomeInsufficientData = "insufficient_data"
	OutcomeUpstreamError    = "upstream_error"
	OutcomeSchemaMismatch   = "schema_mismatch"
	OutcomePersistError     = "persist_error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Generation metrics
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec

	// Machine API metrics
	PlatformUsersIngested prometheus.Counter
	CredentialRejections  *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audiencelab_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "audiencelab_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audiencelab_generations_total",
				Help: "Total number of generation requests by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "audiencelab_generation_duration_seconds",
				Help:    "End to end generation duration in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 90},
			},
			[]string{"kind"},
		),
		PlatformUsersIngested: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "audiencelab_platform_users_ingested_total",
				Help: "Total number of platform users reported by applications",
			},
		),
		CredentialRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audiencelab_application_credential_rejections_total",
				Help: "Rejected application credentials by reason",
			},
			[]string{"reason"},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audiencelab_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audiencelab_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GenerationsTotal,
		m.GenerationDuration,
		m.PlatformUsersIngested,
		m.CredentialRejections,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveGeneration records the outcome and duration of one generation.
func (m *Metrics) ObserveGeneration(kind, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.GenerationsTotal.WithLabelValues(kind, outcome).Inc()
	m.GenerationDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

func (m *Metrics) CacheHit(cache string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

func (m *Metrics) CacheMiss(cache string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

func (m *Metrics) PlatformUserIngested() {
	if m == nil {
		return
	}
	m.PlatformUsersIngested.Inc()
}

func (m *Metrics) CredentialRejected(reason string) {
	if m == nil {
		return
	}
	m.CredentialRejections.WithLabelValues(reason).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, started time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}
