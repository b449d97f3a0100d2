// Package metrics exposes ledger and HTTP metrics in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metric names.
const (
	MetricHTTPRequestsTotal        = "cashdrawer_http_requests_total"
	MetricHTTPRequestDuration      = "cashdrawer_http_request_duration_seconds"
	MetricSessionsOpenedTotal      = "cashdrawer_sessions_opened_total"
	MetricSessionOpenConflictTotal = "cashdrawer_session_open_conflicts_total"
	MetricSessionsClosedTotal      = "cashdrawer_sessions_closed_total"
	MetricEntriesRecordedTotal     = "cashdrawer_entries_recorded_total"
)

// Registry owns a private Prometheus registry so tests can create as many as they like.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Registry struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	opened        prometheus.Counter
	openConflicts prometheus.Counter
	closed        *prometheus.CounterVec
	entries       *prometheus.CounterVec
}

// NewRegistry creates and registers all collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPRequestDuration,
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		opened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSessionsOpenedTotal,
			Help: "Cash sessions opened.",
		}),
		openConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSessionOpenConflictTotal,
			Help: "Open attempts rejected because the employee already had an open session.",
		}),
		closed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricSessionsClosedTotal,
			Help: "Cash sessions closed, by reconciliation classification.",
		}, []string{"classification"}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricEntriesRecordedTotal,
			Help: "Ledger entries recorded, by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		r.httpRequests, r.httpDuration, r.opened, r.openConflicts, r.closed, r.entries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveHTTP records one served request.
func (r *Registry) ObserveHTTP(method, route string, status int, latency time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

func (r *Registry) SessionOpened() { r.opened.Inc() }

func (r *Registry) OpenConflict() { r.openConflicts.Inc() }

func (r *Registry) SessionClosed(classification domain.ReconciliationStatus) {
	r.closed.WithLabelValues(string(classification)).Inc()
}

func (r *Registry) EntryRecorded(kind domain.EntryKind) {
	r.entries.WithLabelValues(string(kind)).Inc()
}
