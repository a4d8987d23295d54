// Package metrics exposes Prometheus metrics for the contacts services.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the repository and HTTP API metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	CMSRequests    *prometheus.CounterVec
	CMSDuration    *prometheus.HistogramVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	ContactsSeeded prometheus.Counter
}

// New creates and registers all metrics on reg. A nil reg registers on the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		CMSRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contacts_cms_requests_total",
			Help: "Total number of CMS calls by repository operation and outcome",
		}, []string{"operation", "outcome"}),
		CMSDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contacts_cms_request_duration_seconds",
			Help:    "Duration of CMS calls by repository operation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contacts_http_requests_total",
			Help: "Total number of API requests by route and status code",
		}, []string{"method", "route", "code"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contacts_http_request_duration_seconds",
			Help:    "Duration of API requests by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ContactsSeeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "contacts_seeded_total",
			Help: "Total number of contacts created by the seeder",
		}),
	}
}

// ObserveCMS records one repository call started at start.
func (m *Metrics) ObserveCMS(operation, outcome string, start time.Time) {
	if m == nil {
		return
	}

	m.CMSRequests.WithLabelValues(operation, outcome).Inc()
	m.CMSDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveHTTP records one API request started at start.
func (m *Metrics) ObserveHTTP(method, route string, code int, start time.Time) {
	if m == nil {
		return
	}

	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// IncrementSeeded adds n to the seeded contacts counter.
func (m *Metrics) IncrementSeeded(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.ContactsSeeded.Add(float64(n))
}
