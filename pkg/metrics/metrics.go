// Package metrics registers the Prometheus instrumentation.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	LeadsClassified  *prometheus.CounterVec
	OutreachLinks    *prometheus.CounterVec
	LeadsCreated     prometheus.Counter
	LeadsDeleted     prometheus.Counter
	ExportsCreated   prometheus.Counter
	LoginAttempts    *prometheus.CounterVec
	ProposalsDrafted prometheus.Counter

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// New creates a Metrics instance with all metrics registered
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		LeadsClassified: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_classified_total",
				Help: "Lead classifications rendered into listings, by resulting tag. Counted per listing request, so a lead contributes once per render",
			},
			[]string{"tag"},
		),
		OutreachLinks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outreach_links_generated_total",
				Help: "Outreach deep links rendered into listings. Counted per listing request, not per unique lead",
			},
			[]string{"channel"}, // whatsapp, email
		),
		LeadsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Total number of manually created leads",
		}),
		LeadsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leads_deleted_total",
			Help: "Total number of deleted lead rows, duplicates included",
		}),
		ExportsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "exports_created_total",
			Help: "Total number of exports created",
		}),
		LoginAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"status"}, // success, failed
		),
		ProposalsDrafted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "proposals_drafted_total",
			Help: "Total number of AI proposals drafted",
		}),
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache"},
		),
	}
}

// Middleware instruments every request with count and latency.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			method := c.Request().Method
			path := c.Path()
			code := strconv.Itoa(status)

			m.HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordClassification increments the classification counter for a tag
func (m *Metrics) RecordClassification(tag string) {
	m.LeadsClassified.WithLabelValues(tag).Inc()
}

// RecordOutreachLink increments the deep-link counter for a channel
func (m *Metrics) RecordOutreachLink(channel string) {
	m.OutreachLinks.WithLabelValues(channel).Inc()
}

// RecordLoginAttempt increments login attempts counter
func (m *Metrics) RecordLoginAttempt(success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	m.LoginAttempts.WithLabelValues(status).Inc()
}

// RecordCacheHit increments cache hits counter
func (m *Metrics) RecordCacheHit(cacheType string) {
	m.CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss increments cache misses counter
func (m *Metrics) RecordCacheMiss(cacheType string) {
	m.CacheMisses.WithLabelValues(cacheType).Inc()
}
