package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache outcomes recorded on catalog queries.
const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheBypass   = "bypass"
	CacheDisabled = "disabled"
)

// Outcomes recorded on queries and calculator runs.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	CatalogQueries    *prometheus.CounterVec
	CatalogQueryTime  *prometheus.HistogramVec
	CatalogCache      *prometheus.CounterVec
	CatalogItems      *prometheus.GaugeVec
	CalculatorRuns    *prometheus.CounterVec
	CalculatorLatency *prometheus.HistogramVec
}

// New registers every collector with reg. Pass prometheus.DefaultRegisterer in production
// and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estate_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "estate_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CatalogQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estate_catalog_queries_total",
				Help: "Total number of catalog queries by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		CatalogQueryTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "estate_catalog_query_duration_seconds",
				Help:    "Duration of catalog queries in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"kind"},
		),
		CatalogCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estate_catalog_cache_total",
				Help: "Query cache lookups by kind and result",
			},
			[]string{"kind", "result"},
		),
		CatalogItems: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "estate_catalog_items",
				Help: "Number of items in the most recently loaded catalog snapshot",
			},
			[]string{"kind"},
		),
		CalculatorRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estate_calculator_runs_total",
				Help: "Total number of calculator runs by calculator and outcome",
			},
			[]string{"calculator", "outcome"},
		),
		CalculatorLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "estate_calculator_duration_seconds",
				Help:    "Duration of calculator runs in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"calculator"},
		),
	}
}

// NewNop returns Metrics backed by a private registry, for callers that do not export them.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(method, route, status string, started time.Time) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}

// ObserveQuery records one finished catalog query.
func (m *Metrics) ObserveQuery(kind, outcome string, started time.Time) {
	m.CatalogQueries.WithLabelValues(kind, outcome).Inc()
	m.CatalogQueryTime.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

// ObserveCache records one cache lookup result.
func (m *Metrics) ObserveCache(kind, result string) {
	m.CatalogCache.WithLabelValues(kind, result).Inc()
}

// SetCatalogSize records the size of the latest snapshot of kind.
func (m *Metrics) SetCatalogSize(kind string, n int) {
	m.CatalogItems.WithLabelValues(kind).Set(float64(n))
}

// ObserveCalculator records one calculator run.
func (m *Metrics) ObserveCalculator(name, outcome string, started time.Time) {
	m.CalculatorRuns.WithLabelValues(name, outcome).Inc()
	m.CalculatorLatency.WithLabelValues(name).Observe(time.Since(started).Seconds())
}

// PoolSnapshot returns the total, idle and acquired connection counts of a pool.
type PoolSnapshot func() (total, idle, acquired int32)

// RegisterPool exports connection counts as estate_db_pool_connections{state}, read at scrape time.
func RegisterPool(reg prometheus.Registerer, snapshot PoolSnapshot) {
	factory := promauto.With(reg)

	states := []struct {
		name string
		pick func(total, idle, acquired int32) int32
	}{
		{"total", func(t, _, _ int32) int32 { return t }},
		{"idle", func(_, i, _ int32) int32 { return i }},
		{"acquired", func(_, _, a int32) int32 { return a }},
	}
	for _, s := range states {
		pick := s.pick
		factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        "estate_db_pool_connections",
				Help:        "PostgreSQL pool connections by state",
				ConstLabels: prometheus.Labels{"state": s.name},
			},
			func() float64 { return float64(pick(snapshot())) },
		)
	}
}
