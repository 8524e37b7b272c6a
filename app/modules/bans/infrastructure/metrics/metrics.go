// Package bansmetrics instruments the ban lookup path and the cache refresh
// cycle.
package bansmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records what the lookup and refresh paths do. A Noop implementation
// backs tests.
type Metrics interface {
	// LookupCompleted records one finished lookup for a subject kind
	// ("player" or "admin") with the number of records returned.
	LookupCompleted(subject string, duration time.Duration, records int)

	// UnknownSubject records a lookup rejected by the existence cache.
	UnknownSubject(subject string)

	// QueryError records a store failure that degraded to an empty result.
	QueryError(subject string)

	// RowDropped records a result row discarded during mapping
	// ("unknown_bantype" or "reason_decode").
	RowDropped(reason string)

	// RefreshCompleted records one cache reload attempt ("success"/"error").
	RefreshCompleted(result string, duration time.Duration)

	// CacheSizes publishes the current cache population.
	CacheSizes(players, admins int)
}

type prometheusMetrics struct {
	lookupDuration *prometheus.HistogramVec
	lookupRecords  *prometheus.CounterVec
	unknownSubject *prometheus.CounterVec
	queryErrors    *prometheus.CounterVec
	rowsDropped    *prometheus.CounterVec
	refreshes      *prometheus.CounterVec
	cachePlayers   prometheus.Gauge
	cacheAdmins    prometheus.Gauge
}

// NewPrometheus creates Metrics registered on the given registry.
func NewPrometheus(reg prometheus.Registerer) Metrics {
	m := &prometheusMetrics{
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "banwatch_lookup_duration_seconds",
			Help:    "Duration of ban lookups by subject kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"subject"}),
		lookupRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banwatch_lookup_records_total",
			Help: "Ban records returned to callers by subject kind.",
		}, []string{"subject"}),
		unknownSubject: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banwatch_unknown_subjects_total",
			Help: "Lookups rejected because the identifier was never seen.",
		}, []string{"subject"}),
		queryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banwatch_query_errors_total",
			Help: "Store failures that degraded to an empty result.",
		}, []string{"subject"}),
		rowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banwatch_rows_dropped_total",
			Help: "Result rows discarded during mapping.",
		}, []string{"reason"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banwatch_cache_refreshes_total",
			Help: "Existence cache reload attempts by result.",
		}, []string{"result"}),
		cachePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "banwatch_cache_known_players",
			Help: "Player ckeys currently in the existence cache.",
		}),
		cacheAdmins: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "banwatch_cache_known_admins",
			Help: "Admin ckeys currently in the existence cache.",
		}),
	}

	reg.MustRegister(
		m.lookupDuration,
		m.lookupRecords,
		m.unknownSubject,
		m.queryErrors,
		m.rowsDropped,
		m.refreshes,
		m.cachePlayers,
		m.cacheAdmins,
	)

	return m
}

func (m *prometheusMetrics) LookupCompleted(subject string, duration time.Duration, records int) {
	m.lookupDuration.WithLabelValues(subject).Observe(duration.Seconds())
	m.lookupRecords.WithLabelValues(subject).Add(float64(records))
}

func (m *prometheusMetrics) UnknownSubject(subject string) {
	m.unknownSubject.WithLabelValues(subject).Inc()
}

func (m *prometheusMetrics) QueryError(subject string) {
	m.queryErrors.WithLabelValues(subject).Inc()
}

func (m *prometheusMetrics) RowDropped(reason string) {
	m.rowsDropped.WithLabelValues(reason).Inc()
}

func (m *prometheusMetrics) RefreshCompleted(result string, duration time.Duration) {
	m.refreshes.WithLabelValues(result).Inc()
}

func (m *prometheusMetrics) CacheSizes(players, admins int) {
	m.cachePlayers.Set(float64(players))
	m.cacheAdmins.Set(float64(admins))
}

type noopMetrics struct{}

// NewNoop returns Metrics that record nothing.
func NewNoop() Metrics { return noopMetrics{} }

func (noopMetrics) LookupCompleted(string, time.Duration, int) {}
func (noopMetrics) UnknownSubject(string)                      {}
func (noopMetrics) QueryError(string)                          {}
func (noopMetrics) RowDropped(string)                          {}
func (noopMetrics) RefreshCompleted(string, time.Duration)     {}
func (noopMetrics) CacheSizes(int, int)                        {}
