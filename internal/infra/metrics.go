// README: Prometheus metrics for dialogue turns, oracles, search, and persistence.
package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Turns               *prometheus.CounterVec
	TurnDuration        prometheus.Histogram
	SearchRequests      *prometheus.CounterVec
	OracleFailures      *prometheus.CounterVec
	PersistenceFailures *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Tests pass prometheus.NewRegistry()
// so repeated construction does not collide on the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Dialogue turns processed, by classified intent.",
		}, []string{"intent"}),
		TurnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Time taken to process one dialogue turn.",
			Buckets:   prometheus.DefBuckets,
		}),
		SearchRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Flight search calls, by outcome.",
		}, []string{"outcome"}),
		OracleFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_failures_total",
			Help:      "Failed oracle calls that degraded to a default.",
		}, []string{"oracle"}),
		PersistenceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Failed session state and conversation log operations, by operation.",
		}, []string{"op"}),
	}
}

func (m *Metrics) ObserveTurn(intent string, seconds float64) {
	if m == nil {
		return
	}
	m.Turns.WithLabelValues(intent).Inc()
	m.TurnDuration.Observe(seconds)
}

func (m *Metrics) SearchOutcome(outcome string) {
	if m == nil {
		return
	}
	m.SearchRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) OracleFailure(oracle string) {
	if m == nil {
		return
	}
	m.OracleFailures.WithLabelValues(oracle).Inc()
}

// PersistenceFailure counts a failed state operation: load, save, conflict,
// delete, or conversation_log.
func (m *Metrics) PersistenceFailure(op string) {
	if m == nil {
		return
	}
	m.PersistenceFailures.WithLabelValues(op).Inc()
}
