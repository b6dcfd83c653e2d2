package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	TargetsTotal    *prometheus.CounterVec
	ErrorsTotal     *prometheus.CounterVec
	RunsTotal       prometheus.Counter
	DropEventsTotal prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		TargetsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pricetracker_targets_processed_total",
			Help: "The total number of ingestion targets processed, by outcome",
		}, []string{"result"}), // 'succeeded', 'skipped', 'failed'
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pricetracker_errors_total",
			Help: "The total number of errors encountered",
		}, []string{"type"}), // e.g. 'fetch_failed', 'parse_failed', 'store_failed'
		RunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pricetracker_runs_total",
			Help: "The total number of ingestion runs started",
		}),
		DropEventsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pricetracker_drop_events_total",
			Help: "The total number of price drop events detected",
		}),
	}
}

func (m *Metrics) IncTarget(result string) {
	m.TargetsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncError(errorType string) {
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
