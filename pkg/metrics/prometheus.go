package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Registry *prometheus.Registry

	OccurrencesFetched      prometheus.Counter
	OccurrencesConsolidated prometheus.Counter
	OccurrencesSkipped      *prometheus.CounterVec
	RoutesSummarized        prometheus.Gauge
	FetchTime               prometheus.Histogram
	ErrorsCount             *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on a private registry; see Push.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		OccurrencesFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "occurrences_fetched_total",
			Help:      "The total number of flight occurrences returned by the history source",
		}),
		OccurrencesConsolidated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "occurrences_consolidated_total",
			Help:      "The total number of flight occurrences folded into a schedule summary",
		}),
		OccurrencesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "occurrences_skipped_total",
			Help:      "The total number of malformed flight occurrences skipped",
		}, []string{"reason"}),
		RoutesSummarized: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "routes_summarized",
			Help:      "Number of flight number and route summaries in the last result",
		}),
		FetchTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "history_fetch_time_seconds",
			Help:      "Time taken to log in and fetch flight history",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"stage"}),
	}
}

// Push sends the current state of the registry to a Prometheus Pushgateway.
func (m *Metrics) Push(ctx context.Context, gatewayURL, job string) error {
	return push.New(gatewayURL, job).
		Gatherer(m.Registry).
		PushContext(ctx)
}
