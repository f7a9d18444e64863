package metrics

import "github.com/prometheus/client_golang/prometheus"

// Fact source Prometheus metrics.
var (
	FactRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stranalyzer",
			Name:      "fact_requests_total",
			Help:      "Total number of fact source requests",
		},
		[]string{"source", "status"},
	)

	FactRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stranalyzer",
			Name:      "fact_request_duration_seconds",
			Help:      "Fact source request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	FactCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stranalyzer",
			Name:      "fact_cache_total",
			Help:      "Fact cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var factMetricsRegistered bool

// RegisterFactMetrics registers Prometheus fact metrics. Must be called once from main.
func RegisterFactMetrics() {
	if factMetricsRegistered {
		return
	}
	prometheus.MustRegister(FactRequestsTotal)
	prometheus.MustRegister(FactRequestDuration)
	prometheus.MustRegister(FactCacheTotal)
	factMetricsRegistered = true
}
