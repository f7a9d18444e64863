package metrics

import "github.com/prometheus/client_golang/prometheus"

// String analysis Prometheus metrics.
var (
	StringsOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stranalyzer",
			Name:      "strings_operations_total",
			Help:      "Total string operations by outcome",
		},
		[]string{"operation", "result"},
	)

	StringsFilterUsageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stranalyzer",
			Name:      "strings_filter_usage_total",
			Help:      "List filters applied by parameter",
		},
		[]string{"param"},
	)

	StringsListResultSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "stranalyzer",
			Name:      "strings_list_result_size",
			Help:      "Number of entries returned by list queries",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

var stringsMetricsRegistered bool

// RegisterStringsMetrics registers Prometheus string metrics. Must be called once from main.
func RegisterStringsMetrics() {
	if stringsMetricsRegistered {
		return
	}
	prometheus.MustRegister(StringsOperationsTotal)
	prometheus.MustRegister(StringsFilterUsageTotal)
	prometheus.MustRegister(StringsListResultSize)
	stringsMetricsRegistered = true
}
