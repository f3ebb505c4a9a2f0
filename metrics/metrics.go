// Package metrics provides Prometheus metrics collection for the
// pharmacovigilance API. It exports HTTP server metrics:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// plus domain metrics for the extraction pipeline:
//   - reports_processed_total: Counter with severity and outcome labels
//   - reports_purged_total: Counter for retention deletions
//   - translation_lookups_total: Counter with language and found labels
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	ReportsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_processed_total",
			Help: "Processed adverse-event reports by extracted severity and outcome",
		},
		[]string{"severity", "outcome"},
	)

	ReportsPurgedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_purged_total",
			Help: "Reports deleted by the retention purge",
		},
	)

	TranslationLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translation_lookups_total",
			Help: "Outcome translation lookups by language and whether a translation was found",
		},
		[]string{"language", "found"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(ReportsProcessedTotal)
	prometheus.MustRegister(ReportsPurgedTotal)
	prometheus.MustRegister(TranslationLookupsTotal)
}
