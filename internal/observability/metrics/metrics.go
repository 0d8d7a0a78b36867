package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "contractcompare_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	compareRequests *prometheus.CounterVec
	compareLatency  *prometheus.HistogramVec

	extractTotal   *prometheus.CounterVec
	extractLatency *prometheus.HistogramVec
	extractRetries prometheus.Counter

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	uploadsRejected *prometheus.CounterVec

	matchedPairs prometheus.Histogram
)

// Init registers comparison service metrics.
func Init() {
	registerOnce.Do(func() {
		compareRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "compare_requests_total",
				Help: "Total comparison runs by result",
			},
			[]string{"result"},
		)
		compareLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "compare_latency_seconds",
				Help:    "Comparison latency in seconds, extraction included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		extractTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "extract_total",
				Help: "Total extraction operations by format and result",
			},
			[]string{"format", "result"},
		)
		extractLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "extract_latency_seconds",
				Help:    "Extraction latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)
		extractRetries = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "extract_retries_total",
				Help: "Total retried extraction attempts against the AI upstream",
			},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total report export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		uploadsRejected = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "uploads_rejected_total",
				Help: "Total rejected uploads by reason",
			},
			[]string{"reason"},
		)

		matchedPairs = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "matched_pairs",
				Help:    "Matched pair count per comparison",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		)

		prometheus.MustRegister(
			compareRequests,
			compareLatency,
			extractTotal,
			extractLatency,
			extractRetries,
			exportTotal,
			exportLatency,
			uploadsRejected,
			matchedPairs,
		)
	})
}

// ObserveCompare records one comparison run.
func ObserveCompare(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if compareRequests != nil {
		compareRequests.WithLabelValues(result).Inc()
	}
	if compareLatency != nil {
		compareLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExtract records one extraction by format.
func ObserveExtract(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if extractTotal != nil {
		extractTotal.WithLabelValues(format, result).Inc()
	}
	if extractLatency != nil {
		extractLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncExtractRetry counts one retried upstream attempt.
func IncExtractRetry() {
	if extractRetries != nil {
		extractRetries.Inc()
	}
}

// ObserveExport records one report export.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncUploadRejected counts one rejected upload.
func IncUploadRejected(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if uploadsRejected != nil {
		uploadsRejected.WithLabelValues(reason).Inc()
	}
}

// ObserveMatchedPairs records the matched pair count of a comparison.
func ObserveMatchedPairs(count int) {
	if count < 0 {
		return
	}
	if matchedPairs != nil {
		matchedPairs.Observe(float64(count))
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
