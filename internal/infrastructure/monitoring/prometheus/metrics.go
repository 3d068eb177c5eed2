package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Matching layer
	MatchAttemptsTotal CounterVec
	MatchDuration      HistogramVec
	MatchSimilarity    HistogramVec
	BatchRowsTotal     CounterVec
	BatchDuration      HistogramVec
	BatchActiveRuns    GaugeVec

	// KEGG client
	KEGGRequestsTotal   CounterVec
	KEGGRequestDuration HistogramVec

	ErrorsTotal CounterVec
}

// Default buckets.
var (
	DefaultHTTPDurationBuckets  = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultMatchDurationBuckets = []float64{.1, .25, .5, 1, 2.5, 5, 10, 30}
	DefaultBatchDurationBuckets = []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800, 3600}
	SimilarityBuckets           = []float64{0, .1, .2, .3, .4, .5, .6, .7, .8, .9, 1}
)

// NewAppMetrics registers all metrics and returns the AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	m.MatchAttemptsTotal = collector.RegisterCounter("match_attempts_total", "Compound match attempts", "status")
	m.MatchDuration = collector.RegisterHistogram("match_duration_seconds", "Single compound match duration", DefaultMatchDurationBuckets)
	m.MatchSimilarity = collector.RegisterHistogram("match_similarity", "Similarity score of matched compounds", SimilarityBuckets)
	m.BatchRowsTotal = collector.RegisterCounter("batch_rows_total", "Batch rows processed", "status")
	m.BatchDuration = collector.RegisterHistogram("batch_duration_seconds", "Batch run duration", DefaultBatchDurationBuckets)
	m.BatchActiveRuns = collector.RegisterGauge("batch_active_runs", "Batch runs in flight")

	m.KEGGRequestsTotal = collector.RegisterCounter("kegg_requests_total", "KEGG REST requests", "operation", "status")
	m.KEGGRequestDuration = collector.RegisterHistogram("kegg_request_duration_seconds", "KEGG REST request duration", DefaultHTTPDurationBuckets, "operation")

	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "code")

	return m
}

// Helpers. All are nil-safe so metrics stay strictly optional for callers.

func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *AppMetrics) RecordMatch(status string, similarity *float64, duration time.Duration) {
	if m == nil {
		return
	}
	m.MatchAttemptsTotal.WithLabelValues(status).Inc()
	m.MatchDuration.WithLabelValues().Observe(duration.Seconds())
	if similarity != nil {
		m.MatchSimilarity.WithLabelValues().Observe(*similarity)
	}
}

func (m *AppMetrics) RecordBatchRow(status string) {
	if m == nil {
		return
	}
	m.BatchRowsTotal.WithLabelValues(status).Inc()
}

func (m *AppMetrics) RecordKEGGRequest(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.KEGGRequestsTotal.WithLabelValues(operation, status).Inc()
	m.KEGGRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *AppMetrics) RecordError(component, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}
