package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every InfringeScope metric.
type AppMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	LLMRequestsTotal   CounterVec
	LLMRequestDuration HistogramVec
	LLMTokensUsed      CounterVec

	InfringementAnalysesTotal CounterVec
	SeedRecordsTotal          CounterVec
	EventsPublishedTotal      CounterVec
}

var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
	DefaultLLMDurationBuckets  = []float64{.5, 1, 2, 5, 10, 30, 60, 120}
)

// Outcome labels for infringement_analyses_total.
const (
	OutcomeCompleted = "completed"
	OutcomeDegraded  = "degraded"
	OutcomeRejected  = "rejected"
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path"),
		HTTPActiveRequests:  collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method"),

		LLMRequestsTotal:   collector.RegisterCounter("llm_requests_total", "LLM completion requests", "provider", "model", "status"),
		LLMRequestDuration: collector.RegisterHistogram("llm_request_duration_seconds", "LLM completion latency", DefaultLLMDurationBuckets, "provider", "model"),
		LLMTokensUsed:      collector.RegisterCounter("llm_tokens_total", "LLM tokens consumed", "model", "direction"),

		InfringementAnalysesTotal: collector.RegisterCounter("infringement_analyses_total", "Infringement checks by outcome", "outcome"),
		SeedRecordsTotal:          collector.RegisterCounter("seed_records_total", "Seed records processed", "source", "result"),
		EventsPublishedTotal:      collector.RegisterCounter("events_published_total", "Domain events published", "topic", "status"),
	}
}

// NewNopAppMetrics returns AppMetrics whose recorders do nothing.
func NewNopAppMetrics() *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:         noopCounterVec{},
		HTTPRequestDuration:       noopHistogramVec{},
		HTTPActiveRequests:        noopGaugeVec{},
		LLMRequestsTotal:          noopCounterVec{},
		LLMRequestDuration:        noopHistogramVec{},
		LLMTokensUsed:             noopCounterVec{},
		InfringementAnalysesTotal: noopCounterVec{},
		SeedRecordsTotal:          noopCounterVec{},
		EventsPublishedTotal:      noopCounterVec{},
	}
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *AppMetrics) RecordLLMCall(provider, model string, success bool, duration time.Duration, inputTokens, outputTokens int64) {
	m.LLMRequestsTotal.WithLabelValues(provider, model, statusLabel(success)).Inc()
	m.LLMRequestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
	if inputTokens > 0 {
		m.LLMTokensUsed.WithLabelValues(model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		m.LLMTokensUsed.WithLabelValues(model, "output").Add(float64(outputTokens))
	}
}

func (m *AppMetrics) RecordAnalysis(outcome string) {
	m.InfringementAnalysesTotal.WithLabelValues(outcome).Inc()
}

func (m *AppMetrics) RecordSeedRecords(source, result string, n int) {
	if n <= 0 {
		return
	}
	m.SeedRecordsTotal.WithLabelValues(source, result).Add(float64(n))
}

func (m *AppMetrics) RecordEventPublished(topic string, success bool) {
	m.EventsPublishedTotal.WithLabelValues(topic, statusLabel(success)).Inc()
}

//Personal.AI order the ending
