package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", Subsystem: "unit"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrapeMetrics(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewMetricsCollector_EmptyNamespace(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{}, nil)
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestNewMetricsCollector_RuntimeCollectors(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "rt", EnableGoMetrics: true, EnableProcessMetrics: true}, nil)
	require.NoError(t, err)
	assert.Contains(t, scrapeMetrics(t, c), "go_goroutines")
}

func TestRegisterCounter(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("requests_total", "help", "method").WithLabelValues("GET").Add(2)

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_requests_total{method="GET"} 2`)
}

func TestRegisterCounter_Idempotent(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("dup_total", "help").WithLabelValues().Inc()
	c.RegisterCounter("dup_total", "help").WithLabelValues().Inc()

	assert.Contains(t, scrapeMetrics(t, c), "test_unit_dup_total 2")
}

func TestRegister_TypeMismatchFallsBackToNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("clash", "help")

	g := c.RegisterGauge("clash", "help")
	assert.IsType(t, noopGaugeVec{}, g)
	g.WithLabelValues().Set(5)
}

func TestRegisterGaugeAndHistogram(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterGauge("inflight", "help", "method").WithLabelValues("POST").Inc()
	c.RegisterHistogram("latency_seconds", "help", nil, "op").WithLabelValues("check").Observe(0.2)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_inflight{method="POST"} 1`)
	assert.Contains(t, out, `test_unit_latency_seconds_count{op="check"} 1`)
}

func TestTimer(t *testing.T) {
	c := newTestCollector(t)
	h := c.RegisterHistogram("timer_seconds", "help", nil).WithLabelValues()

	timer := NewTimer(h)
	time.Sleep(time.Millisecond)
	assert.Greater(t, timer.ObserveDuration(), time.Duration(0))
	assert.Contains(t, scrapeMetrics(t, c), "test_unit_timer_seconds_count 1")

	assert.NotPanics(t, func() { NewTimer(nil).ObserveDuration() })
}

//Personal.AI order the ending
