package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/uniguide/internal/llm"
	"github.com/alexanderramin/uniguide/internal/service"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnEvent(route, intent, kind string) service.UseCaseEvent {
	return service.UseCaseEvent{
		Name:     "process-turn",
		Duration: 120 * time.Millisecond,
		Success:  kind != service.KindInternalError,
		Fields:   map[string]any{"route": route, "intent": intent, "kind": kind},
	}
}

func TestObserveUseCase_CountsTurns(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ObserveUseCase(ctx, turnEvent("DB", "schedule", service.KindSynthesis))
	m.ObserveUseCase(ctx, turnEvent("DB", "schedule", service.KindDeterministic))
	m.ObserveUseCase(ctx, turnEvent("", "none", service.KindOutOfScope))
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "something-else"})

	assert.Equal(t, 2.0, promtest.ToFloat64(m.turnsTotal.WithLabelValues("DB", "schedule")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.turnsTotal.WithLabelValues("none", "none")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.fallbacksTotal.WithLabelValues(service.KindDeterministic)))
	assert.Equal(t, 0.0, promtest.ToFloat64(m.fallbacksTotal.WithLabelValues(service.KindOutOfScope)))
	assert.Equal(t, 1, promtest.CollectAndCount(m.turnDuration))
}

func TestOnCallComplete_LabelsStatus(t *testing.T) {
	m := New()

	m.OnCallComplete(llm.LLMCallEvent{Task: llm.TaskSynthesize, Success: true, LatencyMs: 800})
	m.OnCallComplete(llm.LLMCallEvent{Task: llm.TaskSynthesize, ErrorCode: "TIMEOUT"})
	m.OnCallComplete(llm.LLMCallEvent{Task: llm.TaskWeatherTip})

	assert.Equal(t, 1.0, promtest.ToFloat64(m.llmCallsTotal.WithLabelValues("synthesize", "ok")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.llmCallsTotal.WithLabelValues("synthesize", "TIMEOUT")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.llmCallsTotal.WithLabelValues("weather_tip", "error")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/chat", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `uniguide_http_requests_total{method="POST",path="/api/v1/chat",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), "uniguide_goroutines")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveUseCase(context.Background(), turnEvent("DB", "exam", service.KindSynthesis))
	m.OnCallComplete(llm.LLMCallEvent{})
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
