// Package metrics exposes turn, LLM, and HTTP counters on a private
// Prometheus registry.
package metrics

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/alexanderramin/uniguide/internal/llm"
	"github.com/alexanderramin/uniguide/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "uniguide"

// fallbackKinds are the reply kinds that did not come from a successful
// generative call.
var fallbackKinds = map[string]bool{
	service.KindFallback:      true,
	service.KindDeterministic: true,
	service.KindInternalError: true,
}

// Metrics implements service.UseCaseObserver and llm.Observer.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	turnsTotal      *prometheus.CounterVec
	turnDuration    prometheus.Histogram
	fallbacksTotal  *prometheus.CounterVec
	llmCallsTotal   *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	turnsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "turns_total",
		Help:      "Processed turns by route and intent",
	}, []string{"route", "intent"})

	turnDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "turn_duration_seconds",
		Help:      "Wall time of a turn",
		Buckets:   prometheus.DefBuckets,
	})

	fallbacksTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallbacks_total",
		Help:      "Turns answered without a generated reply",
	}, []string{"kind"})

	llmCallsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_calls_total",
		Help:      "Generative text calls by task and status",
	}, []string{"task", "status"})

	llmLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_call_duration_seconds",
		Help:      "Latency of generative text calls",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
	}, []string{"task"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "goroutines",
		Help:      "Number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(turnsTotal, turnDuration, fallbacksTotal, llmCallsTotal, llmLatency,
		requestTotal, requestDuration, goroutines)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		turnsTotal:      turnsTotal,
		turnDuration:    turnDuration,
		fallbacksTotal:  fallbacksTotal,
		llmCallsTotal:   llmCallsTotal,
		llmLatency:      llmLatency,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveUseCase records process-turn events; other use cases are ignored.
func (m *Metrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	if m == nil || event.Name != "process-turn" {
		return
	}
	route := fieldString(event.Fields, "route")
	if route == "" {
		route = "none"
	}
	intent := fieldString(event.Fields, "intent")
	if intent == "" {
		intent = "none"
	}
	m.turnsTotal.WithLabelValues(route, intent).Inc()
	m.turnDuration.Observe(event.Duration.Seconds())

	if kind := fieldString(event.Fields, "kind"); fallbackKinds[kind] {
		m.fallbacksTotal.WithLabelValues(kind).Inc()
	}
}

// OnCallComplete records one generative call.
func (m *Metrics) OnCallComplete(event llm.LLMCallEvent) {
	if m == nil {
		return
	}
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
		if status == "" {
			status = "error"
		}
	}
	m.llmCallsTotal.WithLabelValues(string(event.Task), status).Inc()
	m.llmLatency.WithLabelValues(string(event.Task)).Observe(float64(event.LatencyMs) / 1000)
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestTotal.WithLabelValues(method, path, code).Inc()
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func fieldString(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
