package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application. A nil *Registry is valid
// and records nothing.
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Evaluation Metrics
	AnswerChecksTotal   *prometheus.CounterVec
	AnswerCheckDuration *prometheus.HistogramVec

	// LLM Metrics
	LLMRequestsTotal *prometheus.CounterVec
	LLMTokensTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{registry: reg}
	r.initHTTPMetrics()
	r.initEvaluationMetrics()
	r.initLLMMetrics()
	return r
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "listlab_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listlab_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	r.HTTPRequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "listlab_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)
}

func (r *Registry) initEvaluationMetrics() {
	r.AnswerChecksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "listlab_answer_checks_total",
			Help: "Total number of answer evaluations",
		},
		[]string{"topic", "source", "status"}, // source: model, heuristic, empty, error
	)

	r.AnswerCheckDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listlab_answer_check_duration_seconds",
			Help:    "End-to-end answer evaluation latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"source"},
	)
}

func (r *Registry) initLLMMetrics() {
	r.LLMRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "listlab_llm_requests_total",
			Help: "Total number of generative model calls",
		},
		[]string{"model", "result"}, // result: ok, error
	)

	r.LLMTokensTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "listlab_llm_tokens_total",
			Help: "Tokens consumed by generative model calls",
		},
		[]string{"model", "direction"}, // direction: input, output
	)
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAnswerCheck records one evaluation outcome.
func (r *Registry) RecordAnswerCheck(topic, source string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.AnswerChecksTotal.WithLabelValues(topic, source, strconv.Itoa(status)).Inc()
	r.AnswerCheckDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordLLMRequest records one model call and its token usage.
func (r *Registry) RecordLLMRequest(model string, ok bool, inputTokens, outputTokens int) {
	if r == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	r.LLMRequestsTotal.WithLabelValues(model, result).Inc()
	r.LLMTokensTotal.WithLabelValues(model, "input").Add(float64(inputTokens))
	r.LLMTokensTotal.WithLabelValues(model, "output").Add(float64(outputTokens))
}

// InFlight adjusts the in-flight request gauge by delta.
func (r *Registry) InFlight(delta float64) {
	if r == nil {
		return
	}
	r.HTTPRequestsInFlight.Add(delta)
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
