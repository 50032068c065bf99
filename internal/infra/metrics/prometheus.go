package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics gerencia métricas relacionadas à API
type APIMetrics struct {
	requestCounter    *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	requestSize       *prometheus.SummaryVec
	responseSize      *prometheus.SummaryVec
	activeRequests    *prometheus.GaugeVec
	errorsTotal       *prometheus.CounterVec
	statusTransitions *prometheus.CounterVec
	rateLimited       *prometheus.CounterVec
	cacheHitRatio     *prometheus.GaugeVec
}

// NewAPIMetrics cria e registra métricas do prometheus
func NewAPIMetrics() *APIMetrics {
	return &APIMetrics{
		requestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "produflow_requests_total",
				Help: "Total number of HTTP requests by path, method, and status code",
			},
			[]string{"path", "method", "status"},
		),

		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "produflow_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		requestSize: promauto.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "produflow_request_size_bytes",
				Help:       "HTTP request size in bytes",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"path", "method"},
		),

		responseSize: promauto.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "produflow_response_size_bytes",
				Help:       "HTTP response size in bytes",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"path", "method"},
		),

		activeRequests: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "produflow_active_requests",
				Help: "Number of in-flight requests being processed",
			},
			[]string{"path", "method"},
		),

		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "produflow_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"path", "method", "error_type"},
		),

		statusTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "produflow_status_transitions_total",
				Help: "Total number of project status transitions by target status",
			},
			[]string{"status"},
		),

		rateLimited: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "produflow_rate_limited_requests_total",
				Help: "Total number of rate limited requests",
			},
			[]string{"path", "method", "limit_type"},
		),

		cacheHitRatio: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "produflow_cache_hit_ratio",
				Help: "Cache hit ratio (0.0 to 1.0)",
			},
			[]string{"cache_type"},
		),
	}
}

// RequestStarted registra o início de uma requisição
func (m *APIMetrics) RequestStarted(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Inc()
}

// RequestCompleted registra a conclusão de uma requisição
func (m *APIMetrics) RequestCompleted(path, method, status string, duration time.Duration, requestSize, responseSize int) {
	m.requestCounter.WithLabelValues(path, method, status).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
	m.requestSize.WithLabelValues(path, method).Observe(float64(requestSize))
	m.responseSize.WithLabelValues(path, method).Observe(float64(responseSize))
	m.activeRequests.WithLabelValues(path, method).Dec()
}

// RequestError registra um erro de requisição
func (m *APIMetrics) RequestError(path, method, errorType string) {
	m.errorsTotal.WithLabelValues(path, method, errorType).Inc()
}

// StatusTransition registra uma transição de status concluída
func (m *APIMetrics) StatusTransition(status string) {
	m.statusTransitions.WithLabelValues(status).Inc()
}

// RateLimitExceeded registra quando um limite de taxa é excedido
func (m *APIMetrics) RateLimitExceeded(path, method, limitType string) {
	m.rateLimited.WithLabelValues(path, method, limitType).Inc()
}

// UpdateCacheHitRatio atualiza a taxa de acertos do cache
func (m *APIMetrics) UpdateCacheHitRatio(cacheType string, hitRatio float64) {
	m.cacheHitRatio.WithLabelValues(cacheType).Set(hitRatio)
}
