package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/produflow/produflow-api/internal/infra/metrics"
	"go.uber.org/zap"
)

// MetricsMiddleware fornece middleware para coletar métricas
type MetricsMiddleware struct {
	metrics *metrics.APIMetrics
	logger  *zap.Logger
}

// NewMetricsMiddleware cria um novo middleware de métricas
func NewMetricsMiddleware(metrics *metrics.APIMetrics, logger *zap.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: metrics,
		logger:  logger,
	}
}

// Middleware registra métricas para cada requisição
func (m *MetricsMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Obter o caminho e método
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		// Registrar o início da requisição
		m.metrics.RequestStarted(path, method)

		// Registrar o tamanho da requisição
		var requestSize int
		if c.Request.ContentLength > 0 {
			requestSize = int(c.Request.ContentLength)
		}

		// Registrar tempo de início
		start := time.Now()

		// Envolver o ResponseWriter para capturar o tamanho da resposta
		blw := &bodyLogWriter{body: []byte{}, ResponseWriter: c.Writer}
		c.Writer = blw

		// Processar a requisição
		c.Next()

		// Calcular a duração
		duration := time.Since(start)

		// Registrar a conclusão da requisição
		status := strconv.Itoa(c.Writer.Status())
		responseSize := blw.size

		m.metrics.RequestCompleted(path, method, status, duration, requestSize, responseSize)

		// Registrar erros, se houver
		if c.Writer.Status() >= 400 {
			errorType := "client_error"
			if c.Writer.Status() >= 500 {
				errorType = "server_error"
			}
			m.metrics.RequestError(path, method, errorType)
		}
	}
}

// bodyLogWriter é um wrapper para gin.ResponseWriter para capturar o tamanho do corpo
type bodyLogWriter struct {
	gin.ResponseWriter
	body []byte
	size int
}

// Write implementa a interface io.Writer
func (w *bodyLogWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.size += size
	return size, err
}

// WriteString implementa a interface io.StringWriter
func (w *bodyLogWriter) WriteString(s string) (int, error) {
	size, err := w.ResponseWriter.WriteString(s)
	w.size += size
	return size, err
}
