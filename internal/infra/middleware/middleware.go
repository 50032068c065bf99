package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/produflow/produflow-api/internal/app/auth"
	"github.com/produflow/produflow-api/internal/infra/metrics"
	"github.com/produflow/produflow-api/pkg/config"
	"github.com/produflow/produflow-api/pkg/logging"
	"github.com/produflow/produflow-api/pkg/ratelimit"
	"go.uber.org/zap"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger              *zap.Logger
	cfg                 *config.Config
	authMiddleware      *AuthMiddleware
	recoveryMiddleware  *RecoveryMiddleware
	securityMiddleware  *SecurityMiddleware
	tracingMiddleware   *TracingMiddleware
	metricsMiddleware   *MetricsMiddleware
	rateLimitMiddleware *RateLimitMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(cfg *config.Config, logger *zap.Logger, authService *auth.AuthService, apiMetrics *metrics.APIMetrics) *Middleware {
	// Rate limiting usa Redis quando configurado como cache; sem Redis as
	// rotas seguem sem limitação, registrado no log
	var rateLimitMiddleware *RateLimitMiddleware
	if cfg.Cache.Type == "redis" && cfg.Cache.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis indisponível para rate limiting, limites desabilitados",
				zap.Error(err),
				zap.String("redis.address", cfg.Cache.Redis.Address))
		} else {
			logger.Info("Conectado ao Redis para rate limiting",
				zap.String("redis.address", cfg.Cache.Redis.Address))
			limiter := ratelimit.NewRedisLimiter(redisClient, logger)
			rateLimitMiddleware = NewRateLimitMiddleware(limiter, apiMetrics, logger)
		}
	} else {
		logger.Info("Redis não configurado, rate limiting desabilitado")
	}

	return &Middleware{
		logger:              logger,
		cfg:                 cfg,
		authMiddleware:      NewAuthMiddleware(authService, logger),
		recoveryMiddleware:  NewRecoveryMiddleware(logger),
		securityMiddleware:  NewSecurityMiddleware(logger),
		tracingMiddleware:   NewTracingMiddleware(logger, cfg.Tracing.ServiceName),
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

// SetMetricsMiddleware configura o middleware de métricas
func (m *Middleware) SetMetricsMiddleware(metricsMiddleware *MetricsMiddleware) {
	m.metricsMiddleware = metricsMiddleware
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metricsMiddleware != nil {
		return m.metricsMiddleware.Middleware()
	}
	return func(c *gin.Context) {
		c.Next() // No-op se não configurado
	}
}

// Authenticate middleware para autenticação de usuários
func (m *Middleware) Authenticate(c *gin.Context) {
	m.authMiddleware.Authenticate(c)
}

// AuthenticateOptional popula o usuário quando houver token, sem exigi-lo
func (m *Middleware) AuthenticateOptional(c *gin.Context) {
	m.authMiddleware.AuthenticateOptional(c)
}

// RequireAdmin middleware para rotas restritas a administradores
func (m *Middleware) RequireAdmin(c *gin.Context) {
	m.authMiddleware.RequireAdmin(c)
}

// LoginRateLimit limita tentativas de login por IP
func (m *Middleware) LoginRateLimit() gin.HandlerFunc {
	if m.rateLimitMiddleware == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return m.rateLimitMiddleware.LoginRateLimit(m.cfg.Auth.LoginRateLimit, m.cfg.Auth.LoginRatePeriod)
}

// IPRateLimit limita requisições por IP de origem
func (m *Middleware) IPRateLimit() gin.HandlerFunc {
	if m.rateLimitMiddleware == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return m.rateLimitMiddleware.IPRateLimit()
}

// UserRateLimit limita requisições por usuário autenticado
func (m *Middleware) UserRateLimit() gin.HandlerFunc {
	if m.rateLimitMiddleware == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return m.rateLimitMiddleware.UserRateLimit()
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// IgnoreFavicon é um middleware que ignora requisições para /favicon.ico
func (m *Middleware) IgnoreFavicon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/favicon.ico" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Logger middleware para logging de requisições. Quando o tracing está
// ativo, os logs carregam trace_id e span_id para correlação.
func (m *Middleware) Logger() gin.HandlerFunc {
	clog := &logging.ContextLogger{Logger: m.logger}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method

		clog.InfoCtx(c.Request.Context(), "request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", clientIP),
		)
	}
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Tracing retorna o middleware de tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}
