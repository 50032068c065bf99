package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/produflow/produflow-api/internal/infra/metrics"
	"github.com/produflow/produflow-api/pkg/ratelimit"
	"go.uber.org/zap"
)

// RateLimitMiddleware gerencia rate limiting
type RateLimitMiddleware struct {
	limiter *ratelimit.RedisLimiter
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewRateLimitMiddleware cria um novo middleware de rate limiting
func NewRateLimitMiddleware(limiter *ratelimit.RedisLimiter, metrics *metrics.APIMetrics, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
		metrics: metrics,
	}
}

// IPRateLimit limita requisições por IP
func (m *RateLimitMiddleware) IPRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		config := ratelimit.LimitConfig{
			Key:         clientIP,
			Limit:       100,         // 100 requisições
			Period:      time.Minute, // por minuto
			BurstFactor: 1.5,         // permite até 50% mais em picos
		}

		blockKey := fmt.Sprintf("ratelimit:blocked:%s", clientIP)
		blocked, _ := m.limiter.RedisClient.Get(c, blockKey).Bool()
		if blocked {
			c.Header("Retry-After", "600") // 10 minutos
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "IP temporariamente bloqueado devido a excesso de requisições",
				"retry_after": 600,
			})
			return
		}

		allowed, limit, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
		if err != nil {
			m.logger.Error("erro ao verificar rate limit", zap.Error(err))
			c.Next() // Em caso de erro, permite a requisição
			return
		}

		if !allowed && remaining < -100 { // Valor negativo alto indica muitas requisições excedentes
			if m.metrics != nil {
				path := c.FullPath()
				if path == "" {
					path = c.Request.URL.Path
				}
				m.metrics.RateLimitExceeded(path, c.Request.Method, "ip_limit")
			}
			m.logger.Warn("Possível ataque detectado - alto volume de requisições",
				zap.String("ip", clientIP),
				zap.Int("requests", limit-remaining))

			// Bloquear IP por período mais longo (10 minutos)
			m.limiter.RedisClient.Set(c, blockKey, true, 10*time.Minute)

			c.Header("Retry-After", "600")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Limite de requisições excedido significativamente",
				"retry_after": 600,
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "taxa de requisições excedida",
				"retry_after": int(resetAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}

// LoginRateLimit limita tentativas de login por IP, protegendo contra
// força bruta de credenciais
func (m *RateLimitMiddleware) LoginRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		config := ratelimit.LimitConfig{
			Key:         "login:" + c.ClientIP(),
			Limit:       limit,
			Period:      period,
			BurstFactor: 1.0, // sem tolerância de pico para login
		}

		allowed, _, _, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
		if err != nil {
			m.logger.Error("erro ao verificar rate limit de login", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			if m.metrics != nil {
				m.metrics.RateLimitExceeded(c.FullPath(), c.Request.Method, "login_limit")
			}
			m.logger.Warn("Limite de tentativas de login excedido",
				zap.String("ip", c.ClientIP()))

			c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Muitas tentativas de login, aguarde antes de tentar novamente",
				"retry_after": int(resetAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}

// UserRateLimit limita requisições por usuário autenticado
func (m *RateLimitMiddleware) UserRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Next()
			return
		}

		config := ratelimit.LimitConfig{
			Key:         "user:" + user.ID,
			Limit:       1000,        // 1000 requisições
			Period:      time.Minute, // por minuto
			BurstFactor: 1.5,
		}

		allowed, limit, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
		if err != nil {
			m.logger.Error("erro ao verificar rate limit do usuário", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-User-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-User-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-User-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "taxa de requisições do usuário excedida",
				"retry_after": int(resetAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}
