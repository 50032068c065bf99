package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/produflow/produflow-api/internal/adapter/database"
	"github.com/produflow/produflow-api/internal/adapter/http"
	"github.com/produflow/produflow-api/internal/domain/service"
	"github.com/produflow/produflow-api/internal/infra/metrics"
	"github.com/produflow/produflow-api/internal/infra/middleware"
	"github.com/produflow/produflow-api/pkg/cache"
	"github.com/produflow/produflow-api/pkg/config"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// App agrega todos os componentes da aplicação com as dependências injetadas
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *database.Database
	Middleware *middleware.Middleware
	Services   *service.Services
	Cache      cache.Cache
	APIMetrics *metrics.APIMetrics

	projetoHandler  *http.ProjetoHandler
	catalogoHandler *http.CatalogoHandler
	userHandler     *http.UserHandler
	healthChecker   *http.HealthChecker
}

// NewApp cria uma nova instância da aplicação
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	// Inicializar banco de dados
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
		SkipMigrations:  cfg.Database.SkipMigrations,
	}

	db, err := database.NewDatabase(ctx, dbConfig, log)
	if err != nil {
		return nil, err
	}

	// Inicializar métricas
	apiMetrics := metrics.NewAPIMetrics()

	// Inicializar cache do catálogo
	appCache, err := buildCache(cfg, apiMetrics, log)
	if err != nil {
		return nil, err
	}

	// Inicializar repositórios
	projetoRepo := database.NewProjetoRepository(db.DB(), log)
	userRepo := database.NewUserRepository(db.DB(), log)
	catalogoRepo := database.NewCatalogoRepository(db.DB(), log)

	// Inicializar serviços
	services, err := service.NewServices(projetoRepo, userRepo, catalogoRepo, appCache, apiMetrics, log)
	if err != nil {
		return nil, err
	}

	// Carga inicial do catálogo
	if cfg.Seed.Enabled {
		if err := services.CatalogoService.Seed(ctx); err != nil {
			return nil, fmt.Errorf("erro na carga inicial do catálogo: %w", err)
		}
	}

	// Inicializar middleware com as métricas já criadas
	middlewares := middleware.NewMiddleware(cfg, log, services.AuthService, apiMetrics)
	middlewares.SetMetricsMiddleware(middleware.NewMetricsMiddleware(apiMetrics, log))

	return &App{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Middleware: middlewares,
		Services:   services,
		Cache:      appCache,
		APIMetrics: apiMetrics,

		projetoHandler:  http.NewProjetoHandler(services.ProjetoService, log),
		catalogoHandler: http.NewCatalogoHandler(services.CatalogoService, log),
		userHandler:     http.NewUserHandler(services.AuthService, log),
		healthChecker:   http.NewHealthChecker(db, appCache, log),
	}, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	// Middleware global
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	router.Use(a.Middleware.Metrics())
	router.Use(a.Middleware.IPRateLimit())
	router.Use(a.Middleware.IgnoreFavicon())
	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}

	// Health checks
	router.GET("/health", a.healthChecker.LivenessCheck)
	router.GET("/health/liveness", a.healthChecker.LivenessCheck)
	router.GET("/health/readiness", a.healthChecker.ReadinessCheck)

	// Métricas Prometheus
	if a.Config.Metrics.Enabled {
		router.GET(a.Config.Metrics.PrometheusPath, gin.WrapH(promhttp.Handler()))
		a.Logger.Info("Endpoint de métricas Prometheus registrado",
			zap.String("path", a.Config.Metrics.PrometheusPath))
	}

	api := router.Group("/api")

	// Autenticação
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", a.Middleware.LoginRateLimit(), a.userHandler.Login)
		authGroup.POST("/register", a.Middleware.AuthenticateOptional, a.userHandler.Register)
		authGroup.GET("/me", a.Middleware.Authenticate, a.userHandler.Me)
	}

	// Rotas autenticadas
	authed := api.Group("")
	authed.Use(a.Middleware.Authenticate)
	authed.Use(a.Middleware.UserRateLimit())
	{
		authed.GET("/usuarios", a.userHandler.ListMembros)
		authed.POST("/usuarios", a.Middleware.RequireAdmin, a.userHandler.Register)
		authed.PATCH("/usuarios/:id/ativo", a.Middleware.RequireAdmin, a.userHandler.SetAtivo)

		authed.GET("/projetos", a.projetoHandler.List)
		authed.POST("/projetos", a.projetoHandler.Create)
		authed.GET("/projetos/:id", a.projetoHandler.Get)
		authed.PUT("/projetos/:id", a.projetoHandler.Update)
		authed.DELETE("/projetos/:id", a.projetoHandler.Delete)
		authed.POST("/projetos/:id/status", a.projetoHandler.Transition)
		authed.GET("/projetos/:id/logs", a.projetoHandler.Historico)

		authed.GET("/metricas", a.projetoHandler.Metricas)

		authed.GET("/tipos-de-video", a.catalogoHandler.ListTipos)
		authed.POST("/tipos-de-video", a.catalogoHandler.CreateTipo)
		authed.GET("/tags", a.catalogoHandler.ListTags)
		authed.POST("/tags", a.catalogoHandler.CreateTag)

		authed.GET("/health/detailed", a.Middleware.RequireAdmin, a.healthChecker.DetailedHealth)
	}
}

// Close libera os recursos da aplicação
func (a *App) Close() error {
	return a.DB.Close()
}

// buildCache monta o cache do catálogo conforme a configuração
func buildCache(cfg *config.Config, apiMetrics *metrics.APIMetrics, log *zap.Logger) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		return &cache.NoOpCache{}, nil
	}

	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(
			cfg.Cache.Redis.Address,
			cfg.Cache.Redis.Password,
			cfg.Cache.Redis.DB,
			log,
		)
		if err != nil {
			log.Warn("Redis indisponível, usando cache em memória", zap.Error(err))
			return cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL, apiMetrics, log), nil
		}
		return redisCache, nil
	}

	return cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL, apiMetrics, log), nil
}

// gormLogLevel converte o nível textual da configuração para o GORM
func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
