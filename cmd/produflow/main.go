package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/produflow/produflow-api/internal/app"
	"github.com/produflow/produflow-api/pkg/config"
	"github.com/produflow/produflow-api/pkg/logging"
	"github.com/produflow/produflow-api/pkg/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
)

func main() {
	// Carregar configuração
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		fmt.Printf("Falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	// Inicializar logger
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Inicializar o tracer se estiver habilitado
	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(
			context.Background(),
			cfg.Tracing.ServiceName,
			cfg.Tracing.Endpoint,
			cfg.Tracing.SamplingRatio,
			logger,
		)
		if err != nil {
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		} else {
			logger.Info("Tracer inicializado com sucesso",
				zap.String("endpoint", cfg.Tracing.Endpoint))
			defer tp.Shutdown(context.Background())
		}
	}

	ctx, span := otel.Tracer("produflow.main").Start(context.Background(), "Server Initialization")
	defer span.End()

	// Inicializar aplicação
	gin.SetMode(cfg.Server.Mode)
	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Fatal("Falha ao inicializar aplicação", zap.Error(err))
	}
	defer application.Close()

	// Configurar o router
	router := gin.New()
	application.RegisterRoutes(router)

	// Configurar servidor HTTP
	server := setupServer(router, cfg, logger)

	// Iniciar o servidor em uma goroutine
	go func() {
		var err error

		if server.TLSConfig != nil {
			logger.Info("Iniciando servidor HTTPS", zap.String("addr", server.Addr))

			if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
				err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
			} else {
				// Let's Encrypt gerencia os certificados
				err = server.ListenAndServeTLS("", "")
			}
		} else {
			logger.Info("Iniciando servidor HTTP", zap.String("addr", server.Addr))
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Erro ao iniciar servidor", zap.Error(err))
		}
	}()

	// Esperar por sinal de interrupção para shutdown gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Erro ao encerrar servidor", zap.Error(err))
	}

	logger.Info("Servidor encerrado com sucesso")
}

// setupServer monta o servidor HTTP ou HTTPS conforme a configuração
func setupServer(router *gin.Engine, cfg *config.Config, logger *zap.Logger) *http.Server {
	if !cfg.Server.TLS {
		logger.Info("Iniciando em modo HTTP", zap.Int("port", cfg.Server.Port))
		return &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:        router,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.IdleTimeout,
			MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		}
	}

	// Certificados próprios, quando fornecidos e presentes em disco
	hasCertificates := cfg.Server.CertFile != "" && cfg.Server.KeyFile != ""
	if hasCertificates {
		if _, err := os.Stat(cfg.Server.CertFile); os.IsNotExist(err) {
			logger.Error("Arquivo de certificado não encontrado",
				zap.String("certFile", cfg.Server.CertFile))
			hasCertificates = false
		}
		if _, err := os.Stat(cfg.Server.KeyFile); os.IsNotExist(err) {
			logger.Error("Arquivo de chave privada não encontrado",
				zap.String("keyFile", cfg.Server.KeyFile))
			hasCertificates = false
		}
	}

	if hasCertificates {
		logger.Info("Usando certificados TLS fornecidos",
			zap.String("certFile", cfg.Server.CertFile),
			zap.String("keyFile", cfg.Server.KeyFile))

		server := &http.Server{
			Addr:    ":443",
			Handler: router,
			TLSConfig: &tls.Config{
				MinVersion: tls.VersionTLS13,
				CipherSuites: []uint16{
					tls.TLS_AES_128_GCM_SHA256,
					tls.TLS_AES_256_GCM_SHA384,
					tls.TLS_CHACHA20_POLY1305_SHA256,
				},
			},
		}

		go startHTTPRedirector(logger)
		return server
	}

	// Sem certificados próprios: tentar Let's Encrypt
	domains := cfg.Server.Domains
	if serverDomains := os.Getenv("SERVER_DOMAINS"); serverDomains != "" {
		domains = strings.Split(serverDomains, ",")
	}

	validDomains := make([]string, 0)
	for _, domain := range domains {
		if domain != "" && domain != "localhost" && domain != "127.0.0.1" {
			validDomains = append(validDomains, domain)
		}
	}

	if len(validDomains) == 0 {
		logger.Warn("Nenhum domínio válido configurado para Let's Encrypt. Usando HTTP.",
			zap.Strings("domains", domains))
		return &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		}
	}

	email := os.Getenv("LETSENCRYPT_EMAIL")
	logger.Info("Inicializando Let's Encrypt",
		zap.Strings("domains", validDomains))

	certManager := autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(validDomains...),
		Cache:      autocert.DirCache("./certs"),
		Email:      email,
	}

	server := &http.Server{
		Addr:    ":443",
		Handler: router,
		TLSConfig: &tls.Config{
			GetCertificate: certManager.GetCertificate,
			MinVersion:     tls.VersionTLS13,
			CipherSuites: []uint16{
				tls.TLS_AES_128_GCM_SHA256,
				tls.TLS_AES_256_GCM_SHA384,
				tls.TLS_CHACHA20_POLY1305_SHA256,
			},
		},
	}

	// Servidor HTTP para desafios Let's Encrypt e redirecionamento HTTPS
	go func() {
		httpServer := &http.Server{
			Addr:    ":80",
			Handler: certManager.HTTPHandler(http.HandlerFunc(redirectHTTPS)),
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Erro no servidor HTTP para Let's Encrypt", zap.Error(err))
		}
	}()

	return server
}

// startHTTPRedirector inicia um servidor HTTP simples para redirecionar para HTTPS
func startHTTPRedirector(logger *zap.Logger) {
	httpServer := &http.Server{
		Addr:    ":80",
		Handler: http.HandlerFunc(redirectHTTPS),
	}

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Erro no servidor HTTP para redirecionamento", zap.Error(err))
	}
}

func redirectHTTPS(w http.ResponseWriter, r *http.Request) {
	target := "https://" + r.Host + r.URL.Path
	if len(r.URL.RawQuery) > 0 {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
