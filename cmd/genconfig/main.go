package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/produflow/produflow-api/pkg/config"
	"gopkg.in/yaml.v3"
)

// Gera um config.yaml de exemplo com todos os campos preenchidos com
// valores padrão razoáveis.
func main() {
	var (
		outputPath string
		force      bool
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.Parse()

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			Mode:           "release",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
			TLS:            false,
			CertFile:       "",
			KeyFile:        "",
			Domains:        []string{},
		},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "./produflow.db",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 1 * time.Hour,
			LogLevel:        "warn",
			SlowThreshold:   200 * time.Millisecond,
			SkipMigrations:  false,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Type:    "memory",
			TTL:     5 * time.Minute,
			Redis: config.RedisOptions{
				Address:      "localhost:6379",
				Password:     "",
				DB:           0,
				PoolSize:     10,
				MinIdleConns: 5,
				ReadTimeout:  3 * time.Second,
				WriteTimeout: 3 * time.Second,
				DialTimeout:  5 * time.Second,
			},
		},
		Auth: config.AuthConfig{
			JWTSecret:       "defina-um-segredo-com-pelo-menos-32-bytes",
			TokenExpiration: 24 * time.Hour,
			PasswordMinLen:  8,
			LoginRateLimit:  10,
			LoginRatePeriod: time.Minute,
		},
		Metrics: config.MetricsConfig{
			Enabled:        true,
			PrometheusPath: "/metrics",
		},
		Logging: config.LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			ErrorPath:  "stderr",
			Production: true,
		},
		Tracing: config.TracingConfig{
			Enabled:       false,
			Endpoint:      "localhost:4317",
			ServiceName:   "produflow-api",
			SamplingRatio: 0.1,
		},
		Seed: config.SeedConfig{
			Enabled: true,
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		fmt.Printf("Erro ao gravar %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	fmt.Printf("Configuração de exemplo gravada em %s\n", outputPath)
}
