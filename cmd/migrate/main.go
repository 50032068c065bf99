package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/produflow/produflow-api/internal/adapter/database"
	"github.com/produflow/produflow-api/pkg/config"
	"github.com/produflow/produflow-api/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	var (
		action string
		driver string
		dsn    string
	)

	flag.StringVar(&action, "action", "migrate", "Ação (migrate, rollback)")
	flag.StringVar(&driver, "driver", "sqlite", "Driver de banco de dados (sqlite, mysql, postgres)")
	flag.StringVar(&dsn, "dsn", "./produflow.db", "DSN do banco de dados")
	flag.Parse()

	// Inicializar logger
	logger, err := logging.NewLogger(config.LoggingConfig{Level: "info", Format: "console", OutputPath: "stdout", ErrorPath: "stderr"})
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbConfig := database.Config{
		Driver:          driver,
		DSN:             dsn,
		MaxIdleConns:    5,
		MaxOpenConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		LogLevel:        4,
		SlowThreshold:   200 * time.Millisecond,
		SkipMigrations:  action != "migrate",
	}

	ctx := context.Background()

	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
	}
	defer db.Close()

	switch action {
	case "migrate":
		// NewDatabase já aplicou as migrações pendentes
		logger.Info("Migrações aplicadas com sucesso")

	case "rollback":
		if err := db.RollbackLast(ctx); err != nil {
			logger.Fatal("Falha ao desfazer migração", zap.Error(err))
		}
		logger.Info("Última migração desfeita com sucesso")

	default:
		logger.Fatal("Ação desconhecida", zap.String("action", action))
	}
}
