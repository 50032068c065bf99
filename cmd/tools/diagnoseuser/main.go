package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/produflow/produflow-api/internal/adapter/database"
	"github.com/produflow/produflow-api/internal/domain/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Diagnóstico de conta: verifica se o usuário existe, se está ativo e,
// opcionalmente, se uma senha confere com o hash armazenado.
func main() {
	var (
		email    string
		senha    string
		dbDriver string
		dbDSN    string
	)

	flag.StringVar(&email, "email", "", "Email da conta a diagnosticar")
	flag.StringVar(&senha, "senha", "", "Senha a verificar (opcional)")
	flag.StringVar(&dbDriver, "driver", "sqlite", "Driver do banco de dados (sqlite, mysql, postgres)")
	flag.StringVar(&dbDSN, "dsn", "./produflow.db", "DSN do banco de dados")
	flag.Parse()

	if email == "" {
		fmt.Println("Erro: o email não pode ser vazio.")
		flag.Usage()
		os.Exit(1)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbConfig := database.Config{
		Driver:          dbDriver,
		DSN:             dbDSN,
		MaxIdleConns:    5,
		MaxOpenConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		LogLevel:        4,
		SlowThreshold:   200 * time.Millisecond,
		SkipMigrations:  true,
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var user model.UserEntity
	result := db.DB().Where("email = ?", email).First(&user)
	if result.Error == gorm.ErrRecordNotFound {
		fmt.Printf("Conta não encontrada para o email %s\n", email)
		os.Exit(1)
	} else if result.Error != nil {
		fmt.Printf("Erro ao buscar conta: %v\n", result.Error)
		os.Exit(1)
	}

	fmt.Println("Conta encontrada:")
	fmt.Printf("  ID:    %s\n", user.ID)
	fmt.Printf("  Nome:  %s\n", user.Nome)
	fmt.Printf("  Papel: %s\n", user.Papel)
	fmt.Printf("  Ativo: %v\n", user.Ativo)

	if senha != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(senha)); err != nil {
			fmt.Println("  Senha: NÃO confere com o hash armazenado")
			os.Exit(1)
		}
		fmt.Println("  Senha: confere")
	}
}
