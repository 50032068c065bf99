package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/produflow/produflow-api/internal/adapter/database"
	"github.com/produflow/produflow-api/internal/domain/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Ferramenta de provisionamento do primeiro administrador. As contas
// seguintes são criadas pela API com um token de admin.
func main() {
	var (
		nome     string
		email    string
		senha    string
		dbDriver string
		dbDSN    string
		verbose  bool
	)

	flag.StringVar(&nome, "nome", "", "Nome do administrador")
	flag.StringVar(&email, "email", "", "Email do administrador")
	flag.StringVar(&senha, "senha", "", "Senha do administrador")
	flag.StringVar(&dbDriver, "driver", "sqlite", "Driver do banco de dados (sqlite, mysql, postgres)")
	flag.StringVar(&dbDSN, "dsn", "./produflow.db", "DSN do banco de dados")
	flag.BoolVar(&verbose, "verbose", false, "Mostrar logs detalhados")
	flag.Parse()

	if nome == "" || email == "" || senha == "" {
		fmt.Println("Erro: nome, email e senha não podem ser vazios.")
		flag.Usage()
		os.Exit(1)
	}

	// Logger silencioso por padrão; -verbose libera tudo
	cfg := zap.NewProductionConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		cfg.OutputPaths = []string{"stderr"}
	}

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
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Não duplicar contas
	var existente model.UserEntity
	result := db.DB().Where("email = ?", email).First(&existente)
	if result.Error == nil {
		fmt.Printf("Erro: já existe uma conta com o email %s\n", email)
		os.Exit(1)
	} else if result.Error != gorm.ErrRecordNotFound {
		fmt.Printf("Erro ao verificar email existente: %v\n", result.Error)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Erro ao gerar hash da senha: %v\n", err)
		os.Exit(1)
	}

	admin := model.UserEntity{
		ID:    uuid.NewString(),
		Nome:  nome,
		Email: email,
		Senha: string(hash),
		Papel: model.PapelAdmin,
		Ativo: true,
	}

	if err := db.DB().Create(&admin).Error; err != nil {
		fmt.Printf("Erro ao criar administrador: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Administrador criado com sucesso!")
	fmt.Printf("  ID:    %s\n", admin.ID)
	fmt.Printf("  Nome:  %s\n", admin.Nome)
	fmt.Printf("  Email: %s\n", admin.Email)
}
