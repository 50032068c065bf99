package database

import (
	"context"
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrationManager gerencia migrações versionadas do esquema
type MigrationManager struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMigrationManager cria um novo gerenciador de migrações
func NewMigrationManager(db *gorm.DB, logger *zap.Logger) *MigrationManager {
	return &MigrationManager{
		db:     db,
		logger: logger,
	}
}

// migrations é a lista ordenada de migrações do esquema. Novas mudanças
// entram no fim da lista com um ID de versão crescente.
func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202501010001_esquema_inicial",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(Entities()...)
			},
			Rollback: func(tx *gorm.DB) error {
				for _, entity := range Entities() {
					if err := tx.Migrator().DropTable(entity); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID: "202501150001_indice_projetos_status_criacao",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec(
					"CREATE INDEX IF NOT EXISTS idx_projetos_status_data_criacao ON projetos (status, data_criacao)",
				).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_projetos_status_data_criacao").Error
			},
		},
	}
}

// ApplyMigrations aplica todas as migrações pendentes
func (m *MigrationManager) ApplyMigrations(ctx context.Context) error {
	migrator := gormigrate.New(m.db.WithContext(ctx), gormigrate.DefaultOptions, migrations())

	if err := migrator.Migrate(); err != nil {
		return fmt.Errorf("falha ao aplicar migrações: %w", err)
	}

	m.logger.Info("Migrações aplicadas com sucesso")
	return nil
}

// RollbackLast desfaz a última migração aplicada
func (m *MigrationManager) RollbackLast(ctx context.Context) error {
	migrator := gormigrate.New(m.db.WithContext(ctx), gormigrate.DefaultOptions, migrations())

	if err := migrator.RollbackLast(); err != nil {
		return fmt.Errorf("falha ao desfazer migração: %w", err)
	}
	return nil
}
