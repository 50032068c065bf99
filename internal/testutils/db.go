package testutils

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB abre um banco SQLite em memória com o esquema completo,
// isolado por teste.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory database")

	err = db.AutoMigrate(
		&model.UserEntity{},
		&model.TipoVideoEntity{},
		&model.TagEntity{},
		&model.ProjetoEntity{},
		&model.LogStatusEntity{},
	)
	require.NoError(t, err, "Failed to migrate test schema")

	return db
}
