package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/produflow/produflow-api/internal/adapter/database"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/domain/repository"
	"github.com/produflow/produflow-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, nome string) *model.UserEntity {
	t.Helper()
	user := &model.UserEntity{
		ID:    uuid.NewString(),
		Nome:  nome,
		Email: nome + "@produflow.test",
		Senha: "hash",
		Papel: model.PapelMembro,
		Ativo: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProjeto(t *testing.T, repo *database.ProjetoRepository, responsavelID, titulo string, status model.Status) *model.ProjetoEntity {
	t.Helper()
	p := &model.ProjetoEntity{
		ID:            uuid.NewString(),
		Titulo:        titulo,
		ResponsavelID: responsavelID,
		Prioridade:    model.PrioridadeMedia,
		Status:        status,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestProjetoRepository_List(t *testing.T) {
	db := testutils.NewTestDB(t)
	logger := testutils.TestLogger(t)
	repo := database.NewProjetoRepository(db, logger)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	bruno := seedUser(t, db, "bruno")

	antigo := &model.ProjetoEntity{
		ID:            uuid.NewString(),
		Titulo:        "Vídeo institucional da Acme",
		Cliente:       "Acme",
		ResponsavelID: ana.ID,
		Status:        model.StatusEdicao,
		Prioridade:    model.PrioridadeAlta,
		DataCriacao:   time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(antigo).Error)

	recente := &model.ProjetoEntity{
		ID:            uuid.NewString(),
		Titulo:        "Tutorial de onboarding",
		Descricao:     "Série para novos clientes",
		ResponsavelID: bruno.ID,
		Status:        model.StatusBriefing,
		Prioridade:    model.PrioridadeBaixa,
		DataCriacao:   time.Now(),
	}
	require.NoError(t, db.Create(recente).Error)

	t.Run("sem filtros, ordenado por criação decrescente", func(t *testing.T) {
		projetos, err := repo.List(ctx, model.FiltrosProjeto{})
		require.NoError(t, err)
		require.Len(t, projetos, 2)
		assert.Equal(t, recente.ID, projetos[0].ID)
		assert.Equal(t, antigo.ID, projetos[1].ID)
	})

	t.Run("relações carregadas", func(t *testing.T) {
		projetos, err := repo.List(ctx, model.FiltrosProjeto{Status: string(model.StatusEdicao)})
		require.NoError(t, err)
		require.Len(t, projetos, 1)
		require.NotNil(t, projetos[0].Responsavel)
		assert.Equal(t, "ana", projetos[0].Responsavel.Nome)
	})

	t.Run("filtro por responsável", func(t *testing.T) {
		projetos, err := repo.List(ctx, model.FiltrosProjeto{ResponsavelID: bruno.ID})
		require.NoError(t, err)
		require.Len(t, projetos, 1)
		assert.Equal(t, recente.ID, projetos[0].ID)
	})

	t.Run("filtros combinam com AND", func(t *testing.T) {
		projetos, err := repo.List(ctx, model.FiltrosProjeto{
			ResponsavelID: bruno.ID,
			Status:        string(model.StatusEdicao),
		})
		require.NoError(t, err)
		assert.Empty(t, projetos)
	})

	t.Run("busca insensível a maiúsculas no título", func(t *testing.T) {
		projetos, err := repo.List(ctx, model.FiltrosProjeto{Search: "TUTORIAL"})
		require.NoError(t, err)
		require.Len(t, projetos, 1)
		assert.Equal(t, recente.ID, projetos[0].ID)
	})

	t.Run("busca cobre descrição e cliente", func(t *testing.T) {
		porDescricao, err := repo.List(ctx, model.FiltrosProjeto{Search: "novos clientes"})
		require.NoError(t, err)
		require.Len(t, porDescricao, 1)
		assert.Equal(t, recente.ID, porDescricao[0].ID)

		porCliente, err := repo.List(ctx, model.FiltrosProjeto{Search: "acme"})
		require.NoError(t, err)
		require.Len(t, porCliente, 1)
		assert.Equal(t, antigo.ID, porCliente[0].ID)
	})

	t.Run("busca sem correspondência", func(t *testing.T) {
		projetos, err := repo.List(ctx, model.FiltrosProjeto{Search: "inexistente"})
		require.NoError(t, err)
		assert.Empty(t, projetos)
	})
}

func TestProjetoRepository_Transition(t *testing.T) {
	db := testutils.NewTestDB(t)
	logger := testutils.TestLogger(t)
	repo := database.NewProjetoRepository(db, logger)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	p := seedProjeto(t, repo, ana.ID, "Comercial de fim de ano", model.StatusEdicao)

	p.Status = model.StatusEntrega
	log := &model.LogStatusEntity{
		ID:             uuid.NewString(),
		ProjetoID:      p.ID,
		StatusAnterior: model.StatusEdicao,
		StatusNovo:     model.StatusEntrega,
		UsuarioID:      ana.ID,
	}

	require.NoError(t, repo.Transition(ctx, p, log))

	atual, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEntrega, atual.Status)

	logs, err := repo.ListLogs(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.StatusEdicao, logs[0].StatusAnterior)
	assert.Equal(t, model.StatusEntrega, logs[0].StatusNovo)
	assert.Equal(t, ana.ID, logs[0].UsuarioID)

	t.Run("projeto inexistente", func(t *testing.T) {
		fantasma := &model.ProjetoEntity{ID: uuid.NewString(), Status: model.StatusRoteiro}
		err := repo.Transition(ctx, fantasma, &model.LogStatusEntity{
			ID:        uuid.NewString(),
			ProjetoID: fantasma.ID,
			UsuarioID: ana.ID,
		})
		assert.ErrorIs(t, err, repository.ErrProjetoNotFound)
	})
}

func TestProjetoRepository_Delete(t *testing.T) {
	db := testutils.NewTestDB(t)
	logger := testutils.TestLogger(t)
	repo := database.NewProjetoRepository(db, logger)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	p := seedProjeto(t, repo, ana.ID, "Webinar de produto", model.StatusBriefing)

	p.Status = model.StatusRoteiro
	require.NoError(t, repo.Transition(ctx, p, &model.LogStatusEntity{
		ID:             uuid.NewString(),
		ProjetoID:      p.ID,
		StatusAnterior: model.StatusBriefing,
		StatusNovo:     model.StatusRoteiro,
		UsuarioID:      ana.ID,
	}))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrProjetoNotFound)

	// O histórico é removido junto com o projeto
	var count int64
	require.NoError(t, db.Model(&model.LogStatusEntity{}).Where("projeto_id = ?", p.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	t.Run("projeto inexistente", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString()), repository.ErrProjetoNotFound)
	})
}

func TestProjetoRepository_Update(t *testing.T) {
	db := testutils.NewTestDB(t)
	logger := testutils.TestLogger(t)
	repo := database.NewProjetoRepository(db, logger)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	p := seedProjeto(t, repo, ana.ID, "Título original", model.StatusBriefing)

	p.Titulo = "Título revisado"
	p.Tags = model.StringList{"Marketing", "Q1"}
	require.NoError(t, repo.Update(ctx, p))

	atual, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Título revisado", atual.Titulo)
	assert.Equal(t, model.StringList{"Marketing", "Q1"}, atual.Tags)
}
