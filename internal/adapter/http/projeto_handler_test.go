package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/produflow/produflow-api/internal/adapter/database"
	api "github.com/produflow/produflow-api/internal/adapter/http"
	"github.com/produflow/produflow-api/internal/app/projeto"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/testutils"
)

// setupProjetoRouter monta o router com os endpoints de projetos sobre um
// banco em memória, com o usuário informado já autenticado.
func setupProjetoRouter(t *testing.T, user *model.User) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutils.NewTestDB(t)
	logger := testutils.TestLogger(t)

	service := projeto.NewService(
		database.NewProjetoRepository(db, logger),
		database.NewUserRepository(db, logger),
		nil,
		logger,
	)
	handler := api.NewProjetoHandler(service, logger)

	router := testutils.SetupTestRouter(t)
	router.Use(func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	})

	group := router.Group("/api")
	group.GET("/projetos", handler.List)
	group.POST("/projetos", handler.Create)
	group.GET("/projetos/:id", handler.Get)
	group.PUT("/projetos/:id", handler.Update)
	group.DELETE("/projetos/:id", handler.Delete)
	group.POST("/projetos/:id/status", handler.Transition)
	group.GET("/projetos/:id/logs", handler.Historico)
	group.GET("/metricas", handler.Metricas)

	require.NoError(t, db.Create(&model.UserEntity{
		ID:    user.ID,
		Nome:  user.Nome,
		Email: user.ID + "@produflow.test",
		Senha: "hash",
		Papel: user.Papel,
		Ativo: true,
	}).Error)

	return router, db
}

func TestProjetoHandler_CicloDeVida(t *testing.T) {
	gestor := &model.User{ID: "g1", Nome: "Gabriela", Papel: model.PapelGestor, Ativo: true}
	router, _ := setupProjetoRouter(t, gestor)

	// Criar
	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/projetos", map[string]any{
		"titulo":  "Vídeo institucional",
		"cliente": "Acme",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	testutils.RequireJSONContentType(t, resp)

	var criado model.ProjetoEntity
	testutils.ParseResponse(t, resp, &criado)
	assert.Equal(t, model.StatusBriefing, criado.Status)
	assert.Equal(t, "g1", criado.ResponsavelID, "criador assume como responsável")

	// Listar
	resp = testutils.MakeRequest(t, router, http.MethodGet, "/api/projetos", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var projetos []model.ProjetoEntity
	testutils.ParseResponse(t, resp, &projetos)
	require.Len(t, projetos, 1)

	// Transicionar
	resp = testutils.MakeRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/projetos/%s/status", criado.ID),
		map[string]any{"status": "Roteiro"}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var transicionado model.ProjetoEntity
	testutils.ParseResponse(t, resp, &transicionado)
	assert.Equal(t, model.StatusRoteiro, transicionado.Status)

	// Histórico registra a transição
	resp = testutils.MakeRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/projetos/%s/logs", criado.ID), nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var logs []model.LogStatusEntity
	testutils.ParseResponse(t, resp, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, model.StatusBriefing, logs[0].StatusAnterior)
	assert.Equal(t, model.StatusRoteiro, logs[0].StatusNovo)
	assert.Equal(t, "g1", logs[0].UsuarioID)

	// Excluir
	resp = testutils.MakeRequest(t, router, http.MethodDelete,
		"/api/projetos/"+criado.ID, nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = testutils.MakeRequest(t, router, http.MethodGet,
		"/api/projetos/"+criado.ID, nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
}

func TestProjetoHandler_Erros(t *testing.T) {
	gestor := &model.User{ID: "g1", Nome: "Gabriela", Papel: model.PapelGestor, Ativo: true}

	t.Run("projeto inexistente", func(t *testing.T) {
		router, _ := setupProjetoRouter(t, gestor)

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/projetos/nao-existe", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	})

	t.Run("transição inválida responde 409", func(t *testing.T) {
		router, _ := setupProjetoRouter(t, gestor)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/projetos", map[string]any{
			"titulo": "Curta",
		}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

		var criado model.ProjetoEntity
		testutils.ParseResponse(t, resp, &criado)

		// Mesmo status não é uma transição
		resp = testutils.MakeRequest(t, router, http.MethodPost,
			fmt.Sprintf("/api/projetos/%s/status", criado.ID),
			map[string]any{"status": "Briefing"}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusConflict)
	})

	t.Run("status desconhecido responde 409", func(t *testing.T) {
		router, _ := setupProjetoRouter(t, gestor)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/projetos", map[string]any{
			"titulo": "Curta",
		}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

		var criado model.ProjetoEntity
		testutils.ParseResponse(t, resp, &criado)

		resp = testutils.MakeRequest(t, router, http.MethodPost,
			fmt.Sprintf("/api/projetos/%s/status", criado.ID),
			map[string]any{"status": "Inexistente"}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusConflict)
	})

	t.Run("link de vídeo malformado responde 409", func(t *testing.T) {
		router, db := setupProjetoRouter(t, gestor)

		require.NoError(t, db.Create(&model.ProjetoEntity{
			ID: "p1", Titulo: "Quase pronto", ResponsavelID: "g1",
			Status: model.StatusAguardandoAprovacao, Prioridade: model.PrioridadeMedia,
		}).Error)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/projetos/p1/status",
			map[string]any{"status": "Aprovado", "link_video": "not a url at all ;;;"}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusConflict)

		var guardado model.ProjetoEntity
		require.NoError(t, db.First(&guardado, "id = ?", "p1").Error)
		assert.Equal(t, model.StatusAguardandoAprovacao, guardado.Status)
		assert.Empty(t, guardado.LinkVideo)
		assert.Nil(t, guardado.DataAprovacao)
	})

	t.Run("membro não exclui projeto alheio", func(t *testing.T) {
		membro := &model.User{ID: "m1", Nome: "Marcos", Papel: model.PapelMembro, Ativo: true}
		router, db := setupProjetoRouter(t, membro)

		require.NoError(t, db.Create(&model.UserEntity{
			ID: "g1", Nome: "Gabriela", Email: "g1@produflow.test", Senha: "hash",
			Papel: model.PapelGestor, Ativo: true,
		}).Error)
		require.NoError(t, db.Create(&model.ProjetoEntity{
			ID: "p1", Titulo: "Alheio", ResponsavelID: "g1",
			Status: model.StatusBriefing, Prioridade: model.PrioridadeMedia,
		}).Error)

		resp := testutils.MakeRequest(t, router, http.MethodDelete, "/api/projetos/p1", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
	})
}

func TestProjetoHandler_Metricas(t *testing.T) {
	gestor := &model.User{ID: "g1", Nome: "Gabriela", Papel: model.PapelGestor, Ativo: true}
	router, db := setupProjetoRouter(t, gestor)

	require.NoError(t, db.Create(&model.ProjetoEntity{
		ID: "p1", Titulo: "Em edição", ResponsavelID: "g1",
		Status: model.StatusEdicao, Prioridade: model.PrioridadeMedia,
	}).Error)
	require.NoError(t, db.Create(&model.ProjetoEntity{
		ID: "p2", Titulo: "Entregue", Cliente: "Acme", ResponsavelID: "g1",
		Status: model.StatusAprovado, Prioridade: model.PrioridadeAlta,
	}).Error)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/metricas", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var m model.Metricas
	testutils.ParseResponse(t, resp, &m)
	assert.Equal(t, int64(1), m.TotalProjetos)
	assert.Equal(t, int64(1), m.ProjetosAprovados)
	assert.Equal(t, int64(1), m.VideosPorCliente["Acme"])
	assert.Equal(t, 50, m.TaxaConclusao)
	assert.Equal(t, 1, m.MembrosAtivos)
}
