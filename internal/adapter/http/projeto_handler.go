package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/produflow/produflow-api/internal/app/projeto"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/infra/middleware"
	"go.uber.org/zap"
)

// ProjetoHandler implementa os endpoints de projetos
type ProjetoHandler struct {
	service *projeto.Service
	logger  *zap.Logger
}

// NewProjetoHandler cria um novo handler de projetos
func NewProjetoHandler(service *projeto.Service, logger *zap.Logger) *ProjetoHandler {
	return &ProjetoHandler{
		service: service,
		logger:  logger,
	}
}

// List lista os projetos, aceitando filtros por query string
func (h *ProjetoHandler) List(c *gin.Context) {
	var filtros model.FiltrosProjeto
	if err := c.ShouldBindQuery(&filtros); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filtros inválidos: " + err.Error()})
		return
	}

	projetos, err := h.service.List(c.Request.Context(), filtros)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, projetos)
}

// Get retorna um projeto pelo identificador
func (h *ProjetoHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Create cria um novo projeto no status Briefing
func (h *ProjetoHandler) Create(c *gin.Context) {
	var input projeto.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Update edita os metadados de um projeto
func (h *ProjetoHandler) Update(c *gin.Context) {
	var input projeto.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	p, err := h.service.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Transition muda o status do projeto, registrando a auditoria
func (h *ProjetoHandler) Transition(c *gin.Context) {
	var input projeto.TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	p, err := h.service.Transition(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Delete exclui o projeto e seu histórico
func (h *ProjetoHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Projeto removido com sucesso"})
}

// Historico lista as mudanças de status do projeto
func (h *ProjetoHandler) Historico(c *gin.Context) {
	logs, err := h.service.Historico(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// Metricas retorna o retrato agregado dos projetos
func (h *ProjetoHandler) Metricas(c *gin.Context) {
	m, err := h.service.Metricas(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, m)
}
