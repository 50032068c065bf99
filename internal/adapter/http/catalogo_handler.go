package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/produflow/produflow-api/internal/app/catalogo"
	"github.com/produflow/produflow-api/internal/infra/middleware"
	"go.uber.org/zap"
)

// CatalogoHandler implementa os endpoints de tipos de vídeo e tags
type CatalogoHandler struct {
	service *catalogo.Service
	logger  *zap.Logger
}

// NewCatalogoHandler cria um novo handler de catálogo
func NewCatalogoHandler(service *catalogo.Service, logger *zap.Logger) *CatalogoHandler {
	return &CatalogoHandler{
		service: service,
		logger:  logger,
	}
}

type catalogoRequest struct {
	Nome string `json:"nome" binding:"required"`
}

// ListTipos lista os tipos de vídeo
func (h *CatalogoHandler) ListTipos(c *gin.Context) {
	tipos, err := h.service.ListTipos(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tipos)
}

// CreateTipo adiciona um tipo de vídeo ao catálogo
func (h *CatalogoHandler) CreateTipo(c *gin.Context) {
	var req catalogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	tipo, err := h.service.CreateTipo(c.Request.Context(), middleware.CurrentUser(c), req.Nome)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, tipo)
}

// ListTags lista as tags
func (h *CatalogoHandler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

// CreateTag adiciona uma tag ao catálogo
func (h *CatalogoHandler) CreateTag(c *gin.Context) {
	var req catalogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	tag, err := h.service.CreateTag(c.Request.Context(), middleware.CurrentUser(c), req.Nome)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}
