package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/produflow/produflow-api/pkg/errors"
	"go.uber.org/zap"
)

// respondError traduz a taxonomia de erros do domínio para códigos HTTP.
// Erros fora da taxonomia viram 500 com mensagem genérica; o detalhe fica
// só no log.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		logger.Error("Armazenamento indisponível", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Serviço temporariamente indisponível"})
	default:
		logger.Error("Erro não tratado", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
	}
}
