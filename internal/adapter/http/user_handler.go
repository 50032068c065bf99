package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/produflow/produflow-api/internal/app/auth"
	"github.com/produflow/produflow-api/internal/infra/middleware"
	"go.uber.org/zap"
)

// UserHandler implementa os endpoints de autenticação e contas
type UserHandler struct {
	authService *auth.AuthService
	logger      *zap.Logger
}

// NewUserHandler cria um novo handler de usuários
func NewUserHandler(authService *auth.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

// Login autentica por email e senha e devolve um token JWT
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		// Falha de login é sempre 401, sem detalhar o motivo
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Register cria uma nova conta. Sem autenticação a conta nasce como
// membro; admins podem definir o papel.
func (h *UserHandler) Register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Me retorna o usuário autenticado
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// ListMembros lista os usuários ativos para o seletor de responsável
func (h *UserHandler) ListMembros(c *gin.Context) {
	membros, err := h.authService.ListMembros(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, membros)
}

type ativoRequest struct {
	Ativo *bool `json:"ativo" binding:"required"`
}

// SetAtivo ativa ou desativa uma conta (restrito a admins)
func (h *UserHandler) SetAtivo(c *gin.Context) {
	var req ativoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	if err := h.authService.SetAtivo(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), *req.Ativo); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conta atualizada com sucesso"})
}
