package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/produflow/produflow-api/internal/app/auth"
	"github.com/produflow/produflow-api/internal/domain/model"
	"go.uber.org/zap"
)

// Chave do usuário autenticado no contexto do Gin
const userContextKey = "user"

// AuthMiddleware gerencia middlewares de autenticação
type AuthMiddleware struct {
	authService *auth.AuthService
	logger      *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(authService *auth.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Authenticate exige um token Bearer válido de um usuário ativo
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	tokenString, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token de autenticação não fornecido"})
		return
	}

	user, err := m.authService.ValidateToken(c.Request.Context(), tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

// AuthenticateOptional popula o usuário no contexto quando um token válido
// é enviado, mas deixa a requisição seguir anônima caso contrário. Usado no
// registro: anônimos criam contas de membro, admins definem o papel.
func (m *AuthMiddleware) AuthenticateOptional(c *gin.Context) {
	tokenString, ok := bearerToken(c)
	if !ok {
		c.Next()
		return
	}

	user, err := m.authService.ValidateToken(c.Request.Context(), tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

// RequireAdmin exige que o usuário autenticado seja administrador
func (m *AuthMiddleware) RequireAdmin(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Autenticação necessária"})
		return
	}
	if user.Papel != model.PapelAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso restrito a administradores"})
		return
	}
	c.Next()
}

// CurrentUser retorna o usuário autenticado da requisição, ou nil
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}
	return tokenString, true
}
