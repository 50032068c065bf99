package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/domain/repository"
	apperrors "github.com/produflow/produflow-api/pkg/errors"
	"github.com/produflow/produflow-api/pkg/security"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService gerencia autenticação e contas de usuário
type AuthService struct {
	keyManager *security.KeyManager
	userRepo   repository.UserRepository
	logger     *zap.Logger
}

// NewAuthService cria um novo serviço de autenticação
func NewAuthService(keyManager *security.KeyManager, userRepo repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		keyManager: keyManager,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// LoginResult carrega o token emitido e o usuário autenticado
type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login autentica um usuário pelo email e gera um token JWT
func (s *AuthService) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	user, err := s.userRepo.GetByCredentials(ctx, email, senha)
	if err != nil {
		s.logger.Warn("Falha na autenticação", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("credenciais inválidas: %w", apperrors.ErrUnauthorized)
	}

	// Token com duração de 24 horas
	token, err := s.keyManager.GenerateToken(user.ID, user.Papel, 24*time.Hour)
	if err != nil {
		s.logger.Error("Falha ao gerar token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Login bem-sucedido", zap.String("user_id", user.ID))
	return &LoginResult{Token: token, User: user}, nil
}

// ValidateToken valida um token JWT e retorna o usuário correspondente.
// Tokens de usuários desativados deixam de valer imediatamente.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.keyManager.VerifyToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Warn("Usuário do token não encontrado", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, fmt.Errorf("usuário inválido: %w", apperrors.ErrUnauthorized)
	}

	if !user.Ativo {
		return nil, fmt.Errorf("usuário desativado: %w", apperrors.ErrUnauthorized)
	}

	return user, nil
}

// RegisterInput são os dados para criação de uma conta
type RegisterInput struct {
	Nome  string `json:"nome" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required,min=6"`
	Papel string `json:"papel"`
}

// Register cria uma nova conta. O papel só é honrado quando quem registra
// é um admin; auto-registro sempre resulta em membro.
func (s *AuthService) Register(ctx context.Context, ator *model.User, input RegisterInput) (*model.User, error) {
	papel := model.PapelMembro
	if input.Papel != "" {
		if !model.PapelValido(input.Papel) {
			return nil, fmt.Errorf("papel desconhecido %q: %w", input.Papel, apperrors.ErrValidation)
		}
		if ator == nil || ator.Papel != model.PapelAdmin {
			return nil, fmt.Errorf("apenas admins definem papéis: %w", apperrors.ErrUnauthorized)
		}
		papel = input.Papel
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("falha ao processar senha: %w", err)
	}

	entity := &model.UserEntity{
		ID:    uuid.NewString(),
		Nome:  strings.TrimSpace(input.Nome),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		Senha: string(hash),
		Papel: papel,
		Ativo: true,
	}

	if err := s.userRepo.Create(ctx, entity); err != nil {
		if err == repository.ErrDuplicado {
			return nil, fmt.Errorf("email já cadastrado: %w", apperrors.ErrValidation)
		}
		return nil, err
	}

	return entity.Public(), nil
}

// ListMembros retorna os usuários ativos, visíveis a qualquer autenticado
// para preencher o seletor de responsável.
func (s *AuthService) ListMembros(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.ListActive(ctx)
}

// SetAtivo ativa ou desativa uma conta. Restrito a admins; um admin não
// pode desativar a si mesmo.
func (s *AuthService) SetAtivo(ctx context.Context, ator *model.User, id string, ativo bool) error {
	if ator == nil || ator.Papel != model.PapelAdmin {
		return fmt.Errorf("apenas admins gerenciam contas: %w", apperrors.ErrUnauthorized)
	}
	if ator.ID == id && !ativo {
		return fmt.Errorf("não é possível desativar a própria conta: %w", apperrors.ErrValidation)
	}

	if err := s.userRepo.SetAtivo(ctx, id, ativo); err != nil {
		if err == repository.ErrUserNotFound {
			return fmt.Errorf("usuário %s: %w", id, apperrors.ErrNotFound)
		}
		return err
	}

	s.logger.Info("Situação da conta alterada",
		zap.String("user_id", id),
		zap.Bool("ativo", ativo),
		zap.String("ator", ator.ID))
	return nil
}
