package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/domain/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// GetByCredentials busca o usuário pelo email e verifica a senha.
// Usuários desativados não conseguem autenticar.
func (r *UserRepository) GetByCredentials(ctx context.Context, email, senha string) (*model.User, error) {
	var user model.UserEntity

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário: %w", result.Error)
	}

	if !user.Ativo {
		return nil, errors.New("usuário desativado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(senha)); err != nil {
		return nil, errors.New("senha inválida")
	}

	return user.Public(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.UserEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	return user.Public(), nil
}

// Create insere um novo usuário. A senha já deve chegar com hash aplicado.
func (r *UserRepository) Create(ctx context.Context, user *model.UserEntity) error {
	var count int64
	r.db.WithContext(ctx).Model(&model.UserEntity{}).Where("email = ?", user.Email).Count(&count)
	if count > 0 {
		return repository.ErrDuplicado
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("falha ao criar usuário: %w", err)
	}

	r.logger.Info("Usuário criado",
		zap.String("id", user.ID),
		zap.String("email", user.Email),
		zap.String("papel", user.Papel))
	return nil
}

// ListActive retorna os usuários ativos ordenados por nome
func (r *UserRepository) ListActive(ctx context.Context) ([]*model.User, error) {
	var entities []model.UserEntity
	if err := r.db.WithContext(ctx).Where("ativo = ?", true).Order("nome asc").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}

	users := make([]*model.User, 0, len(entities))
	for i := range entities {
		users = append(users, entities[i].Public())
	}
	return users, nil
}

// SetAtivo ativa ou desativa um usuário (nunca há remoção física)
func (r *UserRepository) SetAtivo(ctx context.Context, id string, ativo bool) error {
	result := r.db.WithContext(ctx).Model(&model.UserEntity{}).Where("id = ?", id).Update("ativo", ativo)
	if result.Error != nil {
		return fmt.Errorf("falha ao atualizar usuário: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}
