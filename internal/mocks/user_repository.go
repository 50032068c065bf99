package mocks

import (
	"context"

	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository é um mock para o repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByCredentials(ctx context.Context, email, senha string) (*model.User, error) {
	args := m.Called(ctx, email, senha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.UserEntity) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListActive(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) SetAtivo(ctx context.Context, id string, ativo bool) error {
	args := m.Called(ctx, id, ativo)
	return args.Error(0)
}
