package mocks

import (
	"context"

	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockProjetoRepository é um mock para o repository.ProjetoRepository
type MockProjetoRepository struct {
	mock.Mock
}

func (m *MockProjetoRepository) List(ctx context.Context, filtros model.FiltrosProjeto) ([]*model.ProjetoEntity, error) {
	args := m.Called(ctx, filtros)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ProjetoEntity), args.Error(1)
}

func (m *MockProjetoRepository) GetByID(ctx context.Context, id string) (*model.ProjetoEntity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjetoEntity), args.Error(1)
}

func (m *MockProjetoRepository) Create(ctx context.Context, projeto *model.ProjetoEntity) error {
	args := m.Called(ctx, projeto)
	return args.Error(0)
}

func (m *MockProjetoRepository) Update(ctx context.Context, projeto *model.ProjetoEntity) error {
	args := m.Called(ctx, projeto)
	return args.Error(0)
}

func (m *MockProjetoRepository) Transition(ctx context.Context, projeto *model.ProjetoEntity, log *model.LogStatusEntity) error {
	args := m.Called(ctx, projeto, log)
	return args.Error(0)
}

func (m *MockProjetoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjetoRepository) ListLogs(ctx context.Context, projetoID string) ([]*model.LogStatusEntity, error) {
	args := m.Called(ctx, projetoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LogStatusEntity), args.Error(1)
}
