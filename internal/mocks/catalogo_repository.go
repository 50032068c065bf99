package mocks

import (
	"context"

	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockCatalogoRepository é um mock para o repository.CatalogoRepository
type MockCatalogoRepository struct {
	mock.Mock
}

func (m *MockCatalogoRepository) ListTipos(ctx context.Context) ([]*model.TipoVideoEntity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TipoVideoEntity), args.Error(1)
}

func (m *MockCatalogoRepository) CreateTipo(ctx context.Context, tipo *model.TipoVideoEntity) error {
	args := m.Called(ctx, tipo)
	return args.Error(0)
}

func (m *MockCatalogoRepository) ListTags(ctx context.Context) ([]*model.TagEntity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TagEntity), args.Error(1)
}

func (m *MockCatalogoRepository) CreateTag(ctx context.Context, tag *model.TagEntity) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockCatalogoRepository) Seed(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
