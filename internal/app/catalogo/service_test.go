package catalogo_test

import (
	"testing"
	"time"

	"github.com/produflow/produflow-api/internal/app/catalogo"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/domain/repository"
	"github.com/produflow/produflow-api/internal/mocks"
	"github.com/produflow/produflow-api/internal/testutils"
	apperrors "github.com/produflow/produflow-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogoService_ListTipos(t *testing.T) {
	t.Run("cache hit não consulta o banco", func(t *testing.T) {
		mockRepo := new(mocks.MockCatalogoRepository)
		mockCache := new(mocks.MockCache)
		service := catalogo.NewService(mockRepo, mockCache, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockCache.On("Get", mock.Anything, "catalogo:tipos", mock.Anything).
			Return(true, nil, func(dest interface{}) {
				tipos := dest.(*[]*model.TipoVideoEntity)
				*tipos = []*model.TipoVideoEntity{{ID: "t1", Nome: "Tutorial"}}
			}).Once()

		tipos, err := service.ListTipos(ctx)
		require.NoError(t, err)
		require.Len(t, tipos, 1)
		assert.Equal(t, "Tutorial", tipos[0].Nome)
		mockRepo.AssertNotCalled(t, "ListTipos")
	})

	t.Run("cache miss consulta e popula", func(t *testing.T) {
		mockRepo := new(mocks.MockCatalogoRepository)
		mockCache := new(mocks.MockCache)
		service := catalogo.NewService(mockRepo, mockCache, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		tipos := []*model.TipoVideoEntity{{ID: "t1", Nome: "Comercial"}}
		mockCache.On("Get", mock.Anything, "catalogo:tipos", mock.Anything).
			Return(false, nil).Once()
		mockRepo.On("ListTipos", mock.Anything).Return(tipos, nil).Once()
		mockCache.On("Set", mock.Anything, "catalogo:tipos", tipos, 5*time.Minute).
			Return(nil).Once()

		result, err := service.ListTipos(ctx)
		require.NoError(t, err)
		assert.Equal(t, tipos, result)
		mockCache.AssertExpectations(t)
	})
}

func TestCatalogoService_CreateTipo(t *testing.T) {
	gestor := &model.User{ID: "g1", Papel: model.PapelGestor, Ativo: true}

	t.Run("cria e invalida o cache", func(t *testing.T) {
		mockRepo := new(mocks.MockCatalogoRepository)
		mockCache := new(mocks.MockCache)
		service := catalogo.NewService(mockRepo, mockCache, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo.On("CreateTipo", mock.Anything, mock.AnythingOfType("*model.TipoVideoEntity")).
			Return(nil).Once()
		mockCache.On("Delete", mock.Anything, "catalogo:tipos").Return(nil).Once()

		tipo, err := service.CreateTipo(ctx, gestor, "  Documentário  ")
		require.NoError(t, err)
		assert.Equal(t, "Documentário", tipo.Nome, "nome é normalizado")
		assert.NotEmpty(t, tipo.ID)
		mockCache.AssertExpectations(t)
	})

	t.Run("membro não gerencia o catálogo", func(t *testing.T) {
		mockRepo := new(mocks.MockCatalogoRepository)
		mockCache := new(mocks.MockCache)
		service := catalogo.NewService(mockRepo, mockCache, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		membro := &model.User{ID: "m1", Papel: model.PapelMembro, Ativo: true}
		_, err := service.CreateTipo(ctx, membro, "Documentário")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		mockRepo.AssertNotCalled(t, "CreateTipo")
	})

	t.Run("nome duplicado", func(t *testing.T) {
		mockRepo := new(mocks.MockCatalogoRepository)
		mockCache := new(mocks.MockCache)
		service := catalogo.NewService(mockRepo, mockCache, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo.On("CreateTipo", mock.Anything, mock.AnythingOfType("*model.TipoVideoEntity")).
			Return(repository.ErrDuplicado).Once()

		_, err := service.CreateTipo(ctx, gestor, "Tutorial")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockCache.AssertNotCalled(t, "Delete")
	})

	t.Run("nome vazio", func(t *testing.T) {
		mockRepo := new(mocks.MockCatalogoRepository)
		mockCache := new(mocks.MockCache)
		service := catalogo.NewService(mockRepo, mockCache, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.CreateTipo(ctx, gestor, "   ")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestCatalogoService_CreateTag(t *testing.T) {
	admin := &model.User{ID: "a1", Papel: model.PapelAdmin, Ativo: true}

	mockRepo := new(mocks.MockCatalogoRepository)
	mockCache := new(mocks.MockCache)
	service := catalogo.NewService(mockRepo, mockCache, testutils.TestLogger(t))

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	mockRepo.On("CreateTag", mock.Anything, mock.AnythingOfType("*model.TagEntity")).
		Return(nil).Once()
	mockCache.On("Delete", mock.Anything, "catalogo:tags").Return(nil).Once()

	tag, err := service.CreateTag(ctx, admin, "Lançamento")
	require.NoError(t, err)
	assert.Equal(t, "Lançamento", tag.Nome)
	mockCache.AssertExpectations(t)
}
