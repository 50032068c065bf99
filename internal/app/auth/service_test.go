package auth_test

import (
	"errors"
	"testing"

	"github.com/produflow/produflow-api/internal/app/auth"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/mocks"
	"github.com/produflow/produflow-api/internal/testutils"
	apperrors "github.com/produflow/produflow-api/pkg/errors"
	"github.com/produflow/produflow-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("segredo-de-teste-com-32-bytes-ok!")

func newService(t *testing.T, userRepo *mocks.MockUserRepository) *auth.AuthService {
	t.Helper()
	logger := testutils.TestLogger(t)

	keyManager, err := security.NewKeyManagerWithSecret(testSecret, logger)
	require.NoError(t, err)

	return auth.NewAuthService(keyManager, userRepo, logger)
}

func TestAuthService_Login(t *testing.T) {
	t.Run("emite token e retorna o usuário", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		ana := &model.User{ID: "u1", Nome: "Ana", Email: "ana@produflow.test", Papel: model.PapelGestor, Ativo: true}
		mockUsers.On("GetByCredentials", mock.Anything, "ana@produflow.test", "senha").
			Return(ana, nil).Once()

		result, err := service.Login(ctx, "ana@produflow.test", "senha")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, ana, result.User)

		// O token emitido valida de volta para o mesmo usuário
		mockUsers.On("GetByID", mock.Anything, "u1").Return(ana, nil).Once()
		validado, err := service.ValidateToken(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", validado.ID)
	})

	t.Run("credenciais inválidas", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockUsers.On("GetByCredentials", mock.Anything, "ana@produflow.test", "errada").
			Return(nil, errors.New("senha inválida")).Once()

		_, err := service.Login(ctx, "ana@produflow.test", "errada")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	t.Run("token adulterado", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.ValidateToken(ctx, "nao-e-um-token")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("usuário desativado após emissão", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		ana := &model.User{ID: "u1", Papel: model.PapelMembro, Ativo: true}
		mockUsers.On("GetByCredentials", mock.Anything, "ana@produflow.test", "senha").
			Return(ana, nil).Once()

		result, err := service.Login(ctx, "ana@produflow.test", "senha")
		require.NoError(t, err)

		desativada := &model.User{ID: "u1", Papel: model.PapelMembro, Ativo: false}
		mockUsers.On("GetByID", mock.Anything, "u1").Return(desativada, nil).Once()

		_, err = service.ValidateToken(ctx, result.Token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("auto-registro vira membro", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		var criado *model.UserEntity
		mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
			Run(func(args mock.Arguments) {
				criado = args.Get(1).(*model.UserEntity)
			}).
			Return(nil).Once()

		user, err := service.Register(ctx, nil, auth.RegisterInput{
			Nome:  "Bruno",
			Email: "Bruno@Produflow.Test",
			Senha: "senha-longa",
		})
		require.NoError(t, err)

		assert.Equal(t, model.PapelMembro, user.Papel)
		assert.Equal(t, "bruno@produflow.test", user.Email, "email é normalizado")
		require.NotNil(t, criado)
		assert.NotEqual(t, "senha-longa", criado.Senha, "senha é armazenada com hash")
	})

	t.Run("apenas admin define papel", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		gestor := &model.User{ID: "g1", Papel: model.PapelGestor, Ativo: true}
		_, err := service.Register(ctx, gestor, auth.RegisterInput{
			Nome:  "Carla",
			Email: "carla@produflow.test",
			Senha: "senha-longa",
			Papel: model.PapelGestor,
		})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("admin cria gestor", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
			Return(nil).Once()

		admin := &model.User{ID: "a1", Papel: model.PapelAdmin, Ativo: true}
		user, err := service.Register(ctx, admin, auth.RegisterInput{
			Nome:  "Carla",
			Email: "carla@produflow.test",
			Senha: "senha-longa",
			Papel: model.PapelGestor,
		})
		require.NoError(t, err)
		assert.Equal(t, model.PapelGestor, user.Papel)
	})

	t.Run("papel desconhecido", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		admin := &model.User{ID: "a1", Papel: model.PapelAdmin, Ativo: true}
		_, err := service.Register(ctx, admin, auth.RegisterInput{
			Nome:  "Davi",
			Email: "davi@produflow.test",
			Senha: "senha-longa",
			Papel: "root",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestAuthService_SetAtivo(t *testing.T) {
	t.Run("admin não desativa a própria conta", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		admin := &model.User{ID: "a1", Papel: model.PapelAdmin, Ativo: true}
		err := service.SetAtivo(ctx, admin, "a1", false)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("não-admin não gerencia contas", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		service := newService(t, mockUsers)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		gestor := &model.User{ID: "g1", Papel: model.PapelGestor, Ativo: true}
		err := service.SetAtivo(ctx, gestor, "u2", false)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
