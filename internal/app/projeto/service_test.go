package projeto_test

import (
	"errors"
	"testing"
	"time"

	"github.com/produflow/produflow-api/internal/app/projeto"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/mocks"
	"github.com/produflow/produflow-api/internal/testutils"
	apperrors "github.com/produflow/produflow-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func admin() *model.User {
	return &model.User{ID: "admin-1", Nome: "Ana", Papel: model.PapelAdmin, Ativo: true}
}

func membro(id string) *model.User {
	return &model.User{ID: id, Nome: "Bruno", Papel: model.PapelMembro, Ativo: true}
}

func TestService_Create(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("projeto nasce em Briefing", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		criador := membro("m1")
		mockUsers.On("GetByID", mock.Anything, "m1").Return(criador, nil).Once()

		var criado *model.ProjetoEntity
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ProjetoEntity")).
			Run(func(args mock.Arguments) {
				criado = args.Get(1).(*model.ProjetoEntity)
			}).
			Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, mock.AnythingOfType("string")).
			Return(&model.ProjetoEntity{ID: "novo"}, nil).Once()

		_, err := service.Create(ctx, criador, projeto.CreateInput{Titulo: "Vídeo institucional"})
		require.NoError(t, err)

		require.NotNil(t, criado)
		assert.Equal(t, model.StatusBriefing, criado.Status)
		assert.Equal(t, "m1", criado.ResponsavelID, "criador assume a responsabilidade quando não informada")
		assert.Equal(t, model.PrioridadeMedia, criado.Prioridade)
		assert.NotEmpty(t, criado.ID)

		mockRepo.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
	})

	t.Run("título obrigatório", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Create(ctx, membro("m1"), projeto.CreateInput{Titulo: "   "})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("responsável inexistente", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockUsers.On("GetByID", mock.Anything, "fantasma").
			Return(nil, errors.New("não encontrado")).Once()

		_, err := service.Create(ctx, membro("m1"), projeto.CreateInput{
			Titulo:        "Teste",
			ResponsavelID: "fantasma",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("anônimo não cria projeto", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Create(ctx, nil, projeto.CreateInput{Titulo: "Teste"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestService_Transition(t *testing.T) {
	logger := testutils.TestLogger(t)

	setup := func(t *testing.T, atual model.Status, responsavelID string) (*projeto.Service, *mocks.MockProjetoRepository) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		mockRepo.On("GetByID", mock.Anything, "p1").
			Return(&model.ProjetoEntity{ID: "p1", Titulo: "Teste", Status: atual, ResponsavelID: responsavelID}, nil)

		return service, mockRepo
	}

	t.Run("transição válida grava log na mesma chamada", func(t *testing.T) {
		service, mockRepo := setup(t, model.StatusEdicao, "m1")
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		var gravado *model.LogStatusEntity
		mockRepo.On("Transition", mock.Anything, mock.AnythingOfType("*model.ProjetoEntity"), mock.AnythingOfType("*model.LogStatusEntity")).
			Run(func(args mock.Arguments) {
				gravado = args.Get(2).(*model.LogStatusEntity)
			}).
			Return(nil).Once()

		_, err := service.Transition(ctx, admin(), "p1", projeto.TransitionInput{Status: model.StatusEntrega})
		require.NoError(t, err)

		require.NotNil(t, gravado)
		assert.Equal(t, "p1", gravado.ProjetoID)
		assert.Equal(t, model.StatusEdicao, gravado.StatusAnterior)
		assert.Equal(t, model.StatusEntrega, gravado.StatusNovo)
		assert.Equal(t, "admin-1", gravado.UsuarioID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("entrar em Aprovado carimba a data de aprovação", func(t *testing.T) {
		service, mockRepo := setup(t, model.StatusAguardandoAprovacao, "m1")
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		var aprovado *model.ProjetoEntity
		mockRepo.On("Transition", mock.Anything, mock.AnythingOfType("*model.ProjetoEntity"), mock.AnythingOfType("*model.LogStatusEntity")).
			Run(func(args mock.Arguments) {
				aprovado = args.Get(1).(*model.ProjetoEntity)
			}).
			Return(nil).Once()

		_, err := service.Transition(ctx, admin(), "p1", projeto.TransitionInput{
			Status:    model.StatusAprovado,
			LinkVideo: "https://videos.example.com/final.mp4",
		})
		require.NoError(t, err)

		require.NotNil(t, aprovado)
		require.NotNil(t, aprovado.DataAprovacao)
		assert.WithinDuration(t, time.Now(), *aprovado.DataAprovacao, 5*time.Second)
		assert.Equal(t, "https://videos.example.com/final.mp4", aprovado.LinkVideo)
	})

	t.Run("status terminal não tem saída", func(t *testing.T) {
		service, mockRepo := setup(t, model.StatusAprovado, "m1")
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Transition(ctx, admin(), "p1", projeto.TransitionInput{Status: model.StatusRevisao})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		mockRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("mesmo status é rejeitado", func(t *testing.T) {
		service, mockRepo := setup(t, model.StatusRoteiro, "m1")
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Transition(ctx, admin(), "p1", projeto.TransitionInput{Status: model.StatusRoteiro})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		mockRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status desconhecido é rejeitado", func(t *testing.T) {
		service, mockRepo := setup(t, model.StatusRoteiro, "m1")
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Transition(ctx, admin(), "p1", projeto.TransitionInput{Status: "Arquivado"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		mockRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("membro que não é responsável não transiciona", func(t *testing.T) {
		service, _ := setup(t, model.StatusEdicao, "outro")
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Transition(ctx, membro("m1"), "p1", projeto.TransitionInput{Status: model.StatusEntrega})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("link de vídeo fora de Aprovado é rejeitado", func(t *testing.T) {
		service, _ := setup(t, model.StatusEdicao, "m1")
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Transition(ctx, admin(), "p1", projeto.TransitionInput{
			Status:    model.StatusEntrega,
			LinkVideo: "https://videos.example.com/rascunho.mp4",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("link de vídeo malformado é rejeitado sem gravar nada", func(t *testing.T) {
		service, mockRepo := setup(t, model.StatusAguardandoAprovacao, "m1")
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		for _, link := range []string{"not a url at all ;;;", "ftp://videos.example.com/final.mp4", "/final.mp4"} {
			_, err := service.Transition(ctx, admin(), "p1", projeto.TransitionInput{
				Status:    model.StatusAprovado,
				LinkVideo: link,
			})
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "link %q", link)
		}
		mockRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Metricas(t *testing.T) {
	logger := testutils.TestLogger(t)

	atras := func(dias int) *time.Time {
		d := time.Now().AddDate(0, 0, -dias)
		return &d
	}

	t.Run("taxa de conclusão e agrupamentos", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		ana := &model.UserEntity{ID: "u1", Nome: "Ana"}
		tipo := &model.TipoVideoEntity{ID: "t1", Nome: "Institucional"}

		projetos := []*model.ProjetoEntity{
			{ID: "1", Status: model.StatusEdicao, Responsavel: ana, TipoVideo: tipo},
			{ID: "2", Status: model.StatusEdicao, Responsavel: ana},
			{ID: "3", Status: model.StatusEdicao, DataPrevistaEntrega: atras(2)},
			{ID: "4", Status: model.StatusAprovado, Cliente: "Acme"},
			{ID: "5", Status: model.StatusAprovado, Cliente: "Acme"},
		}

		mockRepo.On("List", mock.Anything, model.FiltrosProjeto{}).Return(projetos, nil).Once()

		m, err := service.Metricas(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(3), m.TotalProjetos, "aprovados ficam fora do total")
		assert.Equal(t, int64(2), m.ProjetosAprovados)
		assert.Equal(t, int64(3), m.ProjetosAtivos)
		assert.Equal(t, int64(1), m.ProjetosAtrasados)
		assert.Equal(t, 40, m.TaxaConclusao, "2 aprovados sobre 5 no pipeline")
		assert.Equal(t, 2, m.MembrosAtivos, "Ana e o agrupamento sem responsável")

		assert.Equal(t, int64(3), m.ProjetosPorStatus[model.StatusEdicao])
		assert.Equal(t, int64(2), m.ProjetosPorStatus[model.StatusAprovado])
		assert.Equal(t, int64(2), m.ProjetosPorResponsavel["Ana"])
		assert.Equal(t, int64(3), m.ProjetosPorResponsavel[model.SemResponsavel])
		assert.Equal(t, int64(1), m.ProjetosPorTipo["Institucional"])
		assert.Equal(t, int64(4), m.ProjetosPorTipo[model.SemTipo])
		assert.Equal(t, int64(2), m.VideosPorCliente["Acme"])
	})

	t.Run("cancelados contam no total, não como ativos", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		projetos := []*model.ProjetoEntity{
			{ID: "1", Status: model.StatusBriefing},
			{ID: "2", Status: model.StatusCancelado, DataPrevistaEntrega: atras(10)},
		}

		mockRepo.On("List", mock.Anything, model.FiltrosProjeto{}).Return(projetos, nil).Once()

		m, err := service.Metricas(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(2), m.TotalProjetos)
		assert.Equal(t, int64(1), m.ProjetosAtivos)
		assert.Equal(t, int64(0), m.ProjetosAtrasados, "cancelado atrasado não conta")
		assert.Equal(t, 0, m.TaxaConclusao)
	})

	t.Run("sem projetos", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo.On("List", mock.Anything, model.FiltrosProjeto{}).
			Return([]*model.ProjetoEntity{}, nil).Once()

		m, err := service.Metricas(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(0), m.TotalProjetos)
		assert.Equal(t, 0, m.TaxaConclusao)
		assert.Equal(t, 0, m.MembrosAtivos)
		assert.Empty(t, m.ProjetosPorStatus)
	})
}

func TestService_Update(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("link de vídeo exige projeto aprovado", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo.On("GetByID", mock.Anything, "p1").
			Return(&model.ProjetoEntity{ID: "p1", Status: model.StatusEdicao, ResponsavelID: "m1"}, nil)

		link := "https://videos.example.com/final.mp4"
		_, err := service.Update(ctx, admin(), "p1", projeto.UpdateInput{LinkVideo: &link})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("link de vídeo malformado não é persistido", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo.On("GetByID", mock.Anything, "p1").
			Return(&model.ProjetoEntity{ID: "p1", Status: model.StatusAprovado, ResponsavelID: "m1"}, nil)

		link := "videos.example.com/final.mp4"
		_, err := service.Update(ctx, admin(), "p1", projeto.UpdateInput{LinkVideo: &link})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("prioridade desconhecida", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo.On("GetByID", mock.Anything, "p1").
			Return(&model.ProjetoEntity{ID: "p1", Status: model.StatusEdicao, ResponsavelID: "m1"}, nil)

		prioridade := "Urgente"
		_, err := service.Update(ctx, admin(), "p1", projeto.UpdateInput{Prioridade: &prioridade})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestService_Delete(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("membro que não é responsável não exclui", func(t *testing.T) {
		mockRepo := new(mocks.MockProjetoRepository)
		mockUsers := new(mocks.MockUserRepository)
		service := projeto.NewService(mockRepo, mockUsers, nil, logger)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo.On("GetByID", mock.Anything, "p1").
			Return(&model.ProjetoEntity{ID: "p1", ResponsavelID: "outro"}, nil)

		err := service.Delete(ctx, membro("m1"), "p1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
