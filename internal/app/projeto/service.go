package projeto

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/domain/policy"
	"github.com/produflow/produflow-api/internal/domain/repository"
	"github.com/produflow/produflow-api/internal/infra/metrics"
	apperrors "github.com/produflow/produflow-api/pkg/errors"
	"go.uber.org/zap"
)

// Service concentra o ciclo de vida dos projetos: criação, edição,
// transições de status com auditoria, exclusão e agregação de métricas.
type Service struct {
	repo     repository.ProjetoRepository
	userRepo repository.UserRepository
	metrics  *metrics.APIMetrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo repository.ProjetoRepository, userRepo repository.UserRepository, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		metrics:  apiMetrics,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateInput são os dados aceitos na criação de um projeto
type CreateInput struct {
	Titulo              string     `json:"titulo" binding:"required"`
	Descricao           string     `json:"descricao"`
	Cliente             string     `json:"cliente"`
	ResponsavelID       string     `json:"responsavel_id"`
	TipoVideoID         *string    `json:"tipo_video_id"`
	Tags                []string   `json:"tags"`
	Prioridade          string     `json:"prioridade"`
	DataPrevistaEntrega *time.Time `json:"data_prevista_entrega"`
}

// UpdateInput são os campos editáveis de um projeto. Ponteiros nulos
// significam "não alterar"; o status nunca muda por aqui.
type UpdateInput struct {
	Titulo              *string    `json:"titulo"`
	Descricao           *string    `json:"descricao"`
	Cliente             *string    `json:"cliente"`
	ResponsavelID       *string    `json:"responsavel_id"`
	TipoVideoID         *string    `json:"tipo_video_id"`
	Tags                *[]string  `json:"tags"`
	Prioridade          *string    `json:"prioridade"`
	DataPrevistaEntrega *time.Time `json:"data_prevista_entrega"`
	LinkVideo           *string    `json:"link_video"`
}

// TransitionInput descreve o pedido de mudança de status
type TransitionInput struct {
	Status    model.Status `json:"status" binding:"required"`
	LinkVideo string       `json:"link_video"`
}

// Create valida e persiste um novo projeto no status Briefing. Quando o
// responsável não é informado, o próprio criador assume o papel.
func (s *Service) Create(ctx context.Context, usuario *model.User, input CreateInput) (*model.ProjetoEntity, error) {
	if !policy.PodeCriarProjeto(usuario) {
		return nil, fmt.Errorf("criação de projeto: %w", apperrors.ErrUnauthorized)
	}

	titulo := strings.TrimSpace(input.Titulo)
	if titulo == "" {
		return nil, fmt.Errorf("título obrigatório: %w", apperrors.ErrValidation)
	}

	prioridade := input.Prioridade
	if prioridade == "" {
		prioridade = model.PrioridadeMedia
	}
	if !model.PrioridadeValida(prioridade) {
		return nil, fmt.Errorf("prioridade desconhecida %q: %w", prioridade, apperrors.ErrValidation)
	}

	responsavelID := input.ResponsavelID
	if responsavelID == "" {
		responsavelID = usuario.ID
	}
	if _, err := s.userRepo.GetByID(ctx, responsavelID); err != nil {
		return nil, fmt.Errorf("responsável %s: %w", responsavelID, apperrors.ErrValidation)
	}

	entity := &model.ProjetoEntity{
		ID:                  uuid.NewString(),
		Titulo:              titulo,
		Descricao:           input.Descricao,
		Cliente:             strings.TrimSpace(input.Cliente),
		ResponsavelID:       responsavelID,
		TipoVideoID:         input.TipoVideoID,
		Tags:                input.Tags,
		Prioridade:          prioridade,
		Status:              model.StatusBriefing,
		DataPrevistaEntrega: input.DataPrevistaEntrega,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, entity.ID)
}

// Get retorna um projeto pelo identificador
func (s *Service) Get(ctx context.Context, id string) (*model.ProjetoEntity, error) {
	projeto, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjetoNotFound) {
			return nil, fmt.Errorf("projeto %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return projeto, nil
}

// List retorna os projetos filtrados, sempre do mais recente para o mais
// antigo. Todos os usuários autenticados enxergam todos os projetos.
func (s *Service) List(ctx context.Context, filtros model.FiltrosProjeto) ([]*model.ProjetoEntity, error) {
	if filtros.Status != "" && !model.Status(filtros.Status).Valido() {
		return nil, fmt.Errorf("status desconhecido %q: %w", filtros.Status, apperrors.ErrValidation)
	}
	if filtros.Prioridade != "" && !model.PrioridadeValida(filtros.Prioridade) {
		return nil, fmt.Errorf("prioridade desconhecida %q: %w", filtros.Prioridade, apperrors.ErrValidation)
	}
	return s.repo.List(ctx, filtros)
}

// Update grava alterações de metadados. Mudança de status não passa por
// aqui: transições têm endpoint e auditoria próprios.
func (s *Service) Update(ctx context.Context, usuario *model.User, id string, input UpdateInput) (*model.ProjetoEntity, error) {
	projeto, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.PodeMutarProjeto(usuario, projeto) {
		return nil, fmt.Errorf("edição do projeto %s: %w", id, apperrors.ErrUnauthorized)
	}

	if input.Titulo != nil {
		titulo := strings.TrimSpace(*input.Titulo)
		if titulo == "" {
			return nil, fmt.Errorf("título obrigatório: %w", apperrors.ErrValidation)
		}
		projeto.Titulo = titulo
	}
	if input.Descricao != nil {
		projeto.Descricao = *input.Descricao
	}
	if input.Cliente != nil {
		projeto.Cliente = strings.TrimSpace(*input.Cliente)
	}
	if input.ResponsavelID != nil {
		if _, err := s.userRepo.GetByID(ctx, *input.ResponsavelID); err != nil {
			return nil, fmt.Errorf("responsável %s: %w", *input.ResponsavelID, apperrors.ErrValidation)
		}
		projeto.ResponsavelID = *input.ResponsavelID
	}
	if input.TipoVideoID != nil {
		if *input.TipoVideoID == "" {
			projeto.TipoVideoID = nil
		} else {
			projeto.TipoVideoID = input.TipoVideoID
		}
	}
	if input.Tags != nil {
		projeto.Tags = *input.Tags
	}
	if input.Prioridade != nil {
		if !model.PrioridadeValida(*input.Prioridade) {
			return nil, fmt.Errorf("prioridade desconhecida %q: %w", *input.Prioridade, apperrors.ErrValidation)
		}
		projeto.Prioridade = *input.Prioridade
	}
	if input.DataPrevistaEntrega != nil {
		projeto.DataPrevistaEntrega = input.DataPrevistaEntrega
	}
	if input.LinkVideo != nil {
		// Link final do vídeo só faz sentido em projeto aprovado
		if *input.LinkVideo != "" && projeto.Status != model.StatusAprovado {
			return nil, fmt.Errorf("link de vídeo exige projeto aprovado: %w", apperrors.ErrValidation)
		}
		if *input.LinkVideo != "" && !linkVideoValido(*input.LinkVideo) {
			return nil, fmt.Errorf("link de vídeo malformado %q: %w", *input.LinkVideo, apperrors.ErrValidation)
		}
		projeto.LinkVideo = *input.LinkVideo
	}

	if err := s.repo.Update(ctx, projeto); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// linkVideoValido aceita apenas URLs absolutas http/https com host.
func linkVideoValido(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Transition move o projeto para um novo status, registrando a mudança no
// histórico de auditoria dentro da mesma transação. Entrar em Aprovado
// carimba a data de aprovação; estados terminais não têm saída.
func (s *Service) Transition(ctx context.Context, usuario *model.User, id string, input TransitionInput) (*model.ProjetoEntity, error) {
	projeto, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.PodeMutarProjeto(usuario, projeto) {
		return nil, fmt.Errorf("transição do projeto %s: %w", id, apperrors.ErrUnauthorized)
	}

	destino := input.Status
	if !destino.Valido() {
		return nil, fmt.Errorf("status desconhecido %q: %w", destino, apperrors.ErrInvalidTransition)
	}
	if !projeto.Status.PodeTransicionar(destino) {
		return nil, fmt.Errorf("de %q para %q: %w", projeto.Status, destino, apperrors.ErrInvalidTransition)
	}

	if input.LinkVideo != "" {
		if destino != model.StatusAprovado {
			return nil, fmt.Errorf("link de vídeo exige projeto aprovado: %w", apperrors.ErrValidation)
		}
		if !linkVideoValido(input.LinkVideo) {
			return nil, fmt.Errorf("link de vídeo malformado %q: %w", input.LinkVideo, apperrors.ErrInvalidTransition)
		}
	}

	anterior := projeto.Status
	projeto.Status = destino

	if destino == model.StatusAprovado {
		agora := s.now()
		projeto.DataAprovacao = &agora
		if input.LinkVideo != "" {
			projeto.LinkVideo = input.LinkVideo
		}
	}

	log := &model.LogStatusEntity{
		ID:             uuid.NewString(),
		ProjetoID:      projeto.ID,
		StatusAnterior: anterior,
		StatusNovo:     destino,
		UsuarioID:      usuario.ID,
	}

	if err := s.repo.Transition(ctx, projeto, log); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.StatusTransition(string(destino))
	}
	s.logger.Info("Transição de status concluída",
		zap.String("projeto_id", projeto.ID),
		zap.String("de", string(anterior)),
		zap.String("para", string(destino)),
		zap.String("usuario_id", usuario.ID))

	return s.repo.GetByID(ctx, id)
}

// Delete exclui o projeto e seu histórico de status
func (s *Service) Delete(ctx context.Context, usuario *model.User, id string) error {
	projeto, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !policy.PodeMutarProjeto(usuario, projeto) {
		return fmt.Errorf("exclusão do projeto %s: %w", id, apperrors.ErrUnauthorized)
	}

	return s.repo.Delete(ctx, id)
}

// Historico retorna o registro de mudanças de status do projeto
func (s *Service) Historico(ctx context.Context, id string) ([]*model.LogStatusEntity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListLogs(ctx, id)
}

// Metricas calcula o retrato agregado dos projetos em uma única passagem
// sobre o conjunto corrente. Nenhum valor é cacheado: o painel sempre
// reflete o estado do banco no momento da chamada.
func (s *Service) Metricas(ctx context.Context) (*model.Metricas, error) {
	projetos, err := s.repo.List(ctx, model.FiltrosProjeto{})
	if err != nil {
		return nil, err
	}

	m := &model.Metricas{
		ProjetosPorStatus:      make(map[model.Status]int64),
		ProjetosPorResponsavel: make(map[string]int64),
		ProjetosPorTipo:        make(map[string]int64),
		VideosPorCliente:       make(map[string]int64),
	}

	agora := s.now()
	for _, p := range projetos {
		m.ProjetosPorStatus[p.Status]++

		responsavel := model.SemResponsavel
		if p.Responsavel != nil {
			responsavel = p.Responsavel.Nome
		}
		m.ProjetosPorResponsavel[responsavel]++

		tipo := model.SemTipo
		if p.TipoVideo != nil {
			tipo = p.TipoVideo.Nome
		}
		m.ProjetosPorTipo[tipo]++

		switch p.Status {
		case model.StatusAprovado:
			m.ProjetosAprovados++
			cliente := model.SemCliente
			if p.Cliente != "" {
				cliente = p.Cliente
			}
			m.VideosPorCliente[cliente]++
		case model.StatusCancelado:
			// cancelados entram no total, mas não como ativos nem atrasados
			m.TotalProjetos++
		default:
			m.TotalProjetos++
			m.ProjetosAtivos++
			if p.DataPrevistaEntrega != nil && p.DataPrevistaEntrega.Before(agora) {
				m.ProjetosAtrasados++
			}
		}
	}

	if m.TotalProjetos+m.ProjetosAprovados > 0 {
		taxa := float64(m.ProjetosAprovados) / float64(m.TotalProjetos+m.ProjetosAprovados) * 100
		m.TaxaConclusao = int(math.Round(taxa))
	}

	// Mesma derivação do painel: responsáveis distintos com projetos,
	// incluindo o agrupamento "Sem responsável" quando presente.
	m.MembrosAtivos = len(m.ProjetosPorResponsavel)

	return m, nil
}
