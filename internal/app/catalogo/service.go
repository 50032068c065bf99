package catalogo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/domain/policy"
	"github.com/produflow/produflow-api/internal/domain/repository"
	"github.com/produflow/produflow-api/pkg/cache"
	apperrors "github.com/produflow/produflow-api/pkg/errors"
	"go.uber.org/zap"
)

const (
	cacheKeyTipos = "catalogo:tipos"
	cacheKeyTags  = "catalogo:tags"
	cacheTTL      = 5 * time.Minute
)

// Service expõe o catálogo de tipos de vídeo e tags. O catálogo muda
// raramente e é lido em toda tela de criação de projeto, então as
// listagens passam por cache com invalidação na escrita.
type Service struct {
	repo   repository.CatalogoRepository
	cache  cache.Cache
	logger *zap.Logger
}

func NewService(repo repository.CatalogoRepository, cache cache.Cache, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListTipos retorna os tipos de vídeo em ordem alfabética
func (s *Service) ListTipos(ctx context.Context) ([]*model.TipoVideoEntity, error) {
	var tipos []*model.TipoVideoEntity

	found, err := s.cache.Get(ctx, cacheKeyTipos, &tipos)
	if err != nil {
		s.logger.Warn("Erro ao buscar tipos do cache", zap.Error(err))
	} else if found {
		return tipos, nil
	}

	tipos, err = s.repo.ListTipos(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyTipos, tipos, cacheTTL); err != nil {
		s.logger.Warn("Erro ao armazenar tipos no cache", zap.Error(err))
	}

	return tipos, nil
}

// CreateTipo adiciona um tipo de vídeo ao catálogo e invalida o cache
func (s *Service) CreateTipo(ctx context.Context, usuario *model.User, nome string) (*model.TipoVideoEntity, error) {
	if !policy.PodeGerirCatalogo(usuario) {
		return nil, fmt.Errorf("gestão do catálogo: %w", apperrors.ErrUnauthorized)
	}

	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", apperrors.ErrValidation)
	}

	tipo := &model.TipoVideoEntity{ID: uuid.NewString(), Nome: nome}
	if err := s.repo.CreateTipo(ctx, tipo); err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, fmt.Errorf("tipo %q já existe: %w", nome, apperrors.ErrValidation)
		}
		return nil, err
	}

	if err := s.cache.Delete(ctx, cacheKeyTipos); err != nil {
		s.logger.Warn("Erro ao invalidar cache de tipos", zap.Error(err))
	}

	return tipo, nil
}

// ListTags retorna as tags em ordem alfabética
func (s *Service) ListTags(ctx context.Context) ([]*model.TagEntity, error) {
	var tags []*model.TagEntity

	found, err := s.cache.Get(ctx, cacheKeyTags, &tags)
	if err != nil {
		s.logger.Warn("Erro ao buscar tags do cache", zap.Error(err))
	} else if found {
		return tags, nil
	}

	tags, err = s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyTags, tags, cacheTTL); err != nil {
		s.logger.Warn("Erro ao armazenar tags no cache", zap.Error(err))
	}

	return tags, nil
}

// CreateTag adiciona uma tag ao catálogo e invalida o cache
func (s *Service) CreateTag(ctx context.Context, usuario *model.User, nome string) (*model.TagEntity, error) {
	if !policy.PodeGerirCatalogo(usuario) {
		return nil, fmt.Errorf("gestão do catálogo: %w", apperrors.ErrUnauthorized)
	}

	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", apperrors.ErrValidation)
	}

	tag := &model.TagEntity{ID: uuid.NewString(), Nome: nome}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, fmt.Errorf("tag %q já existe: %w", nome, apperrors.ErrValidation)
		}
		return nil, err
	}

	if err := s.cache.Delete(ctx, cacheKeyTags); err != nil {
		s.logger.Warn("Erro ao invalidar cache de tags", zap.Error(err))
	}

	return tag, nil
}

// Seed garante os registros iniciais do catálogo. Roda em toda subida do
// serviço; duplicados são ignorados.
func (s *Service) Seed(ctx context.Context) error {
	return s.repo.Seed(ctx)
}
