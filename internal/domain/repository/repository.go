package repository

import (
	"context"
	"errors"

	"github.com/produflow/produflow-api/internal/domain/model"
)

var (
	ErrProjetoNotFound = errors.New("projeto não encontrado")
	ErrUserNotFound    = errors.New("usuário não encontrado")
	ErrDuplicado       = errors.New("registro já existe")
)

// ProjetoRepository define a interface para armazenamento de projetos
type ProjetoRepository interface {
	// List retorna os projetos que satisfazem os filtros, ordenados por
	// data de criação decrescente, com Responsavel e TipoVideo carregados
	List(ctx context.Context, filtros model.FiltrosProjeto) ([]*model.ProjetoEntity, error)

	// GetByID obtém um projeto com as relações carregadas
	GetByID(ctx context.Context, id string) (*model.ProjetoEntity, error)

	// Create insere um novo projeto
	Create(ctx context.Context, projeto *model.ProjetoEntity) error

	// Update grava campos alterados de um projeto existente
	Update(ctx context.Context, projeto *model.ProjetoEntity) error

	// Transition grava o novo status do projeto e anexa o registro de
	// auditoria na mesma transação
	Transition(ctx context.Context, projeto *model.ProjetoEntity, log *model.LogStatusEntity) error

	// Delete remove o projeto e todo o seu histórico de status
	Delete(ctx context.Context, id string) error

	// ListLogs retorna o histórico de status por data decrescente
	ListLogs(ctx context.Context, projetoID string) ([]*model.LogStatusEntity, error)
}

// UserRepository define a interface para acesso a dados de usuário
type UserRepository interface {
	GetByCredentials(ctx context.Context, email, senha string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.UserEntity) error
	ListActive(ctx context.Context) ([]*model.User, error)
	SetAtivo(ctx context.Context, id string, ativo bool) error
}

// CatalogoRepository define a interface para tipos de vídeo e tags
type CatalogoRepository interface {
	ListTipos(ctx context.Context) ([]*model.TipoVideoEntity, error)
	CreateTipo(ctx context.Context, tipo *model.TipoVideoEntity) error
	ListTags(ctx context.Context) ([]*model.TagEntity, error)
	CreateTag(ctx context.Context, tag *model.TagEntity) error

	// Seed insere os registros iniciais do catálogo, ignorando duplicados
	Seed(ctx context.Context) error
}
