package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProjetoRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProjetoRepository(db *gorm.DB, logger *zap.Logger) *ProjetoRepository {
	return &ProjetoRepository{db: db, logger: logger}
}

// List retorna os projetos que satisfazem os filtros informados. Filtros
// vazios são ignorados; os presentes combinam com AND. A busca textual é
// insensível a maiúsculas e cobre título, descrição e cliente.
func (r *ProjetoRepository) List(ctx context.Context, filtros model.FiltrosProjeto) ([]*model.ProjetoEntity, error) {
	query := r.db.WithContext(ctx).Model(&model.ProjetoEntity{})

	if filtros.Status != "" {
		query = query.Where("status = ?", filtros.Status)
	}
	if filtros.ResponsavelID != "" {
		query = query.Where("responsavel_id = ?", filtros.ResponsavelID)
	}
	if filtros.TipoVideoID != "" {
		query = query.Where("tipo_video_id = ?", filtros.TipoVideoID)
	}
	if filtros.Prioridade != "" {
		query = query.Where("prioridade = ?", filtros.Prioridade)
	}
	if filtros.Search != "" {
		termo := "%" + strings.ToLower(filtros.Search) + "%"
		query = query.Where(
			"LOWER(titulo) LIKE ? OR LOWER(descricao) LIKE ? OR LOWER(cliente) LIKE ?",
			termo, termo, termo)
	}

	var projetos []*model.ProjetoEntity
	err := query.
		Preload("Responsavel").
		Preload("TipoVideo").
		Order("data_criacao desc").
		Find(&projetos).Error
	if err != nil {
		return nil, fmt.Errorf("falha ao listar projetos: %w", err)
	}

	return projetos, nil
}

func (r *ProjetoRepository) GetByID(ctx context.Context, id string) (*model.ProjetoEntity, error) {
	var projeto model.ProjetoEntity
	err := r.db.WithContext(ctx).
		Preload("Responsavel").
		Preload("TipoVideo").
		Where("id = ?", id).
		First(&projeto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProjetoNotFound
		}
		return nil, fmt.Errorf("falha ao buscar projeto: %w", err)
	}

	return &projeto, nil
}

func (r *ProjetoRepository) Create(ctx context.Context, projeto *model.ProjetoEntity) error {
	if err := r.db.WithContext(ctx).Create(projeto).Error; err != nil {
		return fmt.Errorf("falha ao criar projeto: %w", err)
	}

	r.logger.Info("Projeto criado",
		zap.String("id", projeto.ID),
		zap.String("titulo", projeto.Titulo))
	return nil
}

func (r *ProjetoRepository) Update(ctx context.Context, projeto *model.ProjetoEntity) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProjetoEntity{}).
		Where("id = ?", projeto.ID).
		Select("Titulo", "Descricao", "Cliente", "ResponsavelID", "TipoVideoID",
			"Tags", "Prioridade", "DataPrevistaEntrega", "DataAprovacao", "LinkVideo").
		Updates(projeto)
	if result.Error != nil {
		return fmt.Errorf("falha ao atualizar projeto: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrProjetoNotFound
	}
	return nil
}

// Transition grava o novo status do projeto junto com o registro de
// auditoria. As duas escritas são atômicas: ou ambas persistem, ou nenhuma.
func (r *ProjetoRepository) Transition(ctx context.Context, projeto *model.ProjetoEntity, log *model.LogStatusEntity) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ProjetoEntity{}).
			Where("id = ?", projeto.ID).
			Select("Status", "DataAprovacao", "LinkVideo").
			Updates(projeto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrProjetoNotFound
		}

		return tx.Create(log).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrProjetoNotFound) {
			return err
		}
		return fmt.Errorf("falha ao registrar transição: %w", err)
	}

	r.logger.Info("Status do projeto alterado",
		zap.String("projeto_id", projeto.ID),
		zap.String("status_anterior", string(log.StatusAnterior)),
		zap.String("status_novo", string(log.StatusNovo)))
	return nil
}

// Delete remove o projeto e todo o seu histórico de status na mesma
// transação.
func (r *ProjetoRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("projeto_id = ?", id).Delete(&model.LogStatusEntity{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.ProjetoEntity{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrProjetoNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProjetoNotFound) {
			return err
		}
		return fmt.Errorf("falha ao remover projeto: %w", err)
	}

	r.logger.Info("Projeto removido", zap.String("id", id))
	return nil
}

// ListLogs retorna o histórico de status do projeto, do mais recente para
// o mais antigo.
func (r *ProjetoRepository) ListLogs(ctx context.Context, projetoID string) ([]*model.LogStatusEntity, error) {
	var logs []*model.LogStatusEntity
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("projeto_id = ?", projetoID).
		Order("data_hora desc").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("falha ao listar histórico: %w", err)
	}

	return logs, nil
}
