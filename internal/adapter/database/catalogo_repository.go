package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Registros iniciais do catálogo, criados na primeira subida do serviço.
var (
	tiposIniciais = []string{"Institucional", "Comercial", "Tutorial", "Evento", "Webinar"}
	tagsIniciais  = []string{"Marketing", "Vendas", "Educação", "Produto", "Evento", "Tech", "Q1", "Promo"}
)

type CatalogoRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCatalogoRepository(db *gorm.DB, logger *zap.Logger) *CatalogoRepository {
	return &CatalogoRepository{db: db, logger: logger}
}

func (r *CatalogoRepository) ListTipos(ctx context.Context) ([]*model.TipoVideoEntity, error) {
	var tipos []*model.TipoVideoEntity
	if err := r.db.WithContext(ctx).Order("nome asc").Find(&tipos).Error; err != nil {
		return nil, fmt.Errorf("falha ao listar tipos de vídeo: %w", err)
	}
	return tipos, nil
}

func (r *CatalogoRepository) CreateTipo(ctx context.Context, tipo *model.TipoVideoEntity) error {
	var count int64
	r.db.WithContext(ctx).Model(&model.TipoVideoEntity{}).Where("nome = ?", tipo.Nome).Count(&count)
	if count > 0 {
		return repository.ErrDuplicado
	}

	if err := r.db.WithContext(ctx).Create(tipo).Error; err != nil {
		return fmt.Errorf("falha ao criar tipo de vídeo: %w", err)
	}
	return nil
}

func (r *CatalogoRepository) ListTags(ctx context.Context) ([]*model.TagEntity, error) {
	var tags []*model.TagEntity
	if err := r.db.WithContext(ctx).Order("nome asc").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("falha ao listar tags: %w", err)
	}
	return tags, nil
}

func (r *CatalogoRepository) CreateTag(ctx context.Context, tag *model.TagEntity) error {
	var count int64
	r.db.WithContext(ctx).Model(&model.TagEntity{}).Where("nome = ?", tag.Nome).Count(&count)
	if count > 0 {
		return repository.ErrDuplicado
	}

	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("falha ao criar tag: %w", err)
	}
	return nil
}

// Seed insere os tipos de vídeo e tags iniciais. É idempotente: nomes já
// existentes são silenciosamente ignorados, então pode rodar em toda subida.
func (r *CatalogoRepository) Seed(ctx context.Context) error {
	for _, nome := range tiposIniciais {
		tipo := model.TipoVideoEntity{ID: uuid.NewString(), Nome: nome}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "nome"}}, DoNothing: true}).
			Create(&tipo).Error
		if err != nil {
			return fmt.Errorf("falha ao semear tipo %q: %w", nome, err)
		}
	}

	for _, nome := range tagsIniciais {
		tag := model.TagEntity{ID: uuid.NewString(), Nome: nome}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "nome"}}, DoNothing: true}).
			Create(&tag).Error
		if err != nil {
			return fmt.Errorf("falha ao semear tag %q: %w", nome, err)
		}
	}

	r.logger.Info("Catálogo semeado",
		zap.Int("tipos", len(tiposIniciais)),
		zap.Int("tags", len(tagsIniciais)))
	return nil
}
