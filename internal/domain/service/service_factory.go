package service

import (
	"github.com/produflow/produflow-api/internal/app/auth"
	"github.com/produflow/produflow-api/internal/app/catalogo"
	"github.com/produflow/produflow-api/internal/app/projeto"
	"github.com/produflow/produflow-api/internal/domain/repository"
	"github.com/produflow/produflow-api/internal/infra/metrics"
	"github.com/produflow/produflow-api/pkg/cache"
	"github.com/produflow/produflow-api/pkg/security"
	"go.uber.org/zap"
)

// Services contém todos os serviços da aplicação
type Services struct {
	AuthService     *auth.AuthService
	ProjetoService  *projeto.Service
	CatalogoService *catalogo.Service
}

// NewServices cria todos os serviços necessários
func NewServices(
	projetoRepo repository.ProjetoRepository,
	userRepo repository.UserRepository,
	catalogoRepo repository.CatalogoRepository,
	cache cache.Cache,
	apiMetrics *metrics.APIMetrics,
	logger *zap.Logger,
) (*Services, error) {
	// Criar gerenciador de chaves
	keyManager, err := security.NewKeyManager(logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:     auth.NewAuthService(keyManager, userRepo, logger),
		ProjetoService:  projeto.NewService(projetoRepo, userRepo, apiMetrics, logger),
		CatalogoService: catalogo.NewService(catalogoRepo, cache, logger),
	}, nil
}
