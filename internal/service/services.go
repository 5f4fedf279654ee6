package service

import (
	"fmt"

	"github.com/MKhiriev/clean-auth/internal/adapter"
	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/store"
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
	HealthService  HealthService
}

// NewServices wires every service. The AuthService is always wrapped in
// input validation.
func NewServices(repositories *store.Repositories, notifier adapter.Notifier, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	authService := NewAuthValidationService().Wrap(
		NewAuthService(repositories, notifier, cfg, logger),
	)

	return &Services{
		AuthService:    authService,
		AppInfoService: appInfoService,
		HealthService:  NewHealthService(repositories.HealthChecker, logger),
	}, nil
}
