package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/store"
)

type healthService struct {
	checker store.HealthChecker

	logger *logger.Logger
}

func NewHealthService(checker store.HealthChecker, logger *logger.Logger) HealthService {
	return &healthService{
		checker: checker,
		logger:  logger,
	}
}

// CheckStore pings the store and reports any failure as ErrStoreUnavailable.
func (s *healthService) CheckStore(ctx context.Context) error {
	if err := s.checker.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("store ping failed")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}
