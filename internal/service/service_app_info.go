package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/logger"
)

// appInfoService reports the build version shown by GET /health.
type appInfoService struct {
	version string
}

func NewAppInfoService(cfg config.App, log *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	log.Info().Str("version", version).Msg("app info service created")
	return appInfoService{version: version}, nil
}

func (s appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
