package handler

import (
	"github.com/MKhiriev/clean-auth/internal/adapter"
	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/handler/grpc"
	"github.com/MKhiriev/clean-auth/internal/handler/http"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/ratelimit"
	"github.com/MKhiriev/clean-auth/internal/service"
)

// Handlers groups the transport handlers. GRPC is nil when no gRPC address
// is configured.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, limiter ratelimit.Limiter, providers []adapter.OAuthProvider, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}
	if limiter == nil {
		return nil, errNoLimiter
	}

	handlers := &Handlers{
		HTTP: http.NewHandler(services, limiter, providers, cfg, logger),
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	} else {
		logger.Info().Msg("grpc address not set, grpc health disabled")
	}

	return handlers, nil
}
