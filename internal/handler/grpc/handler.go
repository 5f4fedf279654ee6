package grpc

import (
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/service"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the service name reported by the health endpoint in
// addition to the empty overall name.
const ServiceName = "clean-auth"

// Handler is the root gRPC transport handler.
//
// It implements grpc.health.v1.Health on top of the service layer. Watch and
// List are left to the embedded unimplemented server.
type Handler struct {
	healthpb.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
