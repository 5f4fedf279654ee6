package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/handler"
	"github.com/MKhiriev/clean-auth/internal/logger"
)

// ShutdownTimeout bounds the graceful stop of all transports.
const ShutdownTimeout = 15 * time.Second

type server struct {
	transports []transport
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		h, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.transports = append(servers.transports, h)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		g, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			servers.closeAll()
			return nil, err
		}
		servers.transports = append(servers.transports, g)
	}

	if len(servers.transports) == 0 {
		return nil, errNoTransports
	}

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	errs := make(chan error, len(s.transports))

	// launch all created servers
	for _, t := range s.transports {
		s.logger.Info().Str("address", t.address()).Msgf("launching %s server", t.name())
		go func() {
			if err := t.serve(); err != nil {
				errs <- fmt.Errorf("%s server: %w", t.name(), err)
				return
			}
			errs <- nil
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case runErr = <-errs:
		if runErr != nil {
			s.logger.Err(runErr).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, err)
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return runErr
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error
	for _, t := range s.transports {
		if err := t.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s server shutdown: %w", t.name(), err))
		}
	}
	return errors.Join(errs...)
}

// closeAll releases listeners bound before a later transport failed.
func (s *server) closeAll() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.Shutdown(ctx)
}
