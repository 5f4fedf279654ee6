package server

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/clean-auth/internal/config"
	myGRPC "github.com/MKhiriev/clean-auth/internal/handler/grpc"
	"github.com/MKhiriev/clean-auth/internal/logger"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type grpcServer struct {
	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errBind, cfg.GRPCAddress, err)
	}

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(handler.UnaryLogging))
	healthpb.RegisterHealthServer(server, handler)

	return &grpcServer{
		server:          server,
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

func (g *grpcServer) name() string    { return "gRPC" }
func (g *grpcServer) address() string { return g.gRPCNetListener.Addr().String() }

func (g *grpcServer) serve() error {
	return g.server.Serve(g.gRPCNetListener)
}

// shutdown waits for in-flight calls and falls back to a hard stop when ctx
// expires first.
func (g *grpcServer) shutdown(ctx context.Context) error {
	defer g.gRPCNetListener.Close()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return ctx.Err()
	}
}
