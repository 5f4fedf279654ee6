package server

import "context"

// Server defines the lifecycle of the transports managed by this package.
type Server interface {
	// RunServer serves every enabled transport until ctx is cancelled or
	// one of them fails, then shuts all of them down.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops every transport within ctx.
	Shutdown(ctx context.Context) error
}

// transport is one listening server, HTTP or gRPC.
type transport interface {
	name() string
	address() string

	// serve blocks until the transport stops. A graceful stop is not an
	// error.
	serve() error
	shutdown(ctx context.Context) error
}
