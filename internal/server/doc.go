// Package server runs the application's transport servers.
//
// It binds the HTTP and the optional gRPC listeners at construction time,
// serves them until the caller's context is cancelled and shuts all enabled
// transports down gracefully.
package server
