// Package http implements the HTTP boundary of the auth server.
//
// It exposes the login, registration, email OTP and Google OAuth routes, the
// current-user and logout routes and the health probe. Cross-cutting concerns
// such as request tracing, access logging, response compression, CORS, per-IP
// rate limiting and session authentication are handled in this package before
// requests are delegated to the service layer.
package http
