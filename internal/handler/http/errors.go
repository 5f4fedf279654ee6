// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/clean-auth/internal/service"
)

// Sentinel errors raised by the HTTP layer itself. Callers can match against
// them with [errors.Is].
var (
	// ErrNoSessionToken is returned by the auth middleware when the request
	// carries neither an "Authorization" header nor a session cookie.
	ErrNoSessionToken = errors.New("no session token in request")

	// ErrRateLimited is returned when the client exhausted its attempts for
	// a rate limit group.
	ErrRateLimited = errors.New("too many requests")

	// ErrInvalidOAuthState is returned when the OAuth callback state does
	// not match the state cookie set at the start of the handshake.
	ErrInvalidOAuthState = errors.New("invalid oauth state")

	// ErrProviderNotConfigured is returned when the requested identity
	// provider has no client registration.
	ErrProviderNotConfigured = errors.New("identity provider is not configured")

	// ErrProviderDenied is returned when the provider redirected back with
	// an "error" parameter instead of a code.
	ErrProviderDenied = errors.New("identity provider denied the request")
)

func errInvalidGzipBody(err error) error {
	return fmt.Errorf("%w: invalid gzip body: %w", service.ErrInvalidDataProvided, err)
}
