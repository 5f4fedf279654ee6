// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound collaborators of the auth service:
// delivery of one-time codes and the identity provider handshake.
//
// [Notifier] has two implementations. The SMTP notifier is used when a mail
// host is configured; otherwise codes are written to the log, which is only
// suitable for development. [OAuthProvider] is implemented for Google on top
// of golang.org/x/oauth2 and a resty client for the userinfo endpoint.
package adapter

import (
	"context"

	"github.com/MKhiriev/clean-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Notifier delivers a message to a contact address out of band.
type Notifier interface {
	// Send delivers body to the address to. It either succeeds or returns an
	// error; it never retries.
	Send(ctx context.Context, to, subject, body string) error
}

// OAuthProvider performs the redirect and code exchange of an OAuth 2.0
// authorization code flow and returns the verified identity of the user.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for a token and fetches the
	// user's profile with it.
	Exchange(ctx context.Context, code string) (models.ProviderProfile, error)
}
