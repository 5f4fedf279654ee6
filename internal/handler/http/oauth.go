// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MKhiriev/clean-auth/internal/app"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/service"
	"github.com/google/uuid"
)

const oauthStateTTL = 10 * time.Minute

// oauthStart redirects the browser to the provider's consent page. A random
// state is kept in a short-lived cookie and checked on the callback.
func (h *Handler) oauthStart(providerName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := h.providers[providerName]
		if !ok {
			h.oauthFail(w, r, app.OAuthErrorNotAvailable, fmt.Errorf("%w: %s", ErrProviderNotConfigured, providerName))
			return
		}

		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    state,
			Path:     "/auth/" + providerName,
			MaxAge:   int(oauthStateTTL.Seconds()),
			HttpOnly: true,
			Secure:   h.settings.cookieSecure,
			// the callback is a cross-site navigation from the provider
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
	}
}

// oauthCallback completes the handshake, resolves the profile to a user and
// redirects to the success page with the session cookie set. Every failure
// redirects to the failure page with an "error" code.
func (h *Handler) oauthCallback(providerName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := h.providers[providerName]
		if !ok {
			h.oauthFail(w, r, app.OAuthErrorNotAvailable, fmt.Errorf("%w: %s", ErrProviderNotConfigured, providerName))
			return
		}

		query := r.URL.Query()
		if providerErr := query.Get("error"); providerErr != "" {
			h.oauthFail(w, r, app.OAuthErrorDenied, fmt.Errorf("%w: %s", ErrProviderDenied, providerErr))
			return
		}

		cookie, err := r.Cookie(oauthStateCookie)
		if err != nil || !sameState(cookie.Value, query.Get("state")) {
			h.oauthFail(w, r, app.OAuthErrorState, ErrInvalidOAuthState)
			return
		}
		h.clearStateCookie(w, providerName)

		ctx := r.Context()
		profile, err := provider.Exchange(ctx, query.Get("code"))
		if err != nil {
			h.oauthFail(w, r, app.OAuthErrorFailed, err)
			return
		}

		result, err := h.services.AuthService.LoginWithProvider(ctx, profile)
		if err != nil {
			code := app.OAuthErrorFailed
			if errors.Is(err, service.ErrInvalidProviderProfile) {
				code = app.OAuthErrorUnverified
			}
			h.oauthFail(w, r, code, err)
			return
		}

		logger.FromRequest(r).Info().
			Str("provider", providerName).
			Str("user_id", result.User.UserID).
			Msg("user logged in with identity provider")

		h.setSessionCookie(w, result.Token)
		http.Redirect(w, r, h.settings.successRedirect, http.StatusTemporaryRedirect)
	}
}

func (h *Handler) oauthFail(w http.ResponseWriter, r *http.Request, code string, err error) {
	logger.FromRequest(r).Warn().Err(err).Str("error_code", code).Msg("oauth login failed")
	http.Redirect(w, r, failureURL(h.settings.failureRedirect, code), http.StatusTemporaryRedirect)
}

func (h *Handler) clearStateCookie(w http.ResponseWriter, providerName string) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/auth/" + providerName,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.settings.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// failureURL appends error=code to target, keeping its existing query.
func failureURL(target, code string) string {
	u, err := url.Parse(target)
	if err != nil {
		return "/?error=" + url.QueryEscape(code)
	}
	q := u.Query()
	q.Set("error", code)
	u.RawQuery = q.Encode()
	return u.String()
}

func sameState(expected, actual string) bool {
	if expected == "" || actual == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
