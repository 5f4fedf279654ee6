package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/clean-auth/internal/app"
	"github.com/MKhiriev/clean-auth/internal/ratelimit"
	"github.com/MKhiriev/clean-auth/internal/service"
	"github.com/MKhiriev/clean-auth/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestResponseFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"policy wins over validation", fmt.Errorf("%w: %w", service.ErrPasswordPolicy, service.ErrInvalidDataProvided), http.StatusBadRequest, app.MsgPasswordPolicy},
		{"user exists is 400", service.ErrUserExists, http.StatusBadRequest, app.MsgUserExists},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
		{"no password set", service.ErrNoPasswordSet, http.StatusUnauthorized, app.MsgNoPasswordSet},
		{"invalid code", service.ErrInvalidOrExpiredCode, http.StatusUnauthorized, app.MsgInvalidOrExpiredCode},
		{"bad token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
		{"no session", ErrNoSessionToken, http.StatusUnauthorized, app.MsgUnauthorized},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests, app.MsgTooManyRequests},
		{"delivery", fmt.Errorf("%w: smtp", service.ErrDeliveryFailed), http.StatusInternalServerError, app.MsgDeliveryFailed},
		{"limiter failure", ratelimit.ErrLimiterFailure, http.StatusInternalServerError, app.MsgInternalServerError},
		{"raw store error", store.ErrDatabaseUnavailable, http.StatusInternalServerError, app.MsgInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := responseFromError(tt.err)

			assert.Equal(t, tt.wantStatus, got.status)
			assert.Equal(t, tt.wantMsg, got.message)
		})
	}
}
