package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/utils"
)

// auth is an HTTP middleware that enforces token authentication.
//
// The token is taken from the "Authorization: Bearer" header or, when the
// header is absent, from the session cookie. It is validated via
// [service.AuthService.ParseToken] and the user ID from its subject is
// stored in the request context under [utils.UserIDCtxKey] before delegating
// to the next handler.
//
// Requests without a token or with a malformed, expired or forged token are
// rejected with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := h.tokenFromRequest(r)
		if err != nil {
			writeError(w, r, ErrNoSessionToken)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		logger.FromRequest(r).Debug().Str("user_id", token.UserID).Msg("request authenticated")

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
