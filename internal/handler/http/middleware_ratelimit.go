package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/ratelimit"
)

// rateLimit admits at most the configured number of attempts per client IP
// for group. Limiter failures reject the request.
func (h *Handler) rateLimit(group string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ratelimit.Key(group, clientIP(r))

			allowed, err := h.limiter.Allow(r.Context(), key)
			if err != nil {
				writeError(w, r, fmt.Errorf("rate limit check for %q: %w", group, err))
				return
			}
			if !allowed {
				logger.FromRequest(r).Warn().Str("group", group).Str("ip", clientIP(r)).Msg("rate limit exceeded")
				writeError(w, r, ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
