package http

import (
	"net/netip"
	"time"

	"github.com/MKhiriev/clean-auth/internal/adapter"
	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/ratelimit"
	"github.com/MKhiriev/clean-auth/internal/service"
)

type Handler struct {
	services  *service.Services
	limiter   ratelimit.Limiter
	providers map[string]adapter.OAuthProvider
	settings  settings

	logger *logger.Logger
}

// settings is the subset of configuration the routes depend on.
type settings struct {
	cookieName     string
	cookieSecure   bool
	tokenDuration  time.Duration
	requestTimeout time.Duration
	allowedOrigins []string
	trustedProxies []netip.Prefix

	successRedirect string
	failureRedirect string
}

// NewHandler builds the HTTP handler. Providers are keyed by their Name;
// a provider absent from the list makes its routes redirect to the failure
// page.
func NewHandler(services *service.Services, limiter ratelimit.Limiter, providers []adapter.OAuthProvider, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	byName := make(map[string]adapter.OAuthProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}

	trusted := make([]netip.Prefix, 0, len(cfg.Server.TrustedProxies))
	for _, proxy := range cfg.Server.TrustedProxies {
		prefix, err := config.ParseTrustedProxy(proxy)
		if err != nil {
			logger.Warn().Err(err).Msg("ignoring trusted proxy")
			continue
		}
		trusted = append(trusted, prefix)
	}

	logger.Info().Int("oauth_providers", len(byName)).Int("trusted_proxies", len(trusted)).Msg("http handler created")
	return &Handler{
		services:  services,
		limiter:   limiter,
		providers: byName,
		settings: settings{
			cookieName:      cfg.Server.CookieName,
			cookieSecure:    cfg.Server.CookieSecure,
			tokenDuration:   cfg.App.TokenDuration,
			requestTimeout:  cfg.Server.RequestTimeout,
			allowedOrigins:  cfg.Server.AllowedOrigins,
			trustedProxies:  trusted,
			successRedirect: cfg.OAuth.SuccessRedirect,
			failureRedirect: cfg.OAuth.FailureRedirect,
		},
		logger: logger,
	}
}
