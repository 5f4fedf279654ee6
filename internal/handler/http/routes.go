package http

import (
	"net/http"

	"github.com/MKhiriev/clean-auth/internal/adapter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Rate limit groups. Each group has its own budget per client IP.
const (
	groupLogin    = "login"
	groupRegister = "register"
	groupOTP      = "otp"
	groupOAuth    = "oauth"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withClientIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.settings.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if h.settings.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.settings.requestTimeout))
	}

	router.Get("/health", h.health)

	router.Route("/auth", func(r chi.Router) {
		// JSON routes
		r.Group(func(r chi.Router) {
			r.Use(withGZip)

			r.With(h.rateLimit(groupLogin)).Post("/login", h.login)
			r.With(h.rateLimit(groupRegister)).Post("/register", h.register)
			r.With(h.rateLimit(groupOTP)).Post("/send-otp", h.sendOTP)
			r.With(h.rateLimit(groupOTP)).Post("/verify-otp", h.verifyOTP)
			r.Post("/logout", h.logout)

			r.With(h.auth).Get("/me", h.me)
		})

		// browser redirects
		r.Group(func(r chi.Router) {
			r.Use(h.rateLimit(groupOAuth))

			r.Get("/google", h.oauthStart(adapter.ProviderGoogle))
			r.Get("/google/callback", h.oauthCallback(adapter.ProviderGoogle))
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
