// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/clean-auth/internal/app"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/utils"
	"github.com/MKhiriev/clean-auth/models"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the handler registered as the router's
// MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 when a path matches a route but the method is not
// registered. This handler answers 404 instead, so callers using an
// unsupported method cannot tell the route exists. The methods that are
// registered for the path are only written to the debug log.
//
// The lookup walks every route, nested routers included, and compares the
// full pattern with the raw request path. Parameterised segments are not
// expanded.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if route == r.URL.Path {
				allowed = append(allowed, method)
			}
			return nil
		})

		logger.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("allowed", strings.Join(allowed, ",")).
			Msg("method not allowed, answering 404")

		notFound(w, r)
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgNotFound}, http.StatusNotFound)
}
