// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// newCheckMethodRouter mirrors the nesting used by Init.
func newCheckMethodRouter() *chi.Mux {
	router := chi.NewRouter()
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	router.Get("/health", ok)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", ok)
		r.Get("/me", ok)
		r.Post("/me", ok)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))
	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"registered top-level route", http.MethodGet, "/health", http.StatusOK},
		{"registered nested route", http.MethodPost, "/auth/login", http.StatusOK},
		{"multi-method route GET", http.MethodGet, "/auth/me", http.StatusOK},
		{"multi-method route POST", http.MethodPost, "/auth/me", http.StatusOK},
		{"wrong method on top-level route", http.MethodPost, "/health", http.StatusNotFound},
		{"wrong method on nested route", http.MethodGet, "/auth/login", http.StatusNotFound},
		{"DELETE is hidden too", http.MethodDelete, "/auth/me", http.StatusNotFound},
	}

	router := newCheckMethodRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_JSONBody(t *testing.T) {
	rr := httptest.NewRecorder()
	newCheckMethodRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/auth/login", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"not found"}`, rr.Body.String())
}
