// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/Danford/PrintChecks/internal/store"
)

// buildRouter creates a minimal chi.Mux without the Handler middleware.
func buildRouter() *chi.Mux {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	router := chi.NewRouter()
	router.Get("/api/items", ok)
	router.Post("/api/items", ok)
	router.Get("/api/items/{id}", ok)
	router.Delete("/api/items/{id}", ok)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{name: "registered method", method: http.MethodGet, path: "/api/items", wantStatus: http.StatusOK},
		{name: "static route wrong method", method: http.MethodPut, path: "/api/items", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET, POST"},
		{name: "param route wrong method", method: http.MethodPost, path: "/api/items/7", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET, DELETE"},
		{name: "unknown path", method: http.MethodGet, path: "/api/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, buildRouter(), tt.method, tt.path, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Allow"))
		})
	}
}

func TestCheckHTTPMethod_KVRoutes(t *testing.T) {
	router := newTestHandler(store.NewMemoryStore(), "").Init()

	rr := serve(t, router, http.MethodPost, "/api/kv/checks", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, HEAD, PUT, DELETE", rr.Header().Get("Allow"))
}
