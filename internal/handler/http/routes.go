// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Danford/PrintChecks/internal/utils"
)

// Init builds the router with the full middleware chain. CORS is only
// installed when allowed origins are configured.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if len(h.allowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins,
			AllowedMethods: []string{
				http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete,
			},
			AllowedHeaders: []string{"Content-Type", utils.HashHeader, utils.TraceIDHeader},
			ExposedHeaders: []string{utils.HashHeader, utils.TraceIDHeader},
			MaxAge:         300,
		}))
	}
	router.Use(withGZip, h.withHashing)

	router.Get("/api/kv", h.listKeys)
	router.Delete("/api/kv", h.clear)

	router.Post("/api/kv/batch/get", h.batchGet)
	router.Put("/api/kv/batch", h.batchSet)

	router.Get("/api/kv/{key}", h.getValue)
	router.Head("/api/kv/{key}", h.hasValue)
	router.Put("/api/kv/{key}", h.setValue)
	router.Delete("/api/kv/{key}", h.removeValue)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
