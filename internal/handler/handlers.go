// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler builds the transport handlers of the remote key-value
// server.
package handler

import (
	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/handler/grpc"
	"github.com/Danford/PrintChecks/internal/handler/http"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/store"
)

// Handlers groups the transport handlers enabled by the configuration.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a handler for every transport with a configured
// address, all serving kv. At least one address must be set.
func NewHandlers(kv store.Store, cfg *config.ServerConfig, logger *logger.Logger) (*Handlers, error) {
	if kv == nil {
		return nil, errNilStore
	}
	logger.Info().Str("http", cfg.Server.HTTPAddress).Str("grpc", cfg.Server.GRPCAddress).Msg("creating kv handlers")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(kv, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(kv, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoTransports
	}

	return handlers, nil
}
