// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/internal/utils"
	"github.com/Danford/PrintChecks/internal/validators"
)

// Handler serves the remote key-value API over a single store.
type Handler struct {
	store     store.Store
	hasher    *utils.Hasher
	validator validators.Validator

	allowedOrigins []string

	logger *logger.Logger
}

// NewHandler builds a Handler over kv. Body integrity checking is enabled
// when cfg.HashKey is set.
func NewHandler(kv store.Store, cfg *config.ServerConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		store:          kv,
		hasher:         utils.NewHasher(cfg.HashKey),
		validator:      validators.NewKVValidator(),
		allowedOrigins: cfg.Server.AllowedOrigins,
		logger:         logger,
	}
}
