// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/Danford/PrintChecks/internal/adapter"
	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/store"
)

// OpenStore opens the base backend selected by cfg: a local backend from the
// store package or, for "remote", the HTTP store server. A configured prefix
// namespaces every key.
func OpenStore(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (store.Backend, error) {
	var (
		base store.Backend
		err  error
	)

	if cfg.Storage.Backend == config.BackendRemote {
		base, err = adapter.NewHTTPStore(cfg.Adapter, cfg.App.HashKey, log)
	} else {
		base, err = store.New(ctx, cfg.Storage, log)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	if cfg.Storage.Prefix == "" {
		return base, nil
	}
	return store.NewPrefixedStore(base, cfg.Storage.Prefix), nil
}
