// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/logger"
)

// New opens the local backend selected by cfg.Backend. SQL backends are
// migrated before use. The remote backend lives in the adapter package and
// yields ErrUnsupportedBackend here.
func New(ctx context.Context, cfg config.Storage, log *logger.Logger) (Backend, error) {
	log.Debug().Str("func", "store.New").Str("backend", cfg.Backend).Msg("opening storage backend")

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.DSN)
	case config.BackendBolt:
		return NewBoltStore(cfg.DSN)
	case config.BackendSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		return migratedSQLStore(db, log)
	case config.BackendPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		return migratedSQLStore(db, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}

func migratedSQLStore(db *DB, log *logger.Logger) (Backend, error) {
	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "store.New").Msg("error migrating database")
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", db.dialect, err)
	}
	return NewSQLStore(db, log), nil
}
