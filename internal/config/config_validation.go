// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared; it caches struct info.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validate checks the merged [StructuredConfig] against its struct tags and
// the cross-field rules the tags cannot express.
func (cfg *StructuredConfig) validate() error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %w", sectionError(verrs[0].StructNamespace()), err)
		}
		return err
	}

	if cfg.Storage.Backend == BackendPostgres && cfg.Storage.DSN == "" {
		return fmt.Errorf("%w: postgres backend requires a DSN", ErrInvalidStorageConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Backend == BackendRemote && cfg.Adapter.HTTPAddress == "" {
		return fmt.Errorf("%w: remote backend requires an adapter address", ErrInvalidAdapterConfigs)
	}

	if cfg.App.InactivityTimeout > 0 && cfg.App.WarningDuration >= cfg.App.InactivityTimeout {
		return fmt.Errorf("%w: warning duration must be shorter than the inactivity timeout", ErrInvalidAppConfigs)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.Backend == BackendRemote {
		return fmt.Errorf("%w: the server cannot use the remote backend", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty HTTP address", ErrInvalidServerConfigs)
	}

	return nil
}

// sectionError maps a validator namespace such as
// "StructuredConfig.Storage.Backend" to the sentinel of its section.
func sectionError(namespace string) error {
	switch {
	case hasSection(namespace, "Storage"):
		return ErrInvalidStorageConfigs
	case hasSection(namespace, "Server"):
		return ErrInvalidServerConfigs
	case hasSection(namespace, "Adapter"):
		return ErrInvalidAdapterConfigs
	default:
		return ErrInvalidAppConfigs
	}
}

func hasSection(namespace, section string) bool {
	prefix := "StructuredConfig." + section + "."
	return len(namespace) > len(prefix) && namespace[:len(prefix)] == prefix
}
