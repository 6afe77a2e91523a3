// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// ClientConfig is the client-side view of [StructuredConfig], shared by the
// terminal client and the maintenance CLI.
type ClientConfig struct {
	// App contains the secure storage and session settings.
	App App
	// Storage selects the base backend.
	Storage Storage
	// Adapter contains the remote store client settings.
	Adapter Adapter
	// LogFile is the client log destination.
	LogFile string
}

// GetClientConfig builds and validates the client view from the merged
// structured configuration.
func GetClientConfig(flags *Flags) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps the fields relevant to the client and validates them.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Adapter: cfg.Adapter,
		LogFile: cfg.LogFile,
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}
