// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// ServerConfig is the remote store server view of [StructuredConfig].
type ServerConfig struct {
	// HashKey enables HMAC body integrity checking when non-empty.
	HashKey string
	Storage Storage
	Server  Server
}

// GetServerConfig builds and validates the server view from the merged
// structured configuration.
func GetServerConfig(flags *Flags) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HashKey: cfg.App.HashKey,
		Storage: cfg.Storage,
		Server:  cfg.Server,
	}

	if err = serverCfg.validate(); err != nil {
		return nil, err
	}

	return serverCfg, nil
}
