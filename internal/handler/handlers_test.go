// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/store"
)

func serverConfig(httpAddr, grpcAddr string) *config.ServerConfig {
	return &config.ServerConfig{
		Server: config.Server{HTTPAddress: httpAddr, GRPCAddress: grpcAddr},
	}
}

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.ServerConfig
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{name: "both addresses", cfg: serverConfig(":8080", ":9090"), wantHTTP: true, wantGRPC: true},
		{name: "only http", cfg: serverConfig(":8080", ""), wantHTTP: true},
		{name: "only grpc", cfg: serverConfig("", ":9090"), wantGRPC: true},
		{name: "no addresses", cfg: serverConfig("", ""), wantErr: errNoTransports},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(store.NewMemoryStore(), tt.cfg, logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

// TestNewHandlers_IndependentInstances verifies that two calls to NewHandlers
// produce independent *Handlers instances.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := serverConfig(":8080", ":9090")
	kv := store.NewMemoryStore()

	h1, err1 := NewHandlers(kv, cfg, logger.Nop())
	h2, err2 := NewHandlers(kv, cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
	assert.NotSame(t, h1.GRPC, h2.GRPC)
}

func TestNewHandlers_NilStore(t *testing.T) {
	h, err := NewHandlers(nil, serverConfig(":8080", ""), logger.Nop())

	assert.ErrorIs(t, err, errNilStore)
	assert.Nil(t, h)
}
