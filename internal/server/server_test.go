// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/handler"
	myGRPC "github.com/Danford/PrintChecks/internal/handler/grpc"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/store"
)

func newTestServer(t *testing.T, httpAddr, grpcAddr string) *server {
	t.Helper()

	cfg := &config.ServerConfig{
		Server: config.Server{HTTPAddress: httpAddr, GRPCAddress: grpcAddr, RequestTimeout: 5 * time.Second},
	}
	handlers, err := handler.NewHandlers(store.NewMemoryStore(), cfg, logger.Nop())
	require.NoError(t, err)

	s, err := newServer(handlers, cfg.Server, logger.Nop())
	require.NoError(t, err)
	return s
}

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_PortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := &config.ServerConfig{Server: config.Server{HTTPAddress: busy.Addr().String()}}
	handlers, err := handler.NewHandlers(store.NewMemoryStore(), cfg, logger.Nop())
	require.NoError(t, err)

	_, err = NewServer(handlers, cfg.Server, logger.Nop())

	assert.Error(t, err)
}

func TestRun_NoServers(t *testing.T) {
	s := &server{logger: logger.Nop()}

	assert.ErrorIs(t, s.run(context.Background()), errNoServersToRun)
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	s := newTestServer(t, "127.0.0.1:0", "127.0.0.1:0")
	httpURL := fmt.Sprintf("http://%s/api/kv", s.httpServer.listener.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()

	// HTTP API answers
	require.Eventually(t, func() bool {
		resp, err := http.Get(httpURL)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	// gRPC health reports the store as serving
	conn, err := grpc.NewClient(s.gRPCServer.gRPCNetListener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	health := healthpb.NewHealthClient(conn)

	require.Eventually(t, func() bool {
		resp, err := health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: myGRPC.ServiceName})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	// Act: request shutdown
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	_, err = http.Get(httpURL)
	assert.Error(t, err)
}

func TestShutdown_Idempotent(t *testing.T) {
	s := newTestServer(t, "127.0.0.1:0", "")

	assert.NotPanics(t, func() {
		s.Shutdown()
		s.Shutdown()
	})
}
