// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/mock"
	"github.com/Danford/PrintChecks/internal/store"
)

// startHealthServer serves h over an in-memory listener and returns a
// health client connected to it.
func startHealthServer(t *testing.T, h *Handler) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	h.Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func check(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHandler_NotServingBeforeFirstProbe(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), logger.Nop())
	client := startHealthServer(t, h)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, ServiceName))
}

func TestHandler_ProbeHealthyStore(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), logger.Nop())
	client := startHealthServer(t, h)

	status := h.Probe(context.Background())

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ServiceName))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ""))
}

func TestHandler_ProbeFailingStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockStore(ctrl)
	gomock.InOrder(
		kv.EXPECT().Keys(gomock.Any()).Return([]string{}, nil),
		kv.EXPECT().Keys(gomock.Any()).Return(nil, store.NewStorageError("keys", "", store.ErrUnavailable)),
	)

	h := NewHandler(kv, logger.Nop())
	client := startHealthServer(t, h)

	// Arrange: store healthy first
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, h.Probe(context.Background()))

	// Act: store goes down
	status := h.Probe(context.Background())

	// Assert
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, ServiceName))
}

func TestHandler_WatchProbesUntilCancelled(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), logger.Nop())
	client := startHealthServer(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Watch(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestHandler_Shutdown(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), logger.Nop())
	client := startHealthServer(t, h)
	h.Probe(context.Background())

	h.Shutdown()
	h.Probe(context.Background())

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, ServiceName))
}
