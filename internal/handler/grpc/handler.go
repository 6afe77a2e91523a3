// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc exposes the standard gRPC health service for the remote
// key-value store. The serving status follows a periodic probe of the store.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/store"
)

// ServiceName is the health service name reported for the key-value store.
// The empty name reports the same status for the server as a whole.
const ServiceName = "printchecks.kv.Store"

// DefaultProbeInterval is how often Watch probes the store.
const DefaultProbeInterval = 15 * time.Second

// Handler is the root gRPC transport handler.
//
// It owns a health server whose status reflects whether the store answers.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	store  store.Store
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] over kv. The store is reported as not
// serving until the first probe succeeds.
func NewHandler(kv store.Store, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		store:  kv,
		health: health.NewServer(),
		logger: logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Probe lists the store keys once and publishes the resulting status.
func (h *Handler) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if _, err := h.store.Keys(ctx); err != nil {
		h.logger.Warn().Err(err).Str("func", "*Handler.Probe").Msg("store probe failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.setStatus(status)
	return status
}

// Watch probes the store immediately and then every interval until ctx is
// done.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	h.Probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

// Shutdown marks every service as not serving and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
