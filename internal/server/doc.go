// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the transport servers of the remote key-value store.
//
// It binds the HTTP API and the gRPC health endpoint, starts them together
// and shuts both down gracefully on SIGINT, SIGTERM or SIGQUIT.
package server
