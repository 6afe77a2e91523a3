// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the remote key-value store.
//
// It exposes the /api/kv routes over a store.Store and the middleware chain
// in front of them: panic recovery, request tracing, access logging, CORS,
// response compression and HMAC body integrity checks.
package http
