// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the remote key-value store: a store.Backend that
// talks to the /api/kv routes of the remote store server over HTTP.
//
// HTTP statuses are mapped onto the storage error taxonomy by mapHTTPError,
// so callers keep matching store.ErrKeyNotFound, store.ErrQuotaExceeded and
// store.ErrUnavailable with [errors.Is] whatever the medium.
package adapter
