// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoTransports means the server config has neither an HTTP nor a gRPC
	// address, so there is nothing to serve the store on.
	errNoTransports = errors.New("no transport address configured")

	errNilStore = errors.New("store is nil")
)
