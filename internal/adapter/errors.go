// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Remote failures that have no counterpart in the storage taxonomy.
var (
	// ErrBadRequest means the server rejected the request (400).
	ErrBadRequest = errors.New("bad request")

	// ErrInternalServerError means the server failed the request (500).
	ErrInternalServerError = errors.New("internal server error")

	// ErrIntegrity means a response body did not match its HashSHA256
	// header.
	ErrIntegrity = errors.New("response integrity check failed")

	// ErrEmptyAddress is returned by NewHTTPStore without a server address.
	ErrEmptyAddress = errors.New("empty address")
)
