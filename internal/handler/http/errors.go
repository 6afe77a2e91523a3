// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request level failures answered with 4xx.
var (
	// ErrIntegrityCheckFailed is answered when the HashSHA256 header is
	// missing or does not match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrInvalidKey is answered for an empty or badly escaped key.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidBody is answered when a body cannot be read or decoded.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrValueTooLarge is answered when a value exceeds MaxValueSize.
	ErrValueTooLarge = errors.New("value too large")
)
