// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/Danford/PrintChecks/internal/store"
)

// humanizeError turns storage errors into messages for the status line.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, store.ErrWrongPassword):
		return "Wrong password"
	case errors.Is(err, store.ErrPasswordRequired):
		return "Password is required"
	case errors.Is(err, store.ErrTooManyAttempts):
		return "Too many attempts, wait a moment and try again"
	case errors.Is(err, store.ErrMalformedEnvelope):
		return "Stored data is damaged and cannot be decrypted"
	case errors.Is(err, store.ErrUnavailable):
		return "Storage is unavailable"
	case errors.Is(err, store.ErrKeyNotFound):
		return "Value no longer exists"
	default:
		return err.Error()
	}
}
