// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPassword is returned when an empty password is supplied to
	// Encrypt or Decrypt.
	ErrEmptyPassword = errors.New("password is required")

	// ErrMalformedEnvelope is returned when the envelope text cannot be
	// parsed, misses one of the required fields, or carries a salt/IV of the
	// wrong length.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrWrongPassword is returned when AES-GCM authentication fails. With a
	// well-formed envelope this almost always means the password is wrong.
	ErrWrongPassword = errors.New("wrong password")

	// ErrUnsupportedVersion is returned for envelopes whose version pins a
	// parameter set this build does not know. It wraps ErrMalformedEnvelope.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrMalformedEnvelope)
)
