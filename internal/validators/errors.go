// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidKey     = errors.New("invalid key")
	ErrReservedKey    = errors.New("key is reserved")
	ErrEmptyKeys      = errors.New("keys list cannot be empty")
	ErrTooManyKeys    = errors.New("too many keys in one request")
	ErrEmptyEntries   = errors.New("entries cannot be empty")
	ErrTooManyEntries = errors.New("too many entries in one request")
)
