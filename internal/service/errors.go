// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/Danford/PrintChecks/internal/crypto"
	"github.com/Danford/PrintChecks/internal/store"
)

// storageError wraps err as a *store.StorageError unless it already is one
// or it is the plain "absent" answer.
func storageError(op, key string, err error) error {
	if err == nil || errors.Is(err, store.ErrKeyNotFound) {
		return err
	}
	var se *store.StorageError
	if errors.As(err, &se) {
		return err
	}
	return store.NewStorageError(op, key, err)
}

// cryptoError maps a crypto engine failure onto an encryption error kind.
// Failures unrelated to the password or envelope stay storage errors.
func cryptoError(op, key string, err error) error {
	switch {
	case errors.Is(err, crypto.ErrWrongPassword):
		return store.NewEncryptionError(op, key, store.ErrWrongPassword, err)
	case errors.Is(err, crypto.ErrEmptyPassword):
		return store.NewEncryptionError(op, key, store.ErrPasswordRequired, err)
	case errors.Is(err, crypto.ErrMalformedEnvelope):
		return store.NewEncryptionError(op, key, store.ErrMalformedEnvelope, err)
	default:
		return store.NewStorageError(op, key, err)
	}
}
