// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"strconv"
	"strings"
)

// Conditions a backend may report. Callers match them with [errors.Is].
var (
	// ErrKeyNotFound is returned by Get when no value is stored under the key.
	// It is the normal "absent" answer, not a failure of the medium.
	ErrKeyNotFound = errors.New("key not found")

	// ErrQuotaExceeded is wrapped when the medium is out of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrUnavailable is wrapped when the medium cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrSerialization is wrapped when a value cannot be encoded or decoded.
	ErrSerialization = errors.New("serialization failure")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("storage is closed")

	// ErrUnsupportedBackend is returned by [New] for an unknown backend name.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)

// Kinds carried by [EncryptionError].
var (
	// ErrPasswordMissing means an encrypted value was read while no
	// password is held.
	ErrPasswordMissing = errors.New("encryption password not set")

	// ErrPasswordRequired means an operation was called with an empty
	// password argument.
	ErrPasswordRequired = errors.New("password is required")

	// ErrWrongPassword means authentication of an envelope failed.
	ErrWrongPassword = errors.New("wrong password")

	// ErrMalformedEnvelope means a value looked encrypted but could not be
	// parsed as an envelope.
	ErrMalformedEnvelope = errors.New("malformed encrypted value")

	// ErrMigrationFailure means one or more keys failed during a migration
	// or password rotation. The keys are listed on the error.
	ErrMigrationFailure = errors.New("migration failed")

	// ErrTooManyAttempts means unlock attempts are being throttled.
	ErrTooManyAttempts = errors.New("too many unlock attempts")
)

// StorageError reports a failure of the underlying medium.
type StorageError struct {
	Op  string
	Key string
	Err error
}

// NewStorageError wraps err, returning nil when err is nil.
func NewStorageError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	var sb strings.Builder
	sb.WriteString("storage ")
	sb.WriteString(e.Op)
	if e.Key != "" {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(e.Key))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *StorageError) Unwrap() error { return e.Err }

// EncryptionError is the encryption-specific refinement of [StorageError].
// errors.As with a **StorageError target succeeds on it, and errors.Is
// matches both its Kind and the wrapped cause.
type EncryptionError struct {
	StorageError
	Kind error
	// Keys lists the offending keys of a failed migration or rotation.
	Keys []string
}

// NewEncryptionError builds an EncryptionError of the given kind.
func NewEncryptionError(op, key string, kind, cause error, keys ...string) *EncryptionError {
	return &EncryptionError{
		StorageError: StorageError{Op: op, Key: key, Err: cause},
		Kind:         kind,
		Keys:         keys,
	}
}

func (e *EncryptionError) Error() string {
	var sb strings.Builder
	sb.WriteString("encryption ")
	sb.WriteString(e.Op)
	if e.Key != "" {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(e.Key))
	}
	if e.Kind != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Kind.Error())
	}
	if len(e.Keys) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(e.Keys, ", "))
		sb.WriteByte(']')
	}
	if e.Err != nil && e.Err != e.Kind {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *EncryptionError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// As lets callers that only know about StorageError catch encryption
// failures too.
func (e *EncryptionError) As(target any) bool {
	if t, ok := target.(**StorageError); ok {
		*t = &e.StorageError
		return true
	}
	return false
}

// IsEncryptionError reports whether err is or wraps an [EncryptionError].
func IsEncryptionError(err error) bool {
	var encErr *EncryptionError
	return errors.As(err, &encErr)
}
