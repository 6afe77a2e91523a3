// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"

	"github.com/Danford/PrintChecks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Store is the asynchronous key-value contract every storage medium
// implements. Values are opaque bytes: canonical JSON text for domain values,
// the envelope text for encrypted values, and true/false for metadata flags.
type Store interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
	Has(ctx context.Context, key string) (bool, error)

	// GetMany returns an entry for every requested key; absent keys map to
	// a nil value.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	SetMany(ctx context.Context, entries map[string][]byte) error
}

// Backend is a Store that owns an underlying resource.
type Backend interface {
	Store
	io.Closer
}

// EncryptionManager is the capability implemented by stores that can encrypt
// their contents under a password. Callers discover it with
// [AsEncryptionManager] instead of checking concrete types.
type EncryptionManager interface {
	Initialize(ctx context.Context, password string) error
	MigrateToEncrypted(ctx context.Context, password string) error
	MigrateToPlainText(ctx context.Context, password string) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	NeedsMigration(ctx context.Context) (bool, error)
	Stats(ctx context.Context) (models.StorageStats, error)
	VerifyPassword(ctx context.Context, password string) (bool, error)
	IsEncryptionEnabled() bool
	HasPassword() bool
	Lock()
}

// AsEncryptionManager reports whether s supports encryption management.
func AsEncryptionManager(s Store) (EncryptionManager, bool) {
	m, ok := s.(EncryptionManager)
	return m, ok
}

// ErrorClassificator maps driver-specific errors onto the storage error
// taxonomy.
type ErrorClassificator interface {
	// Classify returns ErrQuotaExceeded, ErrUnavailable, or nil when err
	// carries no recognised condition.
	Classify(err error) error
}
