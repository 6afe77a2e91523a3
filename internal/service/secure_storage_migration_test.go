// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danford/PrintChecks/internal/crypto"
	"github.com/Danford/PrintChecks/internal/events"
	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/models"
)

// ── MigrateToEncrypted ───────────────────────────────────────────────────────

func TestSecureStorage_MigrateToEncrypted(t *testing.T) {
	// Arrange
	ctx := context.Background()
	base := store.NewMemoryStore()
	seed(t, base, map[string]string{
		"vendors":            vendorsJSON,
		KeyEncryptionEnabled: "false",
	})
	bus := events.NewBus()
	got := recordEvents(bus)
	s := NewSecureStorage(base, WithEventBus(bus))

	// Act
	require.NoError(t, s.MigrateToEncrypted(ctx, "correct horse"))

	// Assert
	raw := rawValue(t, base, "vendors")
	assert.True(t, isEnvelope(raw))
	assert.Equal(t, "true", string(rawValue(t, base, KeyEncryptionEnabled)))
	assert.Equal(t, "true", string(rawValue(t, base, KeyEncryptionMigrationComplete)))

	plain, err := crypto.NewEngine().Decrypt(raw, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, vendorsJSON, string(plain))

	var check verificationPayload
	require.NoError(t, crypto.NewEngine().DecryptValue(rawValue(t, base, KeyEncryptionTest), "correct horse", &check))
	assert.True(t, check.Test)

	assert.True(t, s.IsEncryptionEnabled())
	assert.True(t, s.HasPassword())
	assert.Equal(t, []events.Event{
		{Kind: events.EncryptionToggled, Enabled: true},
		{Kind: events.PasswordSet},
	}, *got)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StorageStats{Total: 1, Encrypted: 1}, stats)
}

func TestSecureStorage_MigrateToEncrypted_Idempotent(t *testing.T) {
	ctx := context.Background()
	base := store.NewMemoryStore()
	seed(t, base, map[string]string{"vendors": vendorsJSON, "checks": checksJSON})
	s := NewSecureStorage(base)

	require.NoError(t, s.MigrateToEncrypted(ctx, "pw"))
	vendors := rawValue(t, base, "vendors")
	checks := rawValue(t, base, "checks")

	require.NoError(t, s.MigrateToEncrypted(ctx, "pw"))

	assert.Equal(t, vendors, rawValue(t, base, "vendors"))
	assert.Equal(t, checks, rawValue(t, base, "checks"))
}

func TestSecureStorage_MigrateToEncrypted_SkipsUntouchedKeys(t *testing.T) {
	ctx := context.Background()
	base := store.NewMemoryStore()
	seed(t, base, map[string]string{
		"vendors":  vendorsJSON,
		"ui_theme": `"dark"`,
		"checks":   "",
	})
	s := NewSecureStorage(base)

	require.NoError(t, s.MigrateToEncrypted(ctx, "pw"))

	assert.Equal(t, `"dark"`, string(rawValue(t, base, "ui_theme")))
	assert.Empty(t, rawValue(t, base, "checks"))
}

func TestSecureStorage_MigrateToEncrypted_PartialFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mem := store.NewMemoryStore()
	seed(t, mem, map[string]string{"vendors": vendorsJSON, "checks": checksJSON})
	base := &failingStore{Store: mem, failSet: map[string]bool{"checks": true}}
	bus := events.NewBus()
	got := recordEvents(bus)
	s := NewSecureStorage(base, WithEventBus(bus))

	// Act
	err := s.MigrateToEncrypted(ctx, "pw")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrMigrationFailure)
	assert.ErrorIs(t, err, errDiskBroken)

	var encErr *store.EncryptionError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, []string{"checks"}, encErr.Keys)

	var storageErr *store.StorageError
	assert.True(t, errors.As(err, &storageErr))

	// previous state is kept; already rewritten keys are not rolled back
	assert.False(t, s.HasPassword())
	assert.False(t, s.IsEncryptionEnabled())
	assert.True(t, isEnvelope(rawValue(t, mem, "vendors")))
	assert.Equal(t, checksJSON, string(rawValue(t, mem, "checks")))
	ok, err := mem.Has(ctx, KeyEncryptionEnabled)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, *got)

	// the mixed store is still readable with the password, and retry heals it
	base.failSet = nil
	require.NoError(t, s.MigrateToEncrypted(ctx, "pw"))
	assert.True(t, isEnvelope(rawValue(t, mem, "checks")))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StorageStats{Total: 2, Encrypted: 2}, stats)
}

func TestSecureStorage_MigrateToEncrypted_MetadataWriteFails(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	seed(t, mem, map[string]string{"vendors": vendorsJSON})
	base := &failingStore{Store: mem, failSet: map[string]bool{KeyEncryptionEnabled: true}}
	s := NewSecureStorage(base)

	err := s.MigrateToEncrypted(ctx, "pw")

	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskBroken)
	assert.False(t, s.IsEncryptionEnabled())
	assert.False(t, s.HasPassword())

	// new writes are not sealed under the password that never got persisted
	require.NoError(t, s.Set(ctx, "checks", []byte(checksJSON)))
	assert.Equal(t, checksJSON, string(rawValue(t, mem, "checks")))
}

func TestSecureStorage_MigrateToEncrypted_EmptyPassword(t *testing.T) {
	err := NewSecureStorage(store.NewMemoryStore()).MigrateToEncrypted(context.Background(), "")

	assert.ErrorIs(t, err, store.ErrPasswordRequired)
}

// ── MigrateToPlainText ───────────────────────────────────────────────────────

func TestSecureStorage_MigrateToPlainText(t *testing.T) {
	// Arrange
	ctx := context.Background()
	base := store.NewMemoryStore()
	seed(t, base, map[string]string{"vendors": vendorsJSON, "checks": checksJSON})
	holder := crypto.NewSessionKeyHolder()
	bus := events.NewBus()
	s := NewSecureStorage(base, WithKeyHolder(holder), WithEventBus(bus))
	require.NoError(t, s.MigrateToEncrypted(ctx, "pw"))
	got := recordEvents(bus)

	// Act
	require.NoError(t, s.MigrateToPlainText(ctx, "pw"))

	// Assert
	assert.Equal(t, vendorsJSON, string(rawValue(t, base, "vendors")))
	assert.Equal(t, checksJSON, string(rawValue(t, base, "checks")))
	for _, key := range metadataKeys {
		ok, err := base.Has(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
	assert.False(t, s.IsEncryptionEnabled())
	assert.False(t, s.HasPassword())
	assert.False(t, holder.Has())
	assert.Equal(t, []events.Event{
		{Kind: events.EncryptionToggled, Enabled: false},
		{Kind: events.PasswordCleared},
	}, *got)
}

func TestSecureStorage_MigrateToPlainText_WrongPassword(t *testing.T) {
	ctx := context.Background()
	base := store.NewMemoryStore()
	seed(t, base, map[string]string{"vendors": vendorsJSON})
	s := NewSecureStorage(base)
	require.NoError(t, s.MigrateToEncrypted(ctx, "pw"))
	before := rawValue(t, base, "vendors")

	err := s.MigrateToPlainText(ctx, "other")

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrMigrationFailure)
	assert.ErrorIs(t, err, store.ErrWrongPassword)
	assert.True(t, s.IsEncryptionEnabled())
	assert.True(t, s.HasPassword())
	assert.Equal(t, before, rawValue(t, base, "vendors"))
	assert.Equal(t, "true", string(rawValue(t, base, KeyEncryptionEnabled)))
}

func TestSecureStorage_MigrateToPlainText_EmptyPassword(t *testing.T) {
	err := NewSecureStorage(store.NewMemoryStore()).MigrateToPlainText(context.Background(), "")

	assert.ErrorIs(t, err, store.ErrPasswordRequired)
}

// ── ChangePassword ───────────────────────────────────────────────────────────

func TestSecureStorage_ChangePassword(t *testing.T) {
	// Arrange
	ctx := context.Background()
	engine := crypto.NewEngine()
	base := store.NewMemoryStore()
	original := map[string]string{"vendors": vendorsJSON, "checks": checksJSON}
	seed(t, base, original)
	holder := crypto.NewSessionKeyHolder()
	s := NewSecureStorage(base, WithKeyHolder(holder))
	require.NoError(t, s.MigrateToEncrypted(ctx, "old"))

	// Act
	require.NoError(t, s.ChangePassword(ctx, "old", "new"))

	// Assert
	for key, want := range original {
		raw := rawValue(t, base, key)

		_, err := engine.Decrypt(raw, "old")
		assert.ErrorIs(t, err, crypto.ErrWrongPassword, key)

		plain, err := engine.Decrypt(raw, "new")
		require.NoError(t, err, key)
		assert.Equal(t, want, string(plain))
	}

	ok, err := s.VerifyPassword(ctx, "new")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.VerifyPassword(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	held, _ := holder.Load()
	assert.Equal(t, "new", held)
}

func TestSecureStorage_ChangePassword_Errors(t *testing.T) {
	ctx := context.Background()
	base := store.NewMemoryStore()
	seed(t, base, map[string]string{"vendors": vendorsJSON})
	s := NewSecureStorage(base)
	require.NoError(t, s.MigrateToEncrypted(ctx, "old"))
	before := rawValue(t, base, "vendors")

	assert.ErrorIs(t, s.ChangePassword(ctx, "", "new"), store.ErrPasswordRequired)
	assert.ErrorIs(t, s.ChangePassword(ctx, "old", ""), store.ErrPasswordRequired)

	err := s.ChangePassword(ctx, "wrong", "new")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrWrongPassword)
	assert.Equal(t, before, rawValue(t, base, "vendors"))
}

// ── NeedsMigration / VerifyPassword / Stats ─────────────────────────────────

func TestSecureStorage_NeedsMigration(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		want    bool
	}{
		{name: "empty store", entries: map[string]string{}, want: false},
		{name: "disabled", entries: map[string]string{"vendors": vendorsJSON}, want: false},
		{
			name:    "enabled with plaintext",
			entries: map[string]string{KeyEncryptionEnabled: "true", "vendors": vendorsJSON},
			want:    true,
		},
		{
			name: "enabled and complete",
			entries: map[string]string{
				KeyEncryptionEnabled:           "true",
				KeyEncryptionMigrationComplete: "true",
				"vendors":                      vendorsJSON,
			},
			want: false,
		},
		{
			name:    "enabled, only non-sensitive plaintext",
			entries: map[string]string{KeyEncryptionEnabled: "true", "ui_theme": `"dark"`},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := store.NewMemoryStore()
			seed(t, base, tt.entries)

			got, err := NewSecureStorage(base).NeedsMigration(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSecureStorage_VerifyPassword_WithoutTestEnvelope(t *testing.T) {
	ctx := context.Background()
	base := store.NewMemoryStore()
	s := NewSecureStorage(base)

	ok, err := s.VerifyPassword(ctx, "anything")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.VerifyPassword(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	seed(t, base, map[string]string{KeyEncryptionEnabled: "true"})
	ok, err = s.VerifyPassword(ctx, "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSecureStorage_Stats_Mixed(t *testing.T) {
	ctx := context.Background()
	sealed, err := crypto.NewEngine().Encrypt([]byte(checksJSON), "pw")
	require.NoError(t, err)

	base := store.NewMemoryStore()
	seed(t, base, map[string]string{
		"vendors":            vendorsJSON,
		"checks":             string(sealed),
		"receipts":           "",
		"ui_theme":           `"dark"`,
		KeyEncryptionEnabled: "true",
	})

	stats, err := NewSecureStorage(base).Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, models.StorageStats{Total: 2, Encrypted: 1, PlainText: 1}, stats)
}
