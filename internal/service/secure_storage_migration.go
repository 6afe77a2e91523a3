// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Danford/PrintChecks/internal/events"
	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/models"
)

// transformFunc rewrites one raw value. skip reports that the value is
// already in the target form.
type transformFunc func(raw []byte) (out []byte, skip bool, err error)

// rewrite applies fn to every selected key and stores the result. It never
// stops early: failed keys are collected and reported together, and keys
// already rewritten stay rewritten.
func (s *SecureStorage) rewrite(ctx context.Context, op string, selectKey func(string) bool, fn transformFunc) (changed int, err error) {
	keys, err := s.base.Keys(ctx)
	if err != nil {
		return 0, storageError(op, "", err)
	}

	var (
		failed []string
		causes []error
	)
	for _, key := range keys {
		if IsMetadataKey(key) || !selectKey(key) {
			continue
		}

		raw, err := s.base.Get(ctx, key)
		if errors.Is(err, store.ErrKeyNotFound) {
			continue
		}
		if err == nil && len(raw) == 0 {
			continue
		}

		var (
			out  []byte
			skip bool
		)
		if err == nil {
			out, skip, err = fn(raw)
		}
		if err == nil && !skip {
			err = s.base.Set(ctx, key, out)
		}
		if err != nil {
			s.logger.Err(err).Str("func", "SecureStorage.rewrite").Str("op", op).Str("key", key).Msg("failed to rewrite key")
			failed = append(failed, key)
			causes = append(causes, fmt.Errorf("%s: %w", key, err))
			continue
		}
		if !skip {
			changed++
		}
	}

	if len(failed) > 0 {
		return changed, store.NewEncryptionError(op, "", store.ErrMigrationFailure, errors.Join(causes...), failed...)
	}
	return changed, nil
}

// MigrateToEncrypted encrypts every plaintext sensitive value under password.
// Running it again when nothing is left to encrypt succeeds and leaves
// existing envelopes untouched.
//
// On any per-key failure the previous password and enabled state are kept
// and the error lists the failed keys; keys already encrypted stay encrypted.
// On success the enabled and migration-complete flags and the verification
// envelope are written.
func (s *SecureStorage) MigrateToEncrypted(ctx context.Context, password string) error {
	const op = "migrate to encrypted"
	if password == "" {
		return store.NewEncryptionError(op, "", store.ErrPasswordRequired, nil)
	}

	s.bulkMu.Lock()
	defer s.bulkMu.Unlock()

	prevPassword, prevEnabled := s.state()
	// Writes racing with the migration must already be encrypted.
	s.setState(password, true)

	changed, err := s.rewrite(ctx, op, s.sensitive.has, func(raw []byte) ([]byte, bool, error) {
		if s.engine.IsEncryptedEnvelope(raw) {
			return nil, true, nil
		}
		out, err := s.engine.Encrypt(raw, password)
		return out, false, err
	})
	if err != nil {
		s.setState(prevPassword, prevEnabled)
		return err
	}

	if err = s.writeMetadata(ctx, op, password); err != nil {
		s.setState(prevPassword, prevEnabled)
		return err
	}
	s.keyHolder.Store(password)

	s.logger.Info().Str("func", "SecureStorage.MigrateToEncrypted").Int("changed", changed).Msg("encryption enabled")
	s.publish(events.Event{Kind: events.EncryptionToggled, Enabled: true})
	s.publish(events.Event{Kind: events.PasswordSet})
	return nil
}

func (s *SecureStorage) writeMetadata(ctx context.Context, op, password string) error {
	if err := s.base.Set(ctx, KeyEncryptionEnabled, []byte(flagTrue)); err != nil {
		return storageError(op, KeyEncryptionEnabled, err)
	}
	if err := s.base.Set(ctx, KeyEncryptionMigrationComplete, []byte(flagTrue)); err != nil {
		return storageError(op, KeyEncryptionMigrationComplete, err)
	}
	return s.writeVerification(ctx, op, password)
}

func (s *SecureStorage) writeVerification(ctx context.Context, op, password string) error {
	envelope, err := s.engine.EncryptValue(verificationPayload{Test: true}, password)
	if err != nil {
		return cryptoError(op, KeyEncryptionTest, err)
	}
	return storageError(op, KeyEncryptionTest, s.base.Set(ctx, KeyEncryptionTest, envelope))
}

// MigrateToPlainText decrypts every encrypted value with password and stores
// the plaintext. All non-metadata keys are visited, not only the sensitive
// ones, so values encrypted under an older key set are recovered as well.
//
// On success encryption is disabled, the password is discarded and the three
// metadata keys are removed.
func (s *SecureStorage) MigrateToPlainText(ctx context.Context, password string) error {
	const op = "migrate to plaintext"
	if password == "" {
		return store.NewEncryptionError(op, "", store.ErrPasswordRequired, nil)
	}

	s.bulkMu.Lock()
	defer s.bulkMu.Unlock()

	changed, err := s.rewrite(ctx, op, func(string) bool { return true }, func(raw []byte) ([]byte, bool, error) {
		if !s.engine.IsEncryptedEnvelope(raw) {
			return nil, true, nil
		}
		out, err := s.engine.Decrypt(raw, password)
		if err != nil {
			return nil, false, cryptoError(op, "", err)
		}
		return out, false, nil
	})
	if err != nil {
		return err
	}

	s.setState("", false)
	s.keyHolder.Clear()

	for _, key := range metadataKeys {
		if err = s.base.Remove(ctx, key); err != nil && !errors.Is(err, store.ErrKeyNotFound) {
			return storageError(op, key, err)
		}
	}

	s.logger.Info().Str("func", "SecureStorage.MigrateToPlainText").Int("changed", changed).Msg("encryption disabled")
	s.publish(events.Event{Kind: events.EncryptionToggled, Enabled: false})
	s.publish(events.Event{Kind: events.PasswordCleared})
	return nil
}

// ChangePassword re-encrypts every encrypted sensitive value from
// oldPassword to newPassword. When a verification envelope exists,
// oldPassword must open it. Per-key failures are collected as in migration;
// nothing is rolled back. On success newPassword becomes the held password
// and the verification envelope is rewritten under it.
func (s *SecureStorage) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	const op = "change password"
	if oldPassword == "" || newPassword == "" {
		return store.NewEncryptionError(op, "", store.ErrPasswordRequired, nil)
	}

	s.bulkMu.Lock()
	defer s.bulkMu.Unlock()

	if err := s.checkVerification(ctx, op, oldPassword); err != nil {
		return err
	}

	changed, err := s.rewrite(ctx, op, s.sensitive.has, func(raw []byte) ([]byte, bool, error) {
		if !s.engine.IsEncryptedEnvelope(raw) {
			return nil, true, nil
		}
		plain, err := s.engine.Decrypt(raw, oldPassword)
		if err != nil {
			return nil, false, cryptoError(op, "", err)
		}
		out, err := s.engine.Encrypt(plain, newPassword)
		return out, false, err
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.password = newPassword
	s.mu.Unlock()
	s.keyHolder.Store(newPassword)

	if err = s.writeVerification(ctx, op, newPassword); err != nil {
		return err
	}

	s.logger.Info().Str("func", "SecureStorage.ChangePassword").Int("changed", changed).Msg("password changed")
	s.publish(events.Event{Kind: events.PasswordSet})
	return nil
}

// checkVerification fails with store.ErrWrongPassword when a verification
// envelope exists and password does not open it.
func (s *SecureStorage) checkVerification(ctx context.Context, op, password string) error {
	raw, err := s.base.Get(ctx, KeyEncryptionTest)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return storageError(op, KeyEncryptionTest, err)
	}
	if !s.engine.VerifyPassword(raw, password) {
		return store.NewEncryptionError(op, "", store.ErrWrongPassword, nil)
	}
	return nil
}

// VerifyPassword reports whether password opens the verification envelope.
// Without one, any password is accepted only while the store does not have
// encryption enabled.
func (s *SecureStorage) VerifyPassword(ctx context.Context, password string) (bool, error) {
	const op = "verify password"
	if password == "" {
		return false, nil
	}

	raw, err := s.base.Get(ctx, KeyEncryptionTest)
	if errors.Is(err, store.ErrKeyNotFound) {
		enabled, err := s.readFlag(ctx, KeyEncryptionEnabled)
		if err != nil {
			return false, storageError(op, KeyEncryptionEnabled, err)
		}
		return !enabled, nil
	}
	if err != nil {
		return false, storageError(op, KeyEncryptionTest, err)
	}
	return s.engine.VerifyPassword(raw, password), nil
}

// NeedsMigration reports whether the store has encryption enabled, has not
// recorded a completed migration, and still holds a plaintext sensitive
// value.
func (s *SecureStorage) NeedsMigration(ctx context.Context) (bool, error) {
	const op = "needs migration"

	enabled, err := s.readFlag(ctx, KeyEncryptionEnabled)
	if err != nil {
		return false, storageError(op, KeyEncryptionEnabled, err)
	}
	if !enabled {
		return false, nil
	}

	complete, err := s.readFlag(ctx, KeyEncryptionMigrationComplete)
	if err != nil {
		return false, storageError(op, KeyEncryptionMigrationComplete, err)
	}
	if complete {
		return false, nil
	}

	for _, key := range s.sensitive.sorted() {
		raw, err := s.base.Get(ctx, key)
		if errors.Is(err, store.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return false, storageError(op, key, err)
		}
		if len(raw) > 0 && !s.engine.IsEncryptedEnvelope(raw) {
			return true, nil
		}
	}
	return false, nil
}

// Stats counts the non-empty sensitive values by representation.
func (s *SecureStorage) Stats(ctx context.Context) (models.StorageStats, error) {
	const op = "stats"

	keys, err := s.base.Keys(ctx)
	if err != nil {
		return models.StorageStats{}, storageError(op, "", err)
	}

	var stats models.StorageStats
	for _, key := range keys {
		if !s.sensitive.has(key) {
			continue
		}
		raw, err := s.base.Get(ctx, key)
		if errors.Is(err, store.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return models.StorageStats{}, storageError(op, key, err)
		}
		if len(raw) == 0 {
			continue
		}

		stats.Total++
		if s.engine.IsEncryptedEnvelope(raw) {
			stats.Encrypted++
		} else {
			stats.PlainText++
		}
	}
	return stats, nil
}
