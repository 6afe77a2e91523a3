// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/Danford/PrintChecks/internal/store"
)

// Get returns the value of key, decrypting it when it is an envelope.
// Metadata keys are returned without consulting the engine. Decrypting
// without a held password fails with store.ErrPasswordMissing.
func (s *SecureStorage) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.base.Get(ctx, key)
	if err != nil {
		return nil, storageError("get", key, err)
	}
	return s.decode(key, raw)
}

// decode turns a raw stored value into the value callers see.
func (s *SecureStorage) decode(key string, raw []byte) ([]byte, error) {
	const op = "get"
	if IsMetadataKey(key) || !s.engine.IsEncryptedEnvelope(raw) {
		return raw, nil
	}

	password := s.heldPassword()
	if password == "" {
		return nil, store.NewEncryptionError(op, key, store.ErrPasswordMissing, nil)
	}

	plain, err := s.engine.Decrypt(raw, password)
	if err != nil {
		s.logger.Err(err).Str("func", "SecureStorage.Get").Str("key", key).Msg("failed to decrypt value")
		return nil, cryptoError(op, key, err)
	}
	return plain, nil
}

// Set stores value under key. It is encrypted when encryption is enabled,
// key is sensitive and a password is held; otherwise it is stored as is.
func (s *SecureStorage) Set(ctx context.Context, key string, value []byte) error {
	encoded, err := s.encode(key, value)
	if err != nil {
		return err
	}
	return storageError("set", key, s.base.Set(ctx, key, encoded))
}

// encode turns a caller value into what is persisted.
func (s *SecureStorage) encode(key string, value []byte) ([]byte, error) {
	if IsMetadataKey(key) || !s.sensitive.has(key) {
		return value, nil
	}

	password, enabled := s.state()
	if !enabled || password == "" {
		return value, nil
	}

	envelope, err := s.engine.Encrypt(value, password)
	if err != nil {
		s.logger.Err(err).Str("func", "SecureStorage.Set").Str("key", key).Msg("failed to encrypt value")
		return nil, cryptoError("set", key, err)
	}
	return envelope, nil
}

// Remove implements store.Store.
func (s *SecureStorage) Remove(ctx context.Context, key string) error {
	return storageError("remove", key, s.base.Remove(ctx, key))
}

// Clear implements store.Store. Metadata keys are removed too; the in-memory
// encryption state is left as it is.
func (s *SecureStorage) Clear(ctx context.Context) error {
	return storageError("clear", "", s.base.Clear(ctx))
}

// Keys implements store.Store.
func (s *SecureStorage) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.base.Keys(ctx)
	if err != nil {
		return nil, storageError("keys", "", err)
	}
	return keys, nil
}

// Has implements store.Store.
func (s *SecureStorage) Has(ctx context.Context, key string) (bool, error) {
	ok, err := s.base.Has(ctx, key)
	if err != nil {
		return false, storageError("has", key, err)
	}
	return ok, nil
}

// GetMany fetches keys in one round trip and decodes each value. The first
// decoding failure fails the call.
func (s *SecureStorage) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	raw, err := s.base.GetMany(ctx, keys)
	if err != nil {
		return nil, storageError("get many", "", err)
	}

	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		v := raw[key]
		if v == nil {
			out[key] = nil
			continue
		}
		if out[key], err = s.decode(key, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SetMany encodes every entry, writes the ones that encoded, and reports all
// per-key failures joined into one error.
func (s *SecureStorage) SetMany(ctx context.Context, entries map[string][]byte) error {
	encoded := make(map[string][]byte, len(entries))
	var errs []error
	for key, value := range entries {
		v, err := s.encode(key, value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		encoded[key] = v
	}

	if len(encoded) > 0 {
		if err := s.base.SetMany(ctx, encoded); err != nil {
			errs = append(errs, storageError("set many", "", err))
		}
	}
	return errors.Join(errs...)
}
