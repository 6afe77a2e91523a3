// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/Danford/PrintChecks/models"
)

// Parameters pinned by envelope version "1.0". Changing any of them requires a
// new version string; Decrypt always uses the set matching the envelope.
const (
	EnvelopeVersion         = "1.0"
	KeyDerivationIterations = 100000
	KeySize                 = 32 // AES-256
	SaltSize                = 16
	IVSize                  = 12
)

// envelopeEngine is the private implementation of [Engine].
type envelopeEngine struct {
	// random is the source for salts and IVs. Always crypto/rand outside tests.
	random io.Reader
}

// NewEngine constructs an [Engine] backed by PBKDF2-HMAC-SHA256 and
// AES-256-GCM with the version "1.0" parameters.
func NewEngine() Engine {
	return &envelopeEngine{random: rand.Reader}
}

// Encrypt implements [Engine].
func (e *envelopeEngine) Encrypt(plaintext []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	// 1. Fresh salt and IV for every envelope
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(e.random, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(e.random, iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}

	// 2. Derive the key and build AES-GCM
	gcm, err := newGCM(deriveKey(password, salt))
	if err != nil {
		return nil, err
	}

	// 3. Seal and package
	ciphertext := gcm.Seal(nil, iv, plaintext, nil)
	envelope, err := json.Marshal(models.Envelope{
		Encrypted: true,
		Version:   EnvelopeVersion,
		Salt:      encodeBase64(salt),
		IV:        encodeBase64(iv),
		Data:      encodeBase64(ciphertext),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	return envelope, nil
}

// Decrypt implements [Engine].
func (e *envelopeEngine) Decrypt(envelope []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	env, err := parseEnvelope(envelope)
	if err != nil {
		return nil, err
	}
	if env.Version != EnvelopeVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, env.Version)
	}

	salt, err := decodeBase64(env.Salt)
	if err != nil || len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: invalid salt", ErrMalformedEnvelope)
	}
	iv, err := decodeBase64(env.IV)
	if err != nil || len(iv) != IVSize {
		return nil, fmt.Errorf("%w: invalid iv", ErrMalformedEnvelope)
	}
	ciphertext, err := decodeBase64(env.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid data", ErrMalformedEnvelope)
	}

	gcm, err := newGCM(deriveKey(password, salt))
	if err != nil {
		return nil, err
	}

	// The auth tag covers the whole ciphertext; failure means the derived key
	// differs from the one used to seal, i.e. the password is wrong (or the
	// ciphertext was altered, which is indistinguishable here).
	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPassword
	}

	return plaintext, nil
}

// EncryptValue implements [Engine].
func (e *envelopeEngine) EncryptValue(value any, password string) ([]byte, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}

	return e.Encrypt(plaintext, password)
}

// DecryptValue implements [Engine].
func (e *envelopeEngine) DecryptValue(envelope []byte, password string, target any) error {
	plaintext, err := e.Decrypt(envelope, password)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}

	return nil
}

// IsEncryptedEnvelope implements [Engine].
func (e *envelopeEngine) IsEncryptedEnvelope(raw []byte) bool {
	return IsEncryptedEnvelope(raw)
}

// VerifyPassword implements [Engine].
func (e *envelopeEngine) VerifyPassword(envelope []byte, password string) bool {
	_, err := e.Decrypt(envelope, password)
	return err == nil
}

// IsEncryptedEnvelope is the stateless format sniffer behind
// [Engine.IsEncryptedEnvelope]. It is exported for callers that only need to
// classify raw values (stats, diagnostics) without an engine instance.
func IsEncryptedEnvelope(raw []byte) bool {
	_, err := parseEnvelope(raw)
	return err == nil
}

func parseEnvelope(raw []byte) (models.Envelope, error) {
	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}

	if !env.Encrypted || env.Version == "" || env.Salt == "" || env.IV == "" || env.Data == "" {
		return models.Envelope{}, fmt.Errorf("%w: missing required field", ErrMalformedEnvelope)
	}

	return env, nil
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, KeyDerivationIterations, KeySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
