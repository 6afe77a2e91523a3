// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_engine_mock.go -package=mock

// Engine is the stateless password-based envelope encryption used by the
// secure storage layer. It knows nothing about stores, keys or sessions.
//
// Envelope format (version "1.0"):
//
//	{"encrypted":true,"version":"1.0","salt":<b64>,"iv":<b64>,"data":<b64>}
//
// Key = PBKDF2-HMAC-SHA256(password, salt, 100000 iterations, 32 bytes)
// Data = AES-256-GCM(key, iv, plaintext)
type Engine interface {
	// Encrypt seals plaintext under password and returns the envelope text.
	// A fresh salt and IV are drawn for every call.
	Encrypt(plaintext []byte, password string) ([]byte, error)

	// Decrypt opens an envelope produced by Encrypt. It returns
	// ErrMalformedEnvelope when the envelope is structurally invalid and
	// ErrWrongPassword when GCM authentication fails.
	Decrypt(envelope []byte, password string) ([]byte, error)

	// EncryptValue serializes value to JSON and encrypts the result.
	EncryptValue(value any, password string) ([]byte, error)

	// DecryptValue decrypts envelope and unmarshals the plaintext JSON into
	// target, which must be a non-nil pointer.
	DecryptValue(envelope []byte, password string, target any) error

	// IsEncryptedEnvelope reports whether raw parses as an envelope carrying
	// encrypted:true and all four required fields. It never fails; anything
	// else is legacy plaintext.
	IsEncryptedEnvelope(raw []byte) bool

	// VerifyPassword reports whether password opens envelope.
	VerifyPassword(envelope []byte, password string) bool
}
