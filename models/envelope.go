// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Envelope is the self-describing, persisted form of one encrypted value.
//
// Every binary field (salt, IV, ciphertext) is standard base64. A fresh salt
// and a fresh IV are generated for every encryption, so two envelopes are
// never byte-identical even for identical inputs.
type Envelope struct {
	// Encrypted is the explicit marker distinguishing an envelope from
	// arbitrary plaintext JSON that happens to share some field names.
	Encrypted bool `json:"encrypted"`
	// Version pins the algorithm and KDF parameter set ("1.0").
	Version string `json:"version"`
	// Salt is the base64 PBKDF2 salt (16 bytes decoded).
	Salt string `json:"salt"`
	// IV is the base64 AES-GCM nonce (12 bytes decoded).
	IV string `json:"iv"`
	// Data is the base64 AES-GCM ciphertext including the auth tag.
	Data string `json:"data"`
}
