// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "slices"

// Bookkeeping keys written by [SecureStorage]. Their values are the plain
// text "true"/"false" (or, for KeyEncryptionTest, an envelope) and they are
// never passed through the crypto engine on Get or Set.
const (
	KeyEncryptionEnabled           = "encryption_enabled"
	KeyEncryptionTest              = "encryption_test"
	KeyEncryptionMigrationComplete = "encryption_migration_complete"
)

var metadataKeys = []string{
	KeyEncryptionEnabled,
	KeyEncryptionTest,
	KeyEncryptionMigrationComplete,
}

const flagTrue = "true"

// IsMetadataKey reports whether key is one of the bookkeeping keys.
func IsMetadataKey(key string) bool {
	return slices.Contains(metadataKeys, key)
}

// sensitiveSet is the set of keys whose values are encrypted while encryption
// is enabled. Metadata keys are never members.
type sensitiveSet map[string]struct{}

func newSensitiveSet(keys []string) sensitiveSet {
	set := make(sensitiveSet, len(keys))
	for _, k := range keys {
		if k == "" || IsMetadataKey(k) {
			continue
		}
		set[k] = struct{}{}
	}
	return set
}

func (s sensitiveSet) has(key string) bool {
	_, ok := s[key]
	return ok
}

// sorted returns the members in a stable order.
func (s sensitiveSet) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// verificationPayload is the fixed plaintext sealed under KeyEncryptionTest.
type verificationPayload struct {
	Test bool `json:"test"`
}
