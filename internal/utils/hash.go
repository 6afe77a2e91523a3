// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader carries the hex HMAC-SHA256 of a request or response body
// between the remote store client and server.
const HashHeader = "HashSHA256"

// Hasher computes keyed HMAC-SHA256 digests. It keeps a pool of hash
// instances so that hashing every request body does not allocate a new HMAC
// each time.
//
// A nil *Hasher is valid and means "integrity checking disabled": Enabled
// reports false and Verify accepts everything.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher for key, or nil when key is empty.
//
// Example usage:
//
//	hasher := utils.NewHasher(cfg.HashKey)
//	req.Header.Set(utils.HashHeader, hasher.SumHex(body))
func NewHasher(key string) *Hasher {
	if key == "" {
		return nil
	}
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, []byte(key))
			},
		},
	}
}

// Enabled reports whether h carries a key.
func (h *Hasher) Enabled() bool {
	return h != nil
}

// Sum returns the raw HMAC-SHA256 digest of data.
func (h *Hasher) Sum(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()

	mac.Write(data)
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// SumHex returns the hex encoded digest of data, or "" on a nil Hasher.
func (h *Hasher) SumHex(data []byte) string {
	if h == nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(data))
}

// Verify reports whether sumHex is the digest of data. Comparison is
// constant time. A nil Hasher accepts any input.
func (h *Hasher) Verify(data []byte, sumHex string) bool {
	if h == nil {
		return true
	}
	want, err := hex.DecodeString(sumHex)
	if err != nil {
		return false
	}
	return hmac.Equal(h.Sum(data), want)
}

// HashString computes an HMAC-SHA256 over data with hashKey and returns it
// hex encoded. It creates a new HMAC on each call and suits one-off use.
func HashString(data string, hashKey string) string {
	mac := hmac.New(sha256.New, []byte(hashKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
