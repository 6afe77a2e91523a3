// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Wire types of the remote key-value API. Values travel as standard base64
// ([]byte JSON encoding); an absent value is null.

// KeysResponse is the body of GET /api/kv.
type KeysResponse struct {
	Keys []string `json:"keys"`
}

// BatchGetRequest is the body of POST /api/kv/batch/get.
type BatchGetRequest struct {
	Keys []string `json:"keys"`
}

// BatchEntries is the body of PUT /api/kv/batch and the reply of
// POST /api/kv/batch/get.
type BatchEntries struct {
	Entries map[string][]byte `json:"entries"`
}
