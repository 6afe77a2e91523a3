// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StorageStats is a diagnostic breakdown of the sensitive keys currently
// present in a store.
type StorageStats struct {
	Total     int `json:"total"`
	Encrypted int `json:"encrypted"`
	PlainText int `json:"plain_text"`
}

// UsageStats reports how much raw space a store is using.
// UsedBytes counts key and value lengths as stored.
type UsageStats struct {
	Keys      int   `json:"keys"`
	UsedBytes int64 `json:"used_bytes"`
}
