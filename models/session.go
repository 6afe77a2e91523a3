// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SessionState is a point-in-time snapshot of an inactivity guard.
// It is transient and rebuilt on every process load.
type SessionState struct {
	LastActivity  time.Time `json:"last_activity"`
	WarningActive bool      `json:"warning_active"`
	Locked        bool      `json:"locked"`
}
