// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "time"

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// Target is the storage a Guard protects. The guard only asks whether a
// password is held; it never sees the password itself.
type Target interface {
	IsEncryptionEnabled() bool
	HasPassword() bool
	// Lock discards the held password.
	Lock()
}

// Clock is the time source of a Guard.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running and reports whether it was
	// still pending.
	Stop() bool
}
