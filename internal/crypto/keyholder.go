// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"sync"

	"github.com/awnumar/memguard"
)

// SessionKeyHolder is the volatile mirror of the active password. It lives for
// the lifetime of the process, so a UI that tears down and rebuilds its state
// (after an inactivity lock, for instance) can restore the session without
// asking again. The password is kept sealed in a memguard Enclave and is only
// decrypted for the duration of Load.
//
// The zero value is ready to use.
type SessionKeyHolder struct {
	mu      sync.Mutex
	enclave *memguard.Enclave
}

// NewSessionKeyHolder returns an empty holder.
func NewSessionKeyHolder() *SessionKeyHolder {
	return &SessionKeyHolder{}
}

// Store replaces the held password. An empty password clears the holder.
func (h *SessionKeyHolder) Store(password string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if password == "" {
		h.enclave = nil
		return
	}

	// NewBufferFromBytes wipes its argument, which here is a private copy.
	h.enclave = memguard.NewBufferFromBytes([]byte(password)).Seal()
}

// Load returns the held password, if any.
func (h *SessionKeyHolder) Load() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.enclave == nil {
		return "", false
	}

	buf, err := h.enclave.Open()
	if err != nil {
		return "", false
	}
	defer buf.Destroy()

	return string(buf.Bytes()), true
}

// Has reports whether a password is held.
func (h *SessionKeyHolder) Has() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.enclave != nil
}

// Clear drops the held password.
func (h *SessionKeyHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.enclave = nil
}
