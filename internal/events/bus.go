// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events carries cross-component signals of the storage layer:
// password set or cleared, encryption toggled, and the session guard's
// warning and lock.
package events

import (
	"sync"
	"time"
)

// Kind identifies an event.
type Kind int

const (
	// PasswordSet is published when a password becomes held.
	PasswordSet Kind = iota + 1
	// PasswordCleared is published when the held password is discarded.
	PasswordCleared
	// EncryptionToggled is published after a migration completes.
	EncryptionToggled
	// SessionWarning is published when the inactivity warning starts.
	SessionWarning
	// SessionLocked is published when the session guard locks.
	SessionLocked
)

func (k Kind) String() string {
	switch k {
	case PasswordSet:
		return "password-set"
	case PasswordCleared:
		return "password-cleared"
	case EncryptionToggled:
		return "encryption-toggled"
	case SessionWarning:
		return "session-warning"
	case SessionLocked:
		return "session-locked"
	default:
		return "unknown"
	}
}

// Event is one signal. Enabled is meaningful for EncryptionToggled,
// Deadline for SessionWarning.
type Event struct {
	Kind     Kind
	Enabled  bool
	Deadline time.Time
}

// Handler receives events.
type Handler func(Event)

// Bus delivers every published event to all current subscribers,
// synchronously, in subscription order. Handlers run outside the bus lock
// and may publish or (un)subscribe themselves.
//
// The zero value is ready to use.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers []subscription
}

type subscription struct {
	id uint64
	fn Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is idempotent.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.handlers {
		if s.id == id {
			// copy so that an in-flight Publish keeps its snapshot intact
			next := make([]subscription, 0, len(b.handlers)-1)
			next = append(next, b.handlers[:i]...)
			b.handlers = append(next, b.handlers[i+1:]...)
			return
		}
	}
}

// Publish delivers e to a snapshot of the current subscribers.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	snapshot := b.handlers
	b.mu.RUnlock()

	for _, s := range snapshot {
		s.fn(e)
	}
}

// Len reports the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.handlers)
}
