// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"
	"sync"
)

// memoryStore keeps values in a process-local map. It backs tests and the
// "memory" backend.
type memoryStore struct {
	mu     sync.RWMutex
	items  map[string][]byte
	closed bool
}

// NewMemoryStore returns an empty in-memory [Backend].
func NewMemoryStore() Backend {
	return &memoryStore{items: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("get", key, ErrClosed)
	}
	v, ok := s.items[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return cloneValue(v), nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("set", key, ErrClosed)
	}
	s.items[key] = cloneValue(value)
	return nil
}

func (s *memoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("remove", key, ErrClosed)
	}
	delete(s.items, key)
	return nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("clear", "", ErrClosed)
	}
	clear(s.items)
	return nil
}

func (s *memoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("keys", "", ErrClosed)
	}
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *memoryStore) Has(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageError("has", key, ErrClosed)
	}
	_, ok := s.items[key]
	return ok, nil
}

func (s *memoryStore) GetMany(_ context.Context, keys []string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("get many", "", ErrClosed)
	}
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := s.items[k]; ok {
			out[k] = cloneValue(v)
		} else {
			out[k] = nil
		}
	}
	return out, nil
}

func (s *memoryStore) SetMany(_ context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("set many", "", ErrClosed)
	}
	for k, v := range entries {
		s.items[k] = cloneValue(v)
	}
	return nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.items = nil
	return nil
}

// cloneValue copies v, keeping empty values non-nil so that a stored empty
// value stays distinguishable from an absent one in GetMany.
func cloneValue(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
