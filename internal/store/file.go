// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"syscall"
)

const fileStoreVersion = 1

// fileStore persists the whole key space as one JSON document, rewritten
// atomically on every mutation. It is the durable analogue of browser
// localStorage: small, single-writer, always fully loaded.
type fileStore struct {
	path string

	mu     sync.RWMutex
	items  map[string][]byte
	closed bool
}

// persistedFile is the on-disk layout. Values are base64 through []byte.
type persistedFile struct {
	Version int               `json:"version"`
	Items   map[string][]byte `json:"items"`
}

// NewFileStore opens (or lazily creates) the JSON store at path.
func NewFileStore(path string) (Backend, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}

	s := &fileStore{
		path:  path,
		items: make(map[string][]byte),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return NewStorageError("open", "", classifyOSError(fmt.Errorf("read store file: %w", err)))
	}
	if len(data) == 0 {
		return nil
	}

	var st persistedFile
	if err = json.Unmarshal(data, &st); err != nil {
		return NewStorageError("open", "", fmt.Errorf("%w: decode store file: %w", ErrSerialization, err))
	}
	if st.Items != nil {
		s.items = st.Items
	}

	return nil
}

// persist writes the current state next to the target and renames it into
// place so a crash never leaves a truncated file behind.
func (s *fileStore) persist() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return classifyOSError(fmt.Errorf("create store dir: %w", err))
	}

	payload, err := json.Marshal(persistedFile{Version: fileStoreVersion, Items: s.items})
	if err != nil {
		return fmt.Errorf("%w: encode store: %w", ErrSerialization, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return classifyOSError(fmt.Errorf("create temp file: %w", err))
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return classifyOSError(fmt.Errorf("write store file: %w", err))
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return classifyOSError(fmt.Errorf("sync store file: %w", err))
	}
	if err = tmp.Close(); err != nil {
		return classifyOSError(fmt.Errorf("close store file: %w", err))
	}
	if err = os.Chmod(tmpName, 0o600); err != nil {
		return classifyOSError(fmt.Errorf("chmod store file: %w", err))
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		return classifyOSError(fmt.Errorf("replace store file: %w", err))
	}

	return nil
}

func (s *fileStore) Get(_ context.Context, key string) ([]byte, error) {
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

func (s *fileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("set", key, ErrClosed)
	}

	prev, had := s.items[key]
	s.items[key] = cloneValue(value)
	if err := s.persist(); err != nil {
		// keep memory consistent with what is on disk
		if had {
			s.items[key] = prev
		} else {
			delete(s.items, key)
		}
		return NewStorageError("set", key, err)
	}
	return nil
}

func (s *fileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("remove", key, ErrClosed)
	}

	prev, had := s.items[key]
	if !had {
		return nil
	}
	delete(s.items, key)
	if err := s.persist(); err != nil {
		s.items[key] = prev
		return NewStorageError("remove", key, err)
	}
	return nil
}

func (s *fileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("clear", "", ErrClosed)
	}

	prev := s.items
	s.items = make(map[string][]byte)
	if err := s.persist(); err != nil {
		s.items = prev
		return NewStorageError("clear", "", err)
	}
	return nil
}

func (s *fileStore) Keys(_ context.Context) ([]string, error) {
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

func (s *fileStore) Has(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageError("has", key, ErrClosed)
	}
	_, ok := s.items[key]
	return ok, nil
}

func (s *fileStore) GetMany(_ context.Context, keys []string) (map[string][]byte, error) {
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

func (s *fileStore) SetMany(_ context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("set many", "", ErrClosed)
	}

	prev := make(map[string][]byte, len(s.items))
	for k, v := range s.items {
		prev[k] = v
	}
	for k, v := range entries {
		s.items[k] = cloneValue(v)
	}
	if err := s.persist(); err != nil {
		s.items = prev
		return NewStorageError("set many", "", err)
	}
	return nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// classifyOSError tags out-of-space conditions with ErrQuotaExceeded.
func classifyOSError(err error) error {
	if errors.Is(err, syscall.ENOSPC) {
		return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	}
	return err
}
