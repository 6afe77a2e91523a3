// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"
	"strings"
)

// prefixedStore namespaces every key of an underlying store so that several
// applications can share one medium. Keys, Clear and GetMany only see the
// namespaced part of the key space.
type prefixedStore struct {
	base   Store
	prefix string
}

// NewPrefixedStore wraps base so that every key is stored as prefix+key.
// Close is forwarded to base when it implements io.Closer.
func NewPrefixedStore(base Store, prefix string) Backend {
	return &prefixedStore{base: base, prefix: prefix}
}

func (s *prefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.base.Get(ctx, s.prefix+key)
}

func (s *prefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.base.Set(ctx, s.prefix+key, value)
}

func (s *prefixedStore) Remove(ctx context.Context, key string) error {
	return s.base.Remove(ctx, s.prefix+key)
}

// Clear removes only the namespaced keys.
func (s *prefixedStore) Clear(ctx context.Context) error {
	if s.prefix == "" {
		return s.base.Clear(ctx)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err = s.base.Remove(ctx, s.prefix+k); err != nil {
			return err
		}
	}
	return nil
}

func (s *prefixedStore) Keys(ctx context.Context) ([]string, error) {
	all, err := s.base.Keys(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(all))
	for _, k := range all {
		if rest, ok := strings.CutPrefix(k, s.prefix); ok {
			keys = append(keys, rest)
		}
	}
	return keys, nil
}

func (s *prefixedStore) Has(ctx context.Context, key string) (bool, error) {
	return s.base.Has(ctx, s.prefix+key)
}

func (s *prefixedStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}

	values, err := s.base.GetMany(ctx, full)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(keys))
	for i, k := range keys {
		out[k] = values[full[i]]
	}
	return out, nil
}

func (s *prefixedStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	full := make(map[string][]byte, len(entries))
	for k, v := range entries {
		full[s.prefix+k] = v
	}
	return s.base.SetMany(ctx, full)
}

func (s *prefixedStore) Close() error {
	if c, ok := s.base.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
