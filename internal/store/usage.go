// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Danford/PrintChecks/models"
)

// Usage reports how many keys s holds and how many bytes keys and values
// take together.
func Usage(ctx context.Context, s Store) (models.UsageStats, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return models.UsageStats{}, err
	}

	values, err := s.GetMany(ctx, keys)
	if err != nil {
		return models.UsageStats{}, err
	}

	stats := models.UsageStats{Keys: len(keys)}
	for _, k := range keys {
		stats.UsedBytes += int64(len(k) + len(values[k]))
	}
	return stats, nil
}

// GetJSON reads key and unmarshals its JSON value into a T. The boolean is
// false when the key is absent.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T

	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}

	if err = json.Unmarshal(raw, &out); err != nil {
		return out, false, NewStorageError("get", key, fmt.Errorf("%w: %w", ErrSerialization, err))
	}
	return out, true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return NewStorageError("set", key, fmt.Errorf("%w: %w", ErrSerialization, err))
	}
	return s.Set(ctx, key, raw)
}
