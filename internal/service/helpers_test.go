// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Danford/PrintChecks/internal/crypto"
	"github.com/Danford/PrintChecks/internal/events"
	"github.com/Danford/PrintChecks/internal/store"
)

var errDiskBroken = errors.New("disk broken")

// failingStore fails Set for the keys listed in failSet.
type failingStore struct {
	store.Store
	failSet map[string]bool
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet[key] {
		return errDiskBroken
	}
	return f.Store.Set(ctx, key, value)
}

// recordEvents subscribes to bus and returns the collected events.
func recordEvents(bus *events.Bus) *[]events.Event {
	var got []events.Event
	bus.Subscribe(func(e events.Event) { got = append(got, e) })
	return &got
}

func seed(t *testing.T, s store.Store, entries map[string]string) {
	t.Helper()
	for k, v := range entries {
		require.NoError(t, s.Set(context.Background(), k, []byte(v)))
	}
}

func rawValue(t *testing.T, s store.Store, key string) []byte {
	t.Helper()
	v, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

func isEnvelope(raw []byte) bool {
	return crypto.IsEncryptedEnvelope(raw)
}
