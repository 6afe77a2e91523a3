// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "checks", []byte(`{"n":1}`)))
	require.NoError(t, s.Set(ctx, "binary", []byte{0x00, 0xFF, 0x10}))
	require.NoError(t, s.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "checks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"n":1}`), got)

	got, err = reopened.Get(ctx, "binary")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xFF, 0x10}, got)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, writeFile(path, "{not json"))

	_, err := NewFileStore(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)

	var storageErr *StorageError
	assert.True(t, errors.As(err, &storageErr))
}

func TestFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	s, err := NewBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	reopened, err := NewBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestBoltStore_ClosedIsUnavailable(t *testing.T) {
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Set(context.Background(), "k", []byte("v"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	_, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set(context.Background(), "k", nil), ErrClosed)
}

func TestPrefixedStore_Namespacing(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryStore()
	require.NoError(t, base.Set(ctx, "foreign", []byte("x")))

	s := NewPrefixedStore(base, "printchecks_")
	require.NoError(t, s.Set(ctx, "checks", []byte("1")))

	raw, err := base.Get(ctx, "printchecks_checks")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), raw)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"checks"}, keys)

	require.NoError(t, s.Clear(ctx))
	ok, err := base.Has(ctx, "foreign")
	require.NoError(t, err)
	assert.True(t, ok, "Clear must leave keys outside the namespace alone")

	ok, err = base.Has(ctx, "printchecks_checks")
	require.NoError(t, err)
	assert.False(t, ok)
}
