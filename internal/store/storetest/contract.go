// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package storetest holds the behaviour every store.Backend must show,
// as a reusable test suite.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danford/PrintChecks/internal/store"
)

// Factory builds a fresh, empty backend for one subtest.
type Factory func(t *testing.T) store.Backend

// RunContract runs the store contract against backends built by factory.
func RunContract(t *testing.T, factory Factory) {
	t.Helper()

	t.Run("get absent", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, store.ErrKeyNotFound)
	})

	t.Run("set get overwrite", func(t *testing.T) {
		s := factory(t)
		defer s.Close()
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "checks", []byte(`[1]`)))
		got, err := s.Get(ctx, "checks")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[1]`), got)

		require.NoError(t, s.Set(ctx, "checks", []byte(`[1,2]`)))
		got, err = s.Get(ctx, "checks")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[1,2]`), got)
	})

	t.Run("values are copied", func(t *testing.T) {
		s := factory(t)
		defer s.Close()
		ctx := context.Background()

		in := []byte("abc")
		require.NoError(t, s.Set(ctx, "k", in))
		in[0] = 'X'

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)

		got[1] = 'Y'
		again, _ := s.Get(ctx, "k")
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("has remove", func(t *testing.T) {
		s := factory(t)
		defer s.Close()
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "vendors", []byte(`[]`)))
		ok, err := s.Has(ctx, "vendors")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, s.Remove(ctx, "vendors"))
		ok, err = s.Has(ctx, "vendors")
		require.NoError(t, err)
		assert.False(t, ok)

		// removing an absent key is not an error
		assert.NoError(t, s.Remove(ctx, "vendors"))
	})

	t.Run("keys clear", func(t *testing.T) {
		s := factory(t)
		defer s.Close()
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "b", []byte("2")))
		require.NoError(t, s.Set(ctx, "a", []byte("1")))

		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, keys)

		require.NoError(t, s.Clear(ctx))
		keys, err = s.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("get many set many", func(t *testing.T) {
		s := factory(t)
		defer s.Close()
		ctx := context.Background()

		require.NoError(t, s.SetMany(ctx, map[string][]byte{
			"checks":   []byte(`[1]`),
			"receipts": []byte(`[]`),
			"empty":    {},
		}))

		got, err := s.GetMany(ctx, []string{"checks", "receipts", "empty", "absent"})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, []byte(`[1]`), got["checks"])
		assert.Equal(t, []byte(`[]`), got["receipts"])
		assert.NotNil(t, got["empty"])
		assert.Empty(t, got["empty"])
		v, present := got["absent"]
		assert.True(t, present)
		assert.Nil(t, v)
	})
}
