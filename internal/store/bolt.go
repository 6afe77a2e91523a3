// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"go.etcd.io/bbolt"
)

// boltBucket holds every entry.
var boltBucket = []byte("kv")

const boltOpenTimeout = time.Second

// boltStore is a [Backend] on a single bbolt file. bbolt serialises writers
// itself and gives each read a consistent snapshot.
type boltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the bbolt database at path.
func NewBoltStore(path string) (Backend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, NewStorageError("open", "", fmt.Errorf("create bolt dir: %w", err))
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, NewStorageError("open", "", classifyBoltError(err))
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, NewStorageError("open", "", classifyBoltError(err))
	}

	return &boltStore{db: db}, nil
}

func (s *boltStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v == nil {
			return ErrKeyNotFound
		}
		// v is only valid inside the transaction
		value = cloneValue(v)
		return nil
	})
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, NewStorageError("get", key, classifyBoltError(err))
	}
	return value, nil
}

func (s *boltStore) Set(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), cloneValue(value))
	})
	return NewStorageError("set", key, classifyBoltError(err))
}

func (s *boltStore) Remove(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	})
	return NewStorageError("remove", key, classifyBoltError(err))
}

func (s *boltStore) Clear(_ context.Context) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(boltBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(boltBucket)
		return err
	})
	return NewStorageError("clear", "", classifyBoltError(err))
}

func (s *boltStore) Keys(_ context.Context) ([]string, error) {
	keys := make([]string, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		// bbolt iterates in byte order
		return tx.Bucket(boltBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, NewStorageError("keys", "", classifyBoltError(err))
	}
	return keys, nil
}

func (s *boltStore) Has(_ context.Context, key string) (bool, error) {
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		ok = tx.Bucket(boltBucket).Get([]byte(key)) != nil
		return nil
	})
	if err != nil {
		return false, NewStorageError("has", key, classifyBoltError(err))
	}
	return ok, nil
}

func (s *boltStore) GetMany(_ context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucket)
		for _, k := range keys {
			if v := b.Get([]byte(k)); v != nil {
				out[k] = cloneValue(v)
			} else {
				out[k] = nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, NewStorageError("get many", "", classifyBoltError(err))
	}
	return out, nil
}

// SetMany writes all entries in one bbolt transaction.
func (s *boltStore) SetMany(_ context.Context, entries map[string][]byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucket)
		for k, v := range entries {
			if err := b.Put([]byte(k), cloneValue(v)); err != nil {
				return fmt.Errorf("put %q: %w", k, err)
			}
		}
		return nil
	})
	return NewStorageError("set many", "", classifyBoltError(err))
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

func classifyBoltError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bbolt.ErrTimeout), errors.Is(err, bbolt.ErrDatabaseNotOpen):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	case errors.Is(err, syscall.ENOSPC):
		return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	default:
		return err
	}
}
