// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/Danford/PrintChecks/internal/logger"
)

// Low-level database operation errors, wrapped inside [StorageError].
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL statement fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)

// sqlStore is the kv_entries implementation of [Backend] shared by SQLite
// and PostgreSQL. Statements differ only in placeholder format.
type sqlStore struct {
	db      *DB
	queries kvQueries
	logger  *logger.Logger
}

// NewSQLStore constructs a [Backend] over db. The schema must already be
// migrated.
func NewSQLStore(db *DB, log *logger.Logger) Backend {
	log.Debug().Str("dialect", db.dialect).Msg("creating sql key-value store")
	return &sqlStore{
		db:      db,
		queries: newKVQueries(db.dialect),
		logger:  log,
	}
}

func (s *sqlStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.queries.get(key)
	if err != nil {
		return nil, NewStorageError("get", key, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	var value []byte
	if err = s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		s.logger.Err(err).Str("func", "*sqlStore.Get").Str("key", key).Msg("error reading entry")
		return nil, NewStorageError("get", key, s.db.classify(err))
	}

	return cloneValue(value), nil
}

func (s *sqlStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.queries.upsert(key, cloneValue(value))
	if err != nil {
		return NewStorageError("set", key, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqlStore.Set").Str("key", key).Msg("error writing entry")
		return NewStorageError("set", key, s.db.classify(err))
	}

	return nil
}

func (s *sqlStore) Remove(ctx context.Context, key string) error {
	query, args, err := s.queries.remove(key)
	if err != nil {
		return NewStorageError("remove", key, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqlStore.Remove").Str("key", key).Msg("error removing entry")
		return NewStorageError("remove", key, s.db.classify(err))
	}

	return nil
}

func (s *sqlStore) Clear(ctx context.Context) error {
	query, args, err := s.queries.clear()
	if err != nil {
		return NewStorageError("clear", "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqlStore.Clear").Msg("error clearing entries")
		return NewStorageError("clear", "", s.db.classify(err))
	}

	return nil
}

func (s *sqlStore) Keys(ctx context.Context) ([]string, error) {
	query, args, err := s.queries.keys()
	if err != nil {
		return nil, NewStorageError("keys", "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	keys := make([]string, 0)
	if err = s.db.SelectContext(ctx, &keys, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqlStore.Keys").Msg("error listing keys")
		return nil, NewStorageError("keys", "", s.db.classify(err))
	}

	return keys, nil
}

func (s *sqlStore) Has(ctx context.Context, key string) (bool, error) {
	query, args, err := s.queries.has(key)
	if err != nil {
		return false, NewStorageError("has", key, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	var one int
	if err = s.db.GetContext(ctx, &one, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Err(err).Str("func", "*sqlStore.Has").Str("key", key).Msg("error checking entry")
		return false, NewStorageError("has", key, s.db.classify(err))
	}

	return true, nil
}

func (s *sqlStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args, err := s.queries.getMany(keys)
	if err != nil {
		return nil, NewStorageError("get many", "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	var rows []kvRow
	if err = s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqlStore.GetMany").Int("keys", len(keys)).Msg("error reading entries")
		return nil, NewStorageError("get many", "", s.db.classify(err))
	}

	for _, k := range keys {
		out[k] = nil
	}
	for _, row := range rows {
		out[row.Key] = cloneValue(row.Value)
	}

	return out, nil
}

// SetMany writes all entries in one transaction, in key order.
func (s *sqlStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Err(err).Str("func", "*sqlStore.SetMany").Msg("error beginning transaction")
		return NewStorageError("set many", "", fmt.Errorf("%w: %w", ErrBeginningTransaction, s.db.classify(err)))
	}
	defer tx.Rollback()

	for _, k := range keys {
		query, args, err := s.queries.upsert(k, cloneValue(entries[k]))
		if err != nil {
			return NewStorageError("set many", k, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.Err(err).Str("func", "*sqlStore.SetMany").Str("key", k).Msg("error writing entry")
			return NewStorageError("set many", k, s.db.classify(err))
		}
	}

	if err = tx.Commit(); err != nil {
		s.logger.Err(err).Str("func", "*sqlStore.SetMany").Msg("error committing transaction")
		return NewStorageError("set many", "", fmt.Errorf("%w: %w", ErrCommitingTransaction, s.db.classify(err)))
	}

	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
