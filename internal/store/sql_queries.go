// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/Danford/PrintChecks/migrations"
)

const (
	kvTable       = "kv_entries"
	kvKeyColumn   = "entry_key"
	kvValueColumn = "entry_value"
	kvTimeColumn  = "updated_at"

	// upsertSuffix is understood by both PostgreSQL and SQLite >= 3.24.
	upsertSuffix = "ON CONFLICT (" + kvKeyColumn + ") DO UPDATE SET " +
		kvValueColumn + " = excluded." + kvValueColumn + ", " +
		kvTimeColumn + " = excluded." + kvTimeColumn
)

// kvRow is one row of kv_entries as scanned by sqlx.
type kvRow struct {
	Key   string `db:"entry_key"`
	Value []byte `db:"entry_value"`
}

// kvQueries builds the key-value statements with the placeholder format of
// the dialect ($n for PostgreSQL, ? for SQLite).
type kvQueries struct {
	sb sq.StatementBuilderType
}

func newKVQueries(dialect string) kvQueries {
	var format sq.PlaceholderFormat = sq.Question
	if dialect == migrations.DialectPostgres {
		format = sq.Dollar
	}
	return kvQueries{sb: sq.StatementBuilder.PlaceholderFormat(format)}
}

func (q kvQueries) get(key string) (string, []any, error) {
	return q.sb.Select(kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
}

func (q kvQueries) getMany(keys []string) (string, []any, error) {
	return q.sb.Select(kvKeyColumn, kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: keys}).
		ToSql()
}

func (q kvQueries) has(key string) (string, []any, error) {
	return q.sb.Select("1").
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		Limit(1).
		ToSql()
}

func (q kvQueries) keys() (string, []any, error) {
	return q.sb.Select(kvKeyColumn).
		From(kvTable).
		OrderBy(kvKeyColumn).
		ToSql()
}

func (q kvQueries) upsert(key string, value []byte) (string, []any, error) {
	return q.sb.Insert(kvTable).
		Columns(kvKeyColumn, kvValueColumn, kvTimeColumn).
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix(upsertSuffix).
		ToSql()
}

func (q kvQueries) remove(key string) (string, []any, error) {
	return q.sb.Delete(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
}

func (q kvQueries) clear() (string, []any, error) {
	return q.sb.Delete(kvTable).ToSql()
}
