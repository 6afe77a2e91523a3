// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	// Attempt to unwrap to a pgconn.PgError.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	// The server was never reached.
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return ErrUnavailable
	}

	return classifyDriverError(err)
}

// ClassifyPgError maps a *pgconn.PgError onto the storage taxonomy based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
//
// Quota codes:
//   - Class 53: insufficient resources (53100 disk full, 53200 out of memory)
//   - Class 54: program limit exceeded (54000)
//
// Unavailable codes:
//   - Class 08: connection exceptions
//   - 53300 too many connections
//   - Class 57: operator intervention (57P01, 57P02, 57P03)
//
// Any other code yields nil.
func ClassifyPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	// Class 53 / 54: out of space
	case pgerrcode.DiskFull, // 53100
		pgerrcode.OutOfMemory,          // 53200
		pgerrcode.ProgramLimitExceeded: // 54000
		return ErrQuotaExceeded

	// Class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.SQLClientUnableToEstablishSQLConnection,
		pgerrcode.SQLServerRejectedEstablishmentOfSQLConnection:
		return ErrUnavailable

	// Class 53 / 57: server refuses work
	case pgerrcode.TooManyConnections, // 53300
		pgerrcode.AdminShutdown,    // 57P01
		pgerrcode.CrashShutdown,    // 57P02
		pgerrcode.CannotConnectNow: // 57P03
		return ErrUnavailable
	}

	return nil
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. SQLITE_FULL is a quota
// condition; busy, locked and cannot-open are unavailability.
func (c *SQLiteErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrFull:
			return ErrQuotaExceeded
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
			return ErrUnavailable
		}
		return nil
	}

	return classifyDriverError(err)
}

// classifyDriverError recognises the database/sql level connection errors
// shared by every driver.
func classifyDriverError(err error) error {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return ErrUnavailable
	}
	return nil
}
