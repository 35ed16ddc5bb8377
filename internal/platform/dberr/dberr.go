// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/movielens/internal/platform/apperr"
	"github.com/taibuivan/movielens/pkg/casing"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Errors that already are an [apperr.AppError] are returned unchanged, so Wrap
// is safe to apply at every layer boundary.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations reported by PostgreSQL
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict("A record with the same key already exists", fieldOf(pgError)...)
			conflict.Cause = err
			return conflict

		case pgerrcode.ForeignKeyViolation:
			invalid := apperr.ValidationError("A referenced record does not exist", fieldOf(pgError)...)
			invalid.Cause = err
			return invalid

		case pgerrcode.NotNullViolation, pgerrcode.CheckViolation, pgerrcode.InvalidTextRepresentation, pgerrcode.NumericValueOutOfRange:
			invalid := apperr.ValidationError("A value was rejected by the database", fieldOf(pgError)...)
			invalid.Cause = err
			return invalid
		}
	}

	// 3. Everything else (connection loss, timeouts, syntax) is a storage failure
	return apperr.Storage(action, err)
}

// fieldOf names the offending column using the API naming convention.
func fieldOf(pgError *pgconn.PgError) []apperr.FieldError {
	if pgError.ColumnName == "" {
		return nil
	}

	return []apperr.FieldError{{
		Field:   casing.ToCamel(pgError.ColumnName),
		Message: pgError.Message,
	}}
}

// IsCode reports whether err is a PostgreSQL error with the given SQLSTATE.
func IsCode(err error, code string) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == code
}
