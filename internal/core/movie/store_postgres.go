// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movie provides the PostgreSQL implementation of the catalogue store.

Reads join the core row with its YouTube trailer, English abstract and
category. Writes run inside [postgres.WithTx]: every owned row is written
sequentially on the transaction's connection so that a failure at any step
rolls back a bounded, ordered set of statements.

Money columns are NUMERIC in the database and cross the driver as text
(::text on read, ::text::numeric on write) so no precision is lost.
*/
package movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/movielens/internal/platform/apperr"
	"github.com/taibuivan/movielens/internal/platform/ctxutil"
	"github.com/taibuivan/movielens/internal/platform/database/schema"
	"github.com/taibuivan/movielens/internal/platform/dberr"
	"github.com/taibuivan/movielens/internal/platform/postgres"
	"github.com/taibuivan/movielens/pkg/pagination"
)

// # PostgreSQL Repository

// repository implements the [Store] interface using pgx.
type repository struct {
	db postgres.DB
}

// NewRepository constructs a PostgreSQL backed movie store on the shared pool.
func NewRepository(db postgres.DB) Store {
	return &repository{db: db}
}

// fail classifies a storage error and logs it at the point of origin.
// Not-found outcomes are expected and are not logged.
func (repository *repository) fail(context context.Context, operation string, err error) error {
	wrapped := dberr.Wrap(err, operation)
	if isNotFound(wrapped) {
		return wrapped
	}

	ctxutil.GetLogger(context).ErrorContext(context, "movie_store_failed",
		slog.String("operation", operation),
		slog.Any("error", err),
	)
	return wrapped
}

// isNotFound reports whether err is a driver or domain not-found outcome.
func isNotFound(err error) bool {
	return errors.Is(err, dberr.ErrNotFound) || errors.Is(err, ErrNotFound)
}

/*
orderBy renders the ORDER BY clause of a movie listing.

Description: The resolver leaves the column unchecked, so it is resolved here
against the known movies columns before being spliced into SQL. The primary
key, then the joined trailer and category ids, break ties so that a movie
spanning several joined rows keeps the same row order on every page.

Returns:
  - string: e.g. "m.name DESC, m.id ASC, t.trailer_id ASC, c.id ASC"
  - error: ValidationError for an unknown column
*/
func orderBy(page pagination.Resolved) (string, error) {
	key := page.Column
	if key == "" {
		key = pagination.DefaultColumn
	}

	column, ok := schema.Movies.SortColumn(key)
	if !ok {
		return "", apperr.ValidationError("Invalid pagination parameters", apperr.FieldError{
			Field:   pagination.ParamSort,
			Message: fmt.Sprintf("Unknown sort column %q", page.Column),
		})
	}

	direction := pagination.Asc
	if page.Direction == pagination.Desc {
		direction = pagination.Desc
	}

	clause := fmt.Sprintf("m.%s %s", column, direction)
	if column != schema.Movies.ID {
		clause += fmt.Sprintf(", m.%s ASC", schema.Movies.ID)
	}
	return clause + joinedRowOrder, nil
}
