// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/movielens/internal/platform/apperr"
	"github.com/taibuivan/movielens/internal/platform/dberr"
)

// rollbackTimeout bounds the rollback issued after a failed step.
const rollbackTimeout = 5 * time.Second

/*
WithTx runs fn inside a single transaction: Begin, fn, Commit.

Description: Any error returned by fn (or by Commit) triggers an explicit
Rollback before the error is returned, so no partial write is ever visible.
The rollback runs on a context detached from the caller's cancellation, which
keeps it working when the request deadline is what made fn fail.

Error mapping:
  - Begin failure: [apperr.Storage].
  - Already classified errors (NotFound, Conflict, ValidationError) are
    returned unchanged after the rollback.
  - Any other failure: [apperr.TransactionAborted] carrying the cause.

Parameters:
  - ctx: context.Context
  - db: DB (pool or mock)
  - logger: *slog.Logger (rollback events)
  - operation: string (name used in logs and error messages)
  - fn: func(pgx.Tx) error (the ordered statements)
*/
func WithTx(ctx context.Context, db DB, logger *slog.Logger, operation string, fn func(transaction pgx.Tx) error) (err error) {

	// Open the transaction on a dedicated pool connection
	transaction, err := db.Begin(ctx)
	if err != nil {
		return apperr.Storage(operation, err)
	}

	// A panic inside fn must not leak an open transaction back to the pool
	defer func() {
		if recovered := recover(); recovered != nil {
			rollback(ctx, transaction, logger, operation)
			panic(recovered)
		}
	}()

	// Apply the statements
	if err := fn(transaction); err != nil {
		rollback(ctx, transaction, logger, operation)
		return abortError(operation, err)
	}

	// Commit
	if err := transaction.Commit(ctx); err != nil {
		rollback(ctx, transaction, logger, operation)
		return apperr.TransactionAborted(operation, err)
	}

	return nil
}

// rollback issues an explicit ROLLBACK and logs its outcome.
func rollback(ctx context.Context, transaction pgx.Tx, logger *slog.Logger, operation string) {
	rollbackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	if err := transaction.Rollback(rollbackCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Error("transaction_rollback_failed",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return
	}

	logger.Warn("transaction_rolled_back", slog.String("operation", operation))
}

// abortError classifies a failure raised inside the transaction.
func abortError(operation string, err error) error {
	wrapped := dberr.Wrap(err, operation)
	if apperr.HasCode(wrapped, apperr.CodeStorage) {
		return apperr.TransactionAborted(operation, err)
	}
	return wrapped
}
