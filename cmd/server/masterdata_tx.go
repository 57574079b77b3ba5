package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dErrors "govinda/pkg/domain-errors"
	txcontext "govinda/pkg/platform/tx"
)

const defaultMasterdataTxTimeout = 5 * time.Second

// masterdataPostgresTx runs one service mutation in a SQL transaction. Stores
// pick the transaction up from the context passed to fn.
type masterdataPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newMasterdataPostgresTx(db *sql.DB) *masterdataPostgresTx {
	return &masterdataPostgresTx{db: db}
}

func (t *masterdataPostgresTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultMasterdataTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	txCtx, runHooks := txcontext.WithCommitHooks(txcontext.WithTx(ctx, tx))
	if err := fn(txCtx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction timed out")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	runHooks()
	return nil
}
