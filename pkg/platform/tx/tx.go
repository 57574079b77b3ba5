package tx

import (
	"context"
	"database/sql"
)

type (
	ctxKey   struct{}
	hooksKey struct{}
)

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

type commitHooks struct {
	fns []func()
}

// WithCommitHooks returns a context collecting AfterCommit callbacks and a
// func that runs them. Transaction runners call run only after a successful commit.
func WithCommitHooks(ctx context.Context) (context.Context, func()) {
	hooks := &commitHooks{}
	run := func() {
		for _, fn := range hooks.fns {
			fn()
		}
	}
	return context.WithValue(ctx, hooksKey{}, hooks), run
}

// AfterCommit defers fn until the surrounding transaction commits. Outside a
// transaction fn runs immediately. Callbacks of rolled-back transactions never run.
func AfterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn()
}

// InTransaction reports whether ctx belongs to a running transaction of
// either runner.
func InTransaction(ctx context.Context) bool {
	if _, ok := From(ctx); ok {
		return true
	}
	_, ok := ctx.Value(hooksKey{}).(*commitHooks)
	return ok
}
