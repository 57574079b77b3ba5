package tx

import (
	"context"
	"sync"
)

// Snapshotter is implemented by in-memory stores that take part in a
// MemoryRunner transaction. Snapshot returns a func restoring the captured state.
type Snapshotter interface {
	Snapshot() func()
}

// MemoryRunner gives in-memory stores all-or-nothing semantics: transactions
// are serialized, and when fn fails every participant is restored to the
// state it had before fn ran.
type MemoryRunner struct {
	mu           sync.Mutex
	participants []Snapshotter
}

func NewMemoryRunner(participants ...Snapshotter) *MemoryRunner {
	return &MemoryRunner{participants: participants}
}

func (r *MemoryRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	restores := make([]func(), 0, len(r.participants))
	for _, p := range r.participants {
		restores = append(restores, p.Snapshot())
	}

	txCtx, runHooks := WithCommitHooks(ctx)
	if err := fn(txCtx); err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		return err
	}
	runHooks()
	return nil
}
