// Package worker relays change events from the outbox to the event stream.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	audit "govinda/pkg/platform/audit"
	"govinda/pkg/platform/circuit"
)

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
)

// Outbox is the store side of the relay.
type Outbox interface {
	ProcessPending(ctx context.Context, limit int, publish audit.PublishFunc) (int, error)
	CountPending(ctx context.Context) (int, error)
}

// Producer delivers a batch of entries and returns the ids it delivered.
type Producer interface {
	Publish(ctx context.Context, entries []audit.OutboxEntry) ([]uuid.UUID, error)
}

// ErrCircuitOpen is returned by ProcessBatch while the producer is considered down.
var ErrCircuitOpen = errors.New("outbox relay circuit open")

// Relay polls the outbox and publishes pending entries. Entries stay pending
// until the producer acknowledges them, so delivery is at-least-once.
type Relay struct {
	outbox    Outbox
	producer  Producer
	breaker   *circuit.Breaker
	logger    *slog.Logger
	metrics   *Metrics
	interval  time.Duration
	batchSize int
	// probeEvery is the number of skipped ticks after which an open
	// circuit lets one batch through.
	probeEvery int
	skipped    int
}

type Option func(*Relay)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Relay) {
		r.metrics = m
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(r *Relay) {
		if b != nil {
			r.breaker = b
		}
	}
}

func New(outbox Outbox, producer Producer, opts ...Option) *Relay {
	r := &Relay{
		outbox:     outbox,
		producer:   producer,
		breaker:    circuit.New("outbox-relay"),
		logger:     slog.Default(),
		interval:   defaultInterval,
		batchSize:  defaultBatchSize,
		probeEvery: 5,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run publishes batches every interval until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.InfoContext(ctx, "outbox relay started",
		"interval", r.interval.String(),
		"batch_size", r.batchSize,
	)
	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "outbox relay stopped")
			return nil
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Relay) tick(ctx context.Context) {
	for {
		n, err := r.ProcessBatch(ctx)
		if err != nil {
			if !errors.Is(err, ErrCircuitOpen) && ctx.Err() == nil {
				r.logger.WarnContext(ctx, "outbox relay batch failed", "error", err)
			}
			break
		}
		if n < r.batchSize {
			break
		}
	}
	if r.metrics != nil {
		if pending, err := r.outbox.CountPending(ctx); err == nil {
			r.metrics.SetPending(pending)
		}
	}
}

// ProcessBatch publishes at most one batch and returns how many entries were delivered.
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	if r.breaker.IsOpen() {
		r.skipped++
		if r.skipped < r.probeEvery {
			return 0, ErrCircuitOpen
		}
		r.skipped = 0
	}

	start := time.Now()
	n, err := r.outbox.ProcessPending(ctx, r.batchSize, r.producer.Publish)
	if r.metrics != nil {
		r.metrics.ObserveBatchDuration(start)
		r.metrics.AddPublished(n)
	}
	if err != nil {
		if _, change := r.breaker.RecordFailure(); change.Opened {
			r.logger.ErrorContext(ctx, "outbox relay circuit opened", "breaker", r.breaker.Name(), "error", err)
			r.setBreakerState()
		}
		if r.metrics != nil {
			r.metrics.IncPublishFailures()
		}
		return n, err
	}
	if _, change := r.breaker.RecordSuccess(); change.Closed {
		r.logger.InfoContext(ctx, "outbox relay circuit closed", "breaker", r.breaker.Name())
		r.setBreakerState()
	}
	return n, nil
}

func (r *Relay) setBreakerState() {
	if r.metrics != nil {
		r.metrics.SetCircuitBreakerState(r.breaker.IsOpen())
	}
}
