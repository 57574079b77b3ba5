// Package compliance provides a fail-closed publisher for master-data change events.
//
// Publisher writes events to the outbox synchronously, inside the caller's
// transaction. If the write fails an error is returned and the calling
// operation MUST fail, so no mutation is ever committed without its event.
package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	audit "govinda/pkg/platform/audit"
	txcontext "govinda/pkg/platform/tx"
	"govinda/pkg/requestcontext"
)

// Publisher emits change events with fail-closed semantics.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New creates a compliance publisher.
// The store must be outbox-backed for guaranteed delivery.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit validates event, fills in the timestamp, category and request id,
// and appends it to the outbox in the caller's transaction. A returned error
// means the calling mutation must roll back.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	start := time.Now()
	if err := validate(event); err != nil {
		return err
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx).UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	event.Category = audit.AuditEvent(event.Action).Category()

	if err := p.store.Append(ctx, event); err != nil {
		if p.metrics != nil {
			p.metrics.IncPersistFailures()
		}
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "change event not persisted, mutation rolls back",
				"action", event.Action,
				"aggregate_type", event.AggregateType,
				"aggregate_id", event.AggregateID,
				"tenant_id", event.TenantID.String(),
				"request_id", event.RequestID,
				"error", err,
			)
		}
		return fmt.Errorf("persist %s event for %s %s: %w", event.Action, event.AggregateType, event.AggregateID, err)
	}

	if p.metrics != nil {
		p.metrics.ObservePersistDuration(time.Since(start).Seconds())
		p.metrics.IncEventsEmitted(event.Category)
	}
	return nil
}

func validate(event audit.Event) error {
	switch {
	case event.TenantID.IsNil():
		return errors.New("change event requires TenantID")
	case event.Action == "":
		return errors.New("change event requires Action")
	case event.AggregateType == "":
		return errors.New("change event requires AggregateType")
	case event.AggregateID == "":
		return errors.New("change event requires AggregateID")
	}
	return nil
}

// Snapshot enlists the underlying store in a MemoryRunner. Stores that
// cannot snapshot restore nothing.
func (p *Publisher) Snapshot() func() {
	if s, ok := p.store.(txcontext.Snapshotter); ok {
		return s.Snapshot()
	}
	return func() {}
}
