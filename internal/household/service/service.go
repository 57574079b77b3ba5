package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	householdmetrics "govinda/internal/household/metrics"
	"govinda/internal/household/models"
	id "govinda/pkg/domain"
	audit "govinda/pkg/platform/audit"
	"govinda/pkg/platform/paging"
	txcontext "govinda/pkg/platform/tx"
)

var tracer = otel.Tracer("govinda/internal/household/service")

// HouseholdStore is the persistence port for households and memberships.
type HouseholdStore interface {
	Create(ctx context.Context, h *models.Household) error
	Update(ctx context.Context, h *models.Household) error
	FindByID(ctx context.Context, tenantID id.TenantID, householdID id.HouseholdID) (*models.Household, error)
	FindByPerson(ctx context.Context, tenantID id.TenantID, personID id.PersonID, today time.Time) (*models.Household, error)
	List(ctx context.Context, tenantID id.TenantID, req paging.Request) (paging.Page[*models.Household], error)
	Delete(ctx context.Context, tenantID id.TenantID, householdID id.HouseholdID, version int64) error
}

// PersonLookup resolves the owning tenant of a person regardless of the
// caller's tenant.
type PersonLookup interface {
	TenantOf(ctx context.Context, personID id.PersonID) (id.TenantID, error)
}

// StoreTx runs fn inside one transaction. Stores read the transaction from txCtx.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// AuditPublisher persists change events inside the caller's transaction.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type serviceConfig struct {
	logger         *slog.Logger
	metrics        *householdmetrics.Metrics
	auditPublisher AuditPublisher
	tx             StoreTx
}

type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithMetrics(m *householdmetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(c *serviceConfig) {
		c.auditPublisher = publisher
	}
}

// WithTx sets the transaction runner and is required for SQL-backed stores.
// Without it mutations run in a MemoryRunner that only rolls back the store
// and publisher when they are in-memory snapshotters.
func WithTx(tx StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = tx
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// defaultTx enlists every candidate that can snapshot itself in a
// MemoryRunner when no runner was configured.
func defaultTx(tx StoreTx, candidates ...any) StoreTx {
	if tx != nil {
		return tx
	}
	var participants []txcontext.Snapshotter
	for _, c := range candidates {
		if s, ok := c.(txcontext.Snapshotter); ok {
			participants = append(participants, s)
		}
	}
	return txcontext.NewMemoryRunner(participants...)
}
