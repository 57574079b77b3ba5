package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	personmetrics "govinda/internal/person/metrics"
	"govinda/internal/person/models"
	id "govinda/pkg/domain"
	audit "govinda/pkg/platform/audit"
	"govinda/pkg/platform/paging"
	txcontext "govinda/pkg/platform/tx"
)

var tracer = otel.Tracer("govinda/internal/person/service")

// PersonStore is the persistence port for persons and their history.
// Every lookup is tenant-scoped except TenantOf.
type PersonStore interface {
	Create(ctx context.Context, p *models.Person) error
	Update(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (*models.Person, error)
	FindByAhv(ctx context.Context, tenantID id.TenantID, ahv id.AhvNumber) (*models.Person, error)
	ExistsByAhv(ctx context.Context, tenantID id.TenantID, ahv id.AhvNumber) (bool, error)
	List(ctx context.Context, tenantID id.TenantID, req paging.Request) (paging.Page[*models.Person], error)
	Search(ctx context.Context, tenantID id.TenantID, criteria models.SearchCriteria, req paging.Request) (paging.Page[*models.Person], error)
	AppendHistory(ctx context.Context, entry *models.PersonHistoryEntry) error
	ListHistory(ctx context.Context, tenantID id.TenantID, personID id.PersonID) ([]*models.PersonHistoryEntry, error)
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
	metrics        *personmetrics.Metrics
	auditPublisher AuditPublisher
	tx             StoreTx
}

type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithMetrics(m *personmetrics.Metrics) Option {
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
