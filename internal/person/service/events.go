package service

import (
	"context"
	"log/slog"
	"time"

	"govinda/internal/person/models"
	dErrors "govinda/pkg/domain-errors"
	audit "govinda/pkg/platform/audit"
	"govinda/pkg/requestcontext"
)

// auditEmitter writes person change events. Emission is fail-closed: a
// publisher error aborts the surrounding transaction.
type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
}

func newAuditEmitter(logger *slog.Logger, publisher AuditPublisher) *auditEmitter {
	return &auditEmitter{logger: logger, publisher: publisher}
}

func (e *auditEmitter) emit(ctx context.Context, p *models.Person, action audit.AuditEvent, reason string, effectiveDate *time.Time) error {
	event := audit.Event{
		Timestamp:     requestcontext.Now(ctx),
		TenantID:      p.TenantID,
		ActorID:       p.UpdatedBy,
		AggregateType: audit.AggregatePerson,
		AggregateID:   p.ID.String(),
		Action:        string(action),
		Version:       p.Version,
		Reason:        reason,
		EffectiveDate: effectiveDate,
		SubjectHash:   audit.HashSubject(p.TenantID, p.AhvNumber.Unformatted()),
		RequestID:     requestcontext.RequestID(ctx),
	}

	e.logger.InfoContext(ctx, string(action),
		"log_type", "audit",
		"tenant_id", p.TenantID.String(),
		"person_id", p.ID.String(),
		"request_id", event.RequestID,
	)
	if e.publisher == nil {
		return nil
	}
	if err := e.publisher.Emit(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record change event")
	}
	return nil
}

func (e *auditEmitter) emitPersonCreated(ctx context.Context, p *models.Person) error {
	return e.emit(ctx, p, audit.EventPersonCreated, "", nil)
}

func (e *auditEmitter) emitPersonUpdated(ctx context.Context, p *models.Person) error {
	return e.emit(ctx, p, audit.EventPersonUpdated, "", nil)
}

func (e *auditEmitter) emitNameChanged(ctx context.Context, p *models.Person, reason string, effectiveDate time.Time) error {
	return e.emit(ctx, p, audit.EventPersonNameChanged, reason, &effectiveDate)
}

func (e *auditEmitter) emitMaritalStatusChanged(ctx context.Context, p *models.Person, reason string, effectiveDate time.Time) error {
	return e.emit(ctx, p, audit.EventMaritalStatusChanged, reason, &effectiveDate)
}

func (e *auditEmitter) emitAddressAdded(ctx context.Context, p *models.Person, a *models.Address) error {
	return e.emit(ctx, p, audit.EventAddressAdded, "", &a.ValidFrom)
}

func (e *auditEmitter) emitAddressClosed(ctx context.Context, p *models.Person, a *models.Address) error {
	return e.emit(ctx, p, audit.EventAddressClosed, "", a.ValidTo)
}
