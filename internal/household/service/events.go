package service

import (
	"context"
	"log/slog"

	"govinda/internal/household/models"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
	audit "govinda/pkg/platform/audit"
	"govinda/pkg/requestcontext"
)

type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
}

func (e *auditEmitter) emit(ctx context.Context, h *models.Household, actor id.UserID, action audit.AuditEvent, member *models.HouseholdMember) error {
	event := audit.Event{
		Timestamp:     requestcontext.Now(ctx),
		TenantID:      h.TenantID,
		ActorID:       actor,
		AggregateType: audit.AggregateHousehold,
		AggregateID:   h.ID.String(),
		Action:        string(action),
		Version:       h.Version,
		RequestID:     requestcontext.RequestID(ctx),
	}
	attrs := []any{
		"log_type", "audit",
		"tenant_id", h.TenantID.String(),
		"household_id", h.ID.String(),
		"request_id", event.RequestID,
	}
	if member != nil {
		event.Reason = string(member.Role)
		event.EffectiveDate = &member.ValidFrom
		if member.ValidTo != nil {
			event.EffectiveDate = member.ValidTo
		}
		attrs = append(attrs, "person_id", member.PersonID.String())
	}

	e.logger.InfoContext(ctx, string(action), attrs...)
	if e.publisher == nil {
		return nil
	}
	if err := e.publisher.Emit(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record change event")
	}
	return nil
}
