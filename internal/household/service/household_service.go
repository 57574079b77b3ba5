package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	householdmetrics "govinda/internal/household/metrics"
	"govinda/internal/household/models"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
	audit "govinda/pkg/platform/audit"
	"govinda/pkg/platform/paging"
	"govinda/pkg/platform/sentinel"
	"govinda/pkg/requestcontext"
)

// HouseholdService manages households and their memberships. Every mutation
// writes the household and its change event in one transaction.
type HouseholdService struct {
	households   HouseholdStore
	persons      PersonLookup
	auditEmitter *auditEmitter
	logger       *slog.Logger
	metrics      *householdmetrics.Metrics
	tx           StoreTx
}

func NewHouseholdService(households HouseholdStore, persons PersonLookup, opts ...Option) *HouseholdService {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HouseholdService{
		households:   households,
		persons:      persons,
		auditEmitter: &auditEmitter{logger: logger, publisher: cfg.auditPublisher},
		logger:       logger,
		metrics:      cfg.metrics,
		tx:           defaultTx(cfg.tx, households, cfg.auditPublisher),
	}
}

func spanAttrs(tenantID id.TenantID, householdID id.HouseholdID) trace.SpanStartOption {
	attrs := []attribute.KeyValue{attribute.String("tenant_id", tenantID.String())}
	if !householdID.IsNil() {
		attrs = append(attrs, attribute.String("household_id", householdID.String()))
	}
	return trace.WithAttributes(attrs...)
}

func (s *HouseholdService) CreateHousehold(ctx context.Context, cmd CreateHouseholdCommand) (h *models.Household, err error) {
	ctx, span := tracer.Start(ctx, "household.CreateHousehold", spanAttrs(cmd.TenantID, id.HouseholdID{}))
	defer func() { endSpan(span, err) }()
	defer s.observeMutation(time.Now())

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		household, err := models.NewHousehold(id.NewHouseholdID(), cmd.TenantID, cmd.Name, requestcontext.Now(txCtx))
		if err != nil {
			return asValidation(err)
		}
		if err := s.households.Create(txCtx, household); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeDuplicate, "household already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create household")
		}
		if err := s.auditEmitter.emit(txCtx, household, cmd.UserID, audit.EventHouseholdCreated, nil); err != nil {
			return err
		}
		h = household
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementHouseholdsCreated()
	}
	return h, nil
}

func (s *HouseholdService) GetHousehold(ctx context.Context, tenantID id.TenantID, householdID id.HouseholdID) (h *models.Household, err error) {
	ctx, span := tracer.Start(ctx, "household.GetHousehold", spanAttrs(tenantID, householdID))
	defer func() { endSpan(span, err) }()

	h, err = s.households.FindByID(ctx, tenantID, householdID)
	if err != nil {
		return nil, wrapHouseholdErr(err, "load household")
	}
	return h, nil
}

func (s *HouseholdService) ListHouseholds(ctx context.Context, tenantID id.TenantID, req paging.Request) (page paging.Page[*models.Household], err error) {
	ctx, span := tracer.Start(ctx, "household.ListHouseholds", spanAttrs(tenantID, id.HouseholdID{}))
	defer func() { endSpan(span, err) }()

	page, err = s.households.List(ctx, tenantID, req.Normalize())
	if err != nil {
		return paging.Page[*models.Household]{}, wrapHouseholdErr(err, "list households")
	}
	return page, nil
}

// GetHouseholdForPerson returns the household in which the person holds a
// membership current today.
func (s *HouseholdService) GetHouseholdForPerson(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (h *models.Household, err error) {
	ctx, span := tracer.Start(ctx, "household.GetHouseholdForPerson", spanAttrs(tenantID, id.HouseholdID{}),
		trace.WithAttributes(attribute.String("person_id", personID.String())))
	defer func() { endSpan(span, err) }()

	h, err = s.households.FindByPerson(ctx, tenantID, personID, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "no active household for person: %s", personID)
		}
		return nil, wrapHouseholdErr(err, "load household")
	}
	return h, nil
}

// RenameHousehold changes the household name. Memberships are untouched.
func (s *HouseholdService) RenameHousehold(ctx context.Context, cmd RenameHouseholdCommand) (*models.Household, error) {
	return s.mutate(ctx, "household.RenameHousehold", cmd.TenantID, cmd.HouseholdID, cmd.ExpectedVersion,
		func(txCtx context.Context, h *models.Household, now time.Time) error {
			if err := h.Rename(cmd.Name, now); err != nil {
				return asValidation(err)
			}
			if err := s.households.Update(txCtx, h); err != nil {
				return wrapHouseholdErr(err, "save household")
			}
			return s.auditEmitter.emit(txCtx, h, cmd.UserID, audit.EventHouseholdRenamed, nil)
		})
}

// AddMember adds an existing person of the same tenant to the household from
// ValidFrom, today when unset.
func (s *HouseholdService) AddMember(ctx context.Context, cmd AddMemberCommand) (*models.Household, *models.HouseholdMember, error) {
	var added *models.HouseholdMember
	h, err := s.mutate(ctx, "household.AddMember", cmd.TenantID, cmd.HouseholdID, cmd.ExpectedVersion,
		func(txCtx context.Context, h *models.Household, now time.Time) error {
			if err := s.checkPerson(txCtx, cmd.TenantID, cmd.PersonID); err != nil {
				return err
			}
			validFrom := cmd.ValidFrom
			if validFrom.IsZero() {
				validFrom = now
			}
			member, err := h.AddMember(cmd.PersonID, cmd.Role, validFrom, now)
			if err != nil {
				return asValidation(err)
			}
			if err := s.households.Update(txCtx, h); err != nil {
				return wrapHouseholdErr(err, "save household member")
			}
			added = member
			return s.auditEmitter.emit(txCtx, h, cmd.UserID, audit.EventHouseholdMemberAdded, member)
		})
	if err != nil {
		return nil, nil, err
	}
	s.incrementMemberChange("added")
	return h, added, nil
}

// checkPerson verifies the person exists and belongs to tenantID.
func (s *HouseholdService) checkPerson(ctx context.Context, tenantID id.TenantID, personID id.PersonID) error {
	owner, err := s.persons.TenantOf(ctx, personID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "person not found: %s", personID)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}
	if owner != tenantID {
		s.logger.WarnContext(ctx, "cross-tenant household member rejected",
			"tenant_id", tenantID.String(),
			"person_id", personID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return dErrors.New(dErrors.CodeTenantAccess, "person belongs to another tenant")
	}
	return nil
}

// RemoveMember ends the person's current membership on ValidTo, today when unset.
func (s *HouseholdService) RemoveMember(ctx context.Context, cmd RemoveMemberCommand) (*models.Household, error) {
	h, err := s.mutate(ctx, "household.RemoveMember", cmd.TenantID, cmd.HouseholdID, cmd.ExpectedVersion,
		func(txCtx context.Context, h *models.Household, now time.Time) error {
			validTo := cmd.ValidTo
			if validTo.IsZero() {
				validTo = now
			}
			member, err := h.RemoveMember(cmd.PersonID, validTo, now)
			if err != nil {
				return asValidation(err)
			}
			if err := s.households.Update(txCtx, h); err != nil {
				return wrapHouseholdErr(err, "save household member")
			}
			return s.auditEmitter.emit(txCtx, h, cmd.UserID, audit.EventHouseholdMemberRemoved, member)
		})
	if err != nil {
		return nil, err
	}
	s.incrementMemberChange("removed")
	return h, nil
}

// DeleteHousehold removes the household together with its membership history.
func (s *HouseholdService) DeleteHousehold(ctx context.Context, cmd DeleteHouseholdCommand) error {
	_, err := s.mutate(ctx, "household.DeleteHousehold", cmd.TenantID, cmd.HouseholdID, cmd.ExpectedVersion,
		func(txCtx context.Context, h *models.Household, _ time.Time) error {
			if err := s.households.Delete(txCtx, h.TenantID, h.ID, h.Version); err != nil {
				return wrapHouseholdErr(err, "delete household")
			}
			return s.auditEmitter.emit(txCtx, h, cmd.UserID, audit.EventHouseholdDeleted, nil)
		})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementHouseholdsDeleted()
	}
	return nil
}

type mutation func(txCtx context.Context, h *models.Household, now time.Time) error

func (s *HouseholdService) mutate(ctx context.Context, op string, tenantID id.TenantID, householdID id.HouseholdID, expected *int64, fn mutation) (h *models.Household, err error) {
	ctx, span := tracer.Start(ctx, op, spanAttrs(tenantID, householdID))
	defer func() { endSpan(span, err) }()
	defer s.observeMutation(time.Now())

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		household, err := s.households.FindByID(txCtx, tenantID, householdID)
		if err != nil {
			return wrapHouseholdErr(err, "load household")
		}
		if err := checkVersion(household.Version, expected); err != nil {
			return err
		}
		if err := fn(txCtx, household, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		h = household
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeConcurrentModification) {
			if s.metrics != nil {
				s.metrics.IncrementConcurrentRejections()
			}
			s.logger.WarnContext(ctx, "concurrent household modification rejected",
				"tenant_id", tenantID.String(),
				"household_id", householdID.String(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return nil, err
	}
	return h, nil
}

func (s *HouseholdService) incrementMemberChange(change string) {
	if s.metrics != nil {
		s.metrics.IncrementMemberChange(change)
	}
}

func (s *HouseholdService) observeMutation(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(start)
	}
}
