package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	personmetrics "govinda/internal/person/metrics"
	"govinda/internal/person/models"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
	"govinda/pkg/platform/paging"
	"govinda/pkg/platform/sentinel"
	"govinda/pkg/requestcontext"
)

// PersonService orchestrates person lifecycle, historized mutations and
// point-in-time lookups. Every mutation runs in one transaction covering the
// aggregate write, the history append and the change event.
type PersonService struct {
	persons      PersonStore
	auditEmitter *auditEmitter
	logger       *slog.Logger
	metrics      *personmetrics.Metrics
	tx           StoreTx
}

func NewPersonService(persons PersonStore, opts ...Option) *PersonService {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonService{
		persons:      persons,
		auditEmitter: newAuditEmitter(logger, cfg.auditPublisher),
		logger:       logger,
		metrics:      cfg.metrics,
		tx:           defaultTx(cfg.tx, persons, cfg.auditPublisher),
	}
}

func spanAttrs(tenantID id.TenantID, personID id.PersonID) trace.SpanStartOption {
	attrs := []attribute.KeyValue{attribute.String("tenant_id", tenantID.String())}
	if !personID.IsNil() {
		attrs = append(attrs, attribute.String("person_id", personID.String()))
	}
	return trace.WithAttributes(attrs...)
}

// CreatePerson registers a new person. The AHV number must be unused within
// the tenant.
func (s *PersonService) CreatePerson(ctx context.Context, cmd CreatePersonCommand) (p *models.Person, err error) {
	ctx, span := tracer.Start(ctx, "person.CreatePerson", spanAttrs(cmd.TenantID, id.PersonID{}))
	defer func() { endSpan(span, err) }()
	defer s.observeMutation(time.Now())

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.persons.ExistsByAhv(txCtx, cmd.TenantID, cmd.AhvNumber)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check AHV number")
		}
		if exists {
			return duplicateAhv(cmd.AhvNumber)
		}

		now := requestcontext.Now(txCtx)
		person, err := models.NewPerson(id.NewPersonID(), cmd.TenantID, cmd.AhvNumber,
			cmd.LastName, cmd.FirstName, cmd.DateOfBirth, cmd.Gender, cmd.UserID, now)
		if err != nil {
			return asValidation(err)
		}
		if cmd.MaritalStatus != nil {
			if !cmd.MaritalStatus.IsValid() {
				return dErrors.Newf(dErrors.CodeValidation, "unknown marital status: %s", *cmd.MaritalStatus)
			}
			status := *cmd.MaritalStatus
			person.MaritalStatus = &status
		}
		if err := person.ApplyUpdate(cmd.Nationality, cmd.PreferredLanguage, cmd.UserID, now); err != nil {
			return asValidation(err)
		}

		if err := s.persons.Create(txCtx, person); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return duplicateAhv(cmd.AhvNumber)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create person")
		}
		if err := s.auditEmitter.emitPersonCreated(txCtx, person); err != nil {
			return err
		}
		p = person
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeDuplicate) {
			s.incrementDuplicateRejections()
		}
		return nil, err
	}

	s.incrementPersonsCreated()
	s.logger.InfoContext(ctx, "person created",
		"tenant_id", p.TenantID.String(),
		"person_id", p.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return p, nil
}

func duplicateAhv(ahv id.AhvNumber) error {
	return dErrors.Newf(dErrors.CodeDuplicate, "person already exists with AHV number: %s", ahv)
}

func (s *PersonService) GetPerson(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (p *models.Person, err error) {
	ctx, span := tracer.Start(ctx, "person.GetPerson", spanAttrs(tenantID, personID))
	defer func() { endSpan(span, err) }()

	p, err = s.persons.FindByID(ctx, tenantID, personID)
	if err != nil {
		return nil, wrapPersonErr(err, "load person")
	}
	return p, nil
}

func (s *PersonService) GetPersonByAhv(ctx context.Context, tenantID id.TenantID, ahv id.AhvNumber) (p *models.Person, err error) {
	ctx, span := tracer.Start(ctx, "person.GetPersonByAhv", spanAttrs(tenantID, id.PersonID{}))
	defer func() { endSpan(span, err) }()

	p, err = s.persons.FindByAhv(ctx, tenantID, ahv)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "person not found with AHV number: %s", ahv)
		}
		return nil, wrapPersonErr(err, "load person")
	}
	return p, nil
}

// ListPersons returns one page of the tenant's persons.
func (s *PersonService) ListPersons(ctx context.Context, tenantID id.TenantID, req paging.Request) (page paging.Page[*models.Person], err error) {
	ctx, span := tracer.Start(ctx, "person.ListPersons", spanAttrs(tenantID, id.PersonID{}))
	defer func() { endSpan(span, err) }()

	page, err = s.persons.List(ctx, tenantID, req.Normalize())
	if err != nil {
		return paging.Page[*models.Person]{}, wrapPersonErr(err, "list persons")
	}
	return page, nil
}

// SearchPersons returns persons matching every given criterion. Empty
// criteria list all persons.
func (s *PersonService) SearchPersons(ctx context.Context, tenantID id.TenantID, criteria models.SearchCriteria, req paging.Request) (page paging.Page[*models.Person], err error) {
	ctx, span := tracer.Start(ctx, "person.SearchPersons", spanAttrs(tenantID, id.PersonID{}))
	defer func() { endSpan(span, err) }()

	page, err = s.persons.Search(ctx, tenantID, criteria, req.Normalize())
	if err != nil {
		return paging.Page[*models.Person]{}, wrapPersonErr(err, "search persons")
	}
	return page, nil
}

// UpdatePerson changes nationality and preferred language without history.
func (s *PersonService) UpdatePerson(ctx context.Context, cmd UpdatePersonCommand) (*models.Person, error) {
	return s.mutate(ctx, "person.UpdatePerson", cmd.TenantID, cmd.PersonID, cmd.ExpectedVersion,
		func(txCtx context.Context, p *models.Person, now time.Time) error {
			if err := p.ApplyUpdate(cmd.Nationality, cmd.PreferredLanguage, cmd.UserID, now); err != nil {
				return asValidation(err)
			}
			if err := s.persons.Update(txCtx, p); err != nil {
				return wrapPersonErr(err, "update person")
			}
			return s.auditEmitter.emitPersonUpdated(txCtx, p)
		})
}

// ChangeName historizes the current name and applies the new one from
// EffectiveDate on.
func (s *PersonService) ChangeName(ctx context.Context, cmd ChangeNameCommand) (*models.Person, error) {
	p, err := s.mutate(ctx, "person.ChangeName", cmd.TenantID, cmd.PersonID, cmd.ExpectedVersion,
		func(txCtx context.Context, p *models.Person, now time.Time) error {
			entry, err := p.ChangeName(cmd.NewLastName, cmd.NewFirstName, cmd.Reason, cmd.EffectiveDate, cmd.UserID, now)
			if err != nil {
				return asValidation(err)
			}
			if err := s.historize(txCtx, p, entry); err != nil {
				return err
			}
			return s.auditEmitter.emitNameChanged(txCtx, p, entry.MutationReason, id.DateOf(cmd.EffectiveDate))
		})
	if err == nil {
		s.incrementHistorized("name")
	}
	return p, err
}

// ChangeMaritalStatus historizes the current marital status and applies the
// new one from EffectiveDate on.
func (s *PersonService) ChangeMaritalStatus(ctx context.Context, cmd ChangeMaritalStatusCommand) (*models.Person, error) {
	p, err := s.mutate(ctx, "person.ChangeMaritalStatus", cmd.TenantID, cmd.PersonID, cmd.ExpectedVersion,
		func(txCtx context.Context, p *models.Person, now time.Time) error {
			entry, err := p.ChangeMaritalStatus(cmd.NewMaritalStatus, cmd.Reason, cmd.EffectiveDate, cmd.UserID, now)
			if err != nil {
				return asValidation(err)
			}
			if err := s.historize(txCtx, p, entry); err != nil {
				return err
			}
			return s.auditEmitter.emitMaritalStatusChanged(txCtx, p, entry.MutationReason, id.DateOf(cmd.EffectiveDate))
		})
	if err == nil {
		s.incrementHistorized("marital_status")
	}
	return p, err
}

// AddAddress adds an address to the person, optionally closing the current
// MAIN address first. Returns the new address.
func (s *PersonService) AddAddress(ctx context.Context, cmd AddAddressCommand) (*models.Person, *models.Address, error) {
	var added *models.Address
	p, err := s.mutate(ctx, "person.AddAddress", cmd.TenantID, cmd.PersonID, cmd.ExpectedVersion,
		func(txCtx context.Context, p *models.Person, now time.Time) error {
			address, err := models.NewAddress(id.NewAddressID(), p.ID, cmd.Address, cmd.UserID, now)
			if err != nil {
				return asValidation(err)
			}
			closed, err := p.AddAddress(address, cmd.CloseExistingOn, cmd.UserID, now)
			if err != nil {
				return asValidation(err)
			}
			if err := s.persons.Update(txCtx, p); err != nil {
				return wrapPersonErr(err, "save address")
			}
			if closed != nil {
				if err := s.auditEmitter.emitAddressClosed(txCtx, p, closed); err != nil {
					return err
				}
			}
			added = address
			return s.auditEmitter.emitAddressAdded(txCtx, p, address)
		})
	if err != nil {
		return nil, nil, err
	}
	return p, added, nil
}

// GetPersonHistory returns the person's history entries, newest ValidFrom first.
func (s *PersonService) GetPersonHistory(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (entries []*models.PersonHistoryEntry, err error) {
	ctx, span := tracer.Start(ctx, "person.GetPersonHistory", spanAttrs(tenantID, personID))
	defer func() { endSpan(span, err) }()

	if _, err = s.persons.FindByID(ctx, tenantID, personID); err != nil {
		return nil, wrapPersonErr(err, "load person")
	}
	entries, err = s.persons.ListHistory(ctx, tenantID, personID)
	if err != nil {
		return nil, wrapPersonErr(err, "load person history")
	}
	return entries, nil
}

// GetPersonStateAt returns the history entry describing the person on date.
// found is false when no entry covers date.
func (s *PersonService) GetPersonStateAt(ctx context.Context, tenantID id.TenantID, personID id.PersonID, date time.Time) (entry *models.PersonHistoryEntry, found bool, err error) {
	ctx, span := tracer.Start(ctx, "person.GetPersonStateAt", spanAttrs(tenantID, personID),
		trace.WithAttributes(attribute.String("date", date.Format(time.DateOnly))))
	defer func() { endSpan(span, err) }()
	defer s.observeStateAt(time.Now())

	entries, err := s.GetPersonHistory(ctx, tenantID, personID)
	if err != nil {
		return nil, false, err
	}
	entry, found = models.StateAt(entries, date)
	return entry, found, nil
}

type mutation func(txCtx context.Context, p *models.Person, now time.Time) error

// mutate loads the person inside a transaction, checks the expected version
// and applies fn. fn is responsible for persisting and emitting events.
func (s *PersonService) mutate(ctx context.Context, op string, tenantID id.TenantID, personID id.PersonID, expected *int64, fn mutation) (p *models.Person, err error) {
	ctx, span := tracer.Start(ctx, op, spanAttrs(tenantID, personID))
	defer func() { endSpan(span, err) }()
	defer s.observeMutation(time.Now())

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		person, err := s.persons.FindByID(txCtx, tenantID, personID)
		if err != nil {
			return wrapPersonErr(err, "load person")
		}
		if err := checkVersion(person.Version, expected); err != nil {
			return err
		}
		if err := fn(txCtx, person, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		p = person
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeConcurrentModification) {
			s.incrementConcurrentRejections()
			s.logger.WarnContext(ctx, "concurrent person modification rejected",
				"tenant_id", tenantID.String(),
				"person_id", personID.String(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return nil, err
	}
	return p, nil
}

// historize appends the history entry and writes the person with a version check.
func (s *PersonService) historize(ctx context.Context, p *models.Person, entry *models.PersonHistoryEntry) error {
	if err := s.persons.AppendHistory(ctx, entry); err != nil {
		return wrapPersonErr(err, "append person history")
	}
	if err := s.persons.Update(ctx, p); err != nil {
		return wrapPersonErr(err, "update person")
	}
	return nil
}

func (s *PersonService) incrementPersonsCreated() {
	if s.metrics != nil {
		s.metrics.IncrementPersonsCreated()
	}
}

func (s *PersonService) incrementHistorized(kind string) {
	if s.metrics != nil {
		s.metrics.IncrementHistorized(kind)
	}
}

func (s *PersonService) incrementConcurrentRejections() {
	if s.metrics != nil {
		s.metrics.IncrementConcurrentRejections()
	}
}

func (s *PersonService) incrementDuplicateRejections() {
	if s.metrics != nil {
		s.metrics.IncrementDuplicateRejections()
	}
}

func (s *PersonService) observeMutation(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(start)
	}
}

func (s *PersonService) observeStateAt(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveStateAt(start)
	}
}
