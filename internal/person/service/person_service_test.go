package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks PersonStore,AuditPublisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"govinda/internal/person/models"
	"govinda/internal/person/service/mocks"
	personstore "govinda/internal/person/store/person"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
	audit "govinda/pkg/platform/audit"
	"govinda/pkg/platform/audit/publishers/compliance"
	"govinda/pkg/platform/audit/store/memory"
	"govinda/pkg/platform/paging"
	"govinda/pkg/platform/sentinel"
	txcontext "govinda/pkg/platform/tx"
	"govinda/pkg/requestcontext"
	"govinda/pkg/testutil"
)

type PersonServiceSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	tenantID id.TenantID
	userID   id.UserID
	persons  *personstore.InMemory
	events   *memory.InMemoryStore
	service  *PersonService
}

func TestPersonServiceSuite(t *testing.T) {
	suite.Run(t, new(PersonServiceSuite))
}

func (s *PersonServiceSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.tenantID = id.TenantID(uuid.New())
	s.userID = id.UserID(uuid.New())
	s.persons = personstore.NewInMemory()
	s.events = memory.NewInMemoryStore()
	s.service = NewPersonService(s.persons,
		WithAuditPublisher(compliance.New(s.events)),
		WithTx(txcontext.NewMemoryRunner(s.persons, s.events)),
	)
}

func (s *PersonServiceSuite) ahv(raw string) id.AhvNumber {
	n, err := id.ParseAhvNumber(raw)
	s.Require().NoError(err)
	return n
}

func (s *PersonServiceSuite) createCommand(ahv string) CreatePersonCommand {
	return CreatePersonCommand{
		TenantID:    s.tenantID,
		UserID:      s.userID,
		AhvNumber:   s.ahv(ahv),
		LastName:    "Muster",
		FirstName:   "Hans",
		DateOfBirth: time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      id.GenderMale,
	}
}

func (s *PersonServiceSuite) createPerson(ahv string) *models.Person {
	p, err := s.service.CreatePerson(s.ctx, s.createCommand(ahv))
	s.Require().NoError(err)
	return p
}

func (s *PersonServiceSuite) actions() []string {
	all, err := s.events.ListAll(context.Background())
	s.Require().NoError(err)
	out := make([]string, 0, len(all))
	for _, e := range all {
		out = append(out, e.Action)
	}
	return out
}

func (s *PersonServiceSuite) TestCreatePerson() {
	s.Run("persists the person with defaults and emits person_created", func() {
		p := s.createPerson("756.1234.5678.97")

		s.Equal("Hans Muster", p.FullName())
		s.Equal(models.DefaultNationality, p.Nationality)
		s.Equal(id.LanguageDE, p.PreferredLanguage)
		s.Equal(id.PersonStatusActive, p.Status)
		s.Equal(s.now, p.CreatedAt)

		stored, err := s.persons.FindByID(s.ctx, s.tenantID, p.ID)
		s.Require().NoError(err)
		s.Equal(p.AhvNumber, stored.AhvNumber)

		events, err := s.events.ListByAggregate(s.ctx, s.tenantID, p.ID.String())
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventPersonCreated), events[0].Action)
		s.Equal(audit.CategoryCompliance, events[0].Category)
		s.NotEmpty(events[0].SubjectHash)
		s.NotContains(events[0].SubjectHash, p.AhvNumber.Unformatted())
	})

	s.Run("applies optional attributes", func() {
		status := id.MaritalStatusMarried
		nationality := "deu"
		lang := id.LanguageFR
		cmd := s.createCommand("756.9999.0000.11")
		cmd.MaritalStatus = &status
		cmd.Nationality = &nationality
		cmd.PreferredLanguage = &lang

		p, err := s.service.CreatePerson(s.ctx, cmd)
		s.Require().NoError(err)
		s.Require().NotNil(p.MaritalStatus)
		s.Equal(id.MaritalStatusMarried, *p.MaritalStatus)
		s.Equal("DEU", p.Nationality)
		s.Equal(id.LanguageFR, p.PreferredLanguage)
	})

	s.Run("duplicate AHV in the same tenant is rejected", func() {
		_, err := s.service.CreatePerson(s.ctx, s.createCommand("756.1234.5678.97"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicate))
		s.Contains(err.Error(), "person already exists with AHV number: 756.1234.5678.97")
	})

	s.Run("same AHV in another tenant is allowed", func() {
		cmd := s.createCommand("756.1234.5678.97")
		cmd.TenantID = id.TenantID(uuid.New())
		_, err := s.service.CreatePerson(s.ctx, cmd)
		s.NoError(err)
	})

	s.Run("future date of birth is a validation error", func() {
		cmd := s.createCommand("756.5555.4444.33")
		cmd.DateOfBirth = s.now.AddDate(0, 0, 1)
		_, err := s.service.CreatePerson(s.ctx, cmd)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("blank last name is a validation error", func() {
		cmd := s.createCommand("756.5555.4444.34")
		cmd.LastName = "  "
		_, err := s.service.CreatePerson(s.ctx, cmd)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *PersonServiceSuite) TestGetPerson() {
	p := s.createPerson("756.1234.5678.97")

	s.Run("found within the tenant", func() {
		got, err := s.service.GetPerson(s.ctx, s.tenantID, p.ID)
		s.Require().NoError(err)
		s.Equal(p.ID, got.ID)
	})

	s.Run("other tenant sees not found", func() {
		_, err := s.service.GetPerson(s.ctx, id.TenantID(uuid.New()), p.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("by AHV number", func() {
		got, err := s.service.GetPersonByAhv(s.ctx, s.tenantID, p.AhvNumber)
		s.Require().NoError(err)
		s.Equal(p.ID, got.ID)

		_, err = s.service.GetPersonByAhv(s.ctx, s.tenantID, s.ahv("756.0000.0000.00"))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *PersonServiceSuite) TestListAndSearch() {
	s.createPerson("756.1234.5678.97")
	cmd := s.createCommand("756.1111.2222.33")
	cmd.LastName = "Meier"
	cmd.FirstName = "Anna"
	_, err := s.service.CreatePerson(s.ctx, cmd)
	s.Require().NoError(err)

	s.Run("list sorts by last name", func() {
		page, err := s.service.ListPersons(s.ctx, s.tenantID, paging.Request{SortBy: personstore.SortLastName})
		s.Require().NoError(err)
		s.Equal(2, page.TotalElements)
		s.Require().Len(page.Content, 2)
		s.Equal("Meier", page.Content[0].LastName)
		s.Equal(paging.DefaultSize, page.Size)
	})

	s.Run("search matches case-insensitive substrings", func() {
		page, err := s.service.SearchPersons(s.ctx, s.tenantID, models.SearchCriteria{LastName: "mUs"}, paging.Request{})
		s.Require().NoError(err)
		s.Require().Len(page.Content, 1)
		s.Equal("Muster", page.Content[0].LastName)
	})

	s.Run("search is tenant scoped", func() {
		page, err := s.service.SearchPersons(s.ctx, id.TenantID(uuid.New()), models.SearchCriteria{LastName: "Mus"}, paging.Request{})
		s.Require().NoError(err)
		s.Empty(page.Content)
	})
}

func (s *PersonServiceSuite) TestChangeName() {
	p := s.createPerson("756.1234.5678.97")
	effective := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	updated, err := s.service.ChangeName(s.ctx, ChangeNameCommand{
		TenantID:      s.tenantID,
		UserID:        s.userID,
		PersonID:      p.ID,
		NewLastName:   "Meier",
		Reason:        " Heirat ",
		EffectiveDate: effective,
	})
	s.Require().NoError(err)
	s.Equal("Meier", updated.LastName)
	s.Equal("Hans", updated.FirstName)
	s.Equal(int64(1), updated.Version)

	history, err := s.service.GetPersonHistory(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	entry := history[0]
	s.Equal("Muster", entry.LastName)
	s.Equal("Hans", entry.FirstName)
	s.Equal(id.Date(2025, 3, 1), entry.ValidFrom)
	s.Require().NotNil(entry.ValidTo)
	s.Equal(id.Date(2025, 3, 31), *entry.ValidTo)
	s.Equal("Heirat", entry.MutationReason)
	s.Equal(id.MutationUpdate, entry.MutationType)
	s.Equal(s.userID, entry.ChangedBy)

	s.Equal([]string{string(audit.EventPersonCreated), string(audit.EventPersonNameChanged)}, s.actions())
}

func (s *PersonServiceSuite) TestChangeName_Failures() {
	p := s.createPerson("756.1234.5678.97")
	base := ChangeNameCommand{
		TenantID:      s.tenantID,
		UserID:        s.userID,
		PersonID:      p.ID,
		NewLastName:   "Meier",
		EffectiveDate: s.now.AddDate(0, 1, 0),
	}

	s.Run("unknown person", func() {
		cmd := base
		cmd.PersonID = id.NewPersonID()
		_, err := s.service.ChangeName(s.ctx, cmd)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("person of another tenant", func() {
		cmd := base
		cmd.TenantID = id.TenantID(uuid.New())
		_, err := s.service.ChangeName(s.ctx, cmd)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("blank new last name", func() {
		cmd := base
		cmd.NewLastName = " "
		_, err := s.service.ChangeName(s.ctx, cmd)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("expected version mismatch", func() {
		cmd := base
		stale := int64(7)
		cmd.ExpectedVersion = &stale
		_, err := s.service.ChangeName(s.ctx, cmd)
		s.True(dErrors.HasCode(err, dErrors.CodeConcurrentModification))
	})

	history, err := s.persons.ListHistory(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Empty(history, "failed mutations must not leave history behind")
	stored, err := s.persons.FindByID(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), stored.Version)
}

// staleReads returns persons one version behind the stored row, as a reader
// racing another writer would see them.
type staleReads struct {
	*personstore.InMemory
}

func (s staleReads) FindByID(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (*models.Person, error) {
	p, err := s.InMemory.FindByID(ctx, tenantID, personID)
	if err != nil {
		return nil, err
	}
	p.Version--
	return p, nil
}

func (s *PersonServiceSuite) TestChangeMaritalStatus_StaleWriteRollsBack() {
	p := s.createPerson("756.1234.5678.97")
	_, err := s.service.ChangeMaritalStatus(s.ctx, ChangeMaritalStatusCommand{
		TenantID: s.tenantID, UserID: s.userID, PersonID: p.ID,
		NewMaritalStatus: id.MaritalStatusMarried, EffectiveDate: s.now,
	})
	s.Require().NoError(err)

	racing := NewPersonService(staleReads{s.persons},
		WithAuditPublisher(compliance.New(s.events)),
		WithTx(txcontext.NewMemoryRunner(s.persons, s.events)),
	)
	_, err = racing.ChangeMaritalStatus(s.ctx, ChangeMaritalStatusCommand{
		TenantID: s.tenantID, UserID: s.userID, PersonID: p.ID,
		NewMaritalStatus: id.MaritalStatusDivorced, EffectiveDate: s.now,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConcurrentModification))

	history, err := s.persons.ListHistory(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Len(history, 1, "the history append of the rejected write is rolled back")
	stored, err := s.persons.FindByID(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Equal(id.MaritalStatusMarried, *stored.MaritalStatus)
	s.Len(s.actions(), 2)
}

func (s *PersonServiceSuite) TestGetPersonStateAt() {
	p := s.createPerson("756.1234.5678.97")
	_, err := s.service.ChangeName(s.ctx, ChangeNameCommand{
		TenantID: s.tenantID, UserID: s.userID, PersonID: p.ID,
		NewLastName: "Meier", EffectiveDate: id.Date(2025, 4, 1),
	})
	s.Require().NoError(err)

	s.Run("date inside the recorded window returns the old values", func() {
		entry, found, err := s.service.GetPersonStateAt(s.ctx, s.tenantID, p.ID, id.Date(2025, 3, 15))
		s.Require().NoError(err)
		s.Require().True(found)
		s.Equal("Muster", entry.LastName)
	})

	s.Run("date after the window has no entry", func() {
		_, found, err := s.service.GetPersonStateAt(s.ctx, s.tenantID, p.ID, id.Date(2025, 4, 15))
		s.Require().NoError(err)
		s.False(found)
	})

	s.Run("date before the recording day has no entry", func() {
		_, found, err := s.service.GetPersonStateAt(s.ctx, s.tenantID, p.ID, id.Date(2025, 2, 1))
		s.Require().NoError(err)
		s.False(found)
	})

	s.Run("unknown person", func() {
		_, _, err := s.service.GetPersonStateAt(s.ctx, s.tenantID, id.NewPersonID(), s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("other tenant", func() {
		_, _, err := s.service.GetPersonStateAt(s.ctx, id.TenantID(uuid.New()), p.ID, id.Date(2025, 3, 15))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *PersonServiceSuite) TestUpdatePerson() {
	p := s.createPerson("756.1234.5678.97")
	nationality := "ita"
	lang := id.LanguageIT
	version := int64(0)

	updated, err := s.service.UpdatePerson(s.ctx, UpdatePersonCommand{
		TenantID: s.tenantID, UserID: s.userID, PersonID: p.ID,
		Nationality: &nationality, PreferredLanguage: &lang, ExpectedVersion: &version,
	})
	s.Require().NoError(err)
	s.Equal("ITA", updated.Nationality)
	s.Equal(id.LanguageIT, updated.PreferredLanguage)
	s.Equal(int64(1), updated.Version)

	history, err := s.persons.ListHistory(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Empty(history)

	bad := "CH"
	_, err = s.service.UpdatePerson(s.ctx, UpdatePersonCommand{
		TenantID: s.tenantID, UserID: s.userID, PersonID: p.ID, Nationality: &bad,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *PersonServiceSuite) TestAddAddress() {
	p := s.createPerson("756.1234.5678.97")
	first := models.AddressFields{
		Type: id.AddressTypeMain, Street: "Bahnhofstrasse", HouseNumber: "1",
		PostalCode: "8001", City: "Zürich", Canton: id.Canton("ZH"), ValidFrom: id.Date(2020, 1, 1),
	}
	_, added, err := s.service.AddAddress(s.ctx, AddAddressCommand{
		TenantID: s.tenantID, UserID: s.userID, PersonID: p.ID, Address: first,
	})
	s.Require().NoError(err)
	s.Equal("CHE", added.Country)

	closeOn := id.Date(2025, 2, 28)
	second := first
	second.Street = "Marktgasse"
	second.PostalCode = "3011"
	second.City = "Bern"
	second.Canton = id.Canton("BE")
	second.ValidFrom = id.Date(2025, 3, 1)
	updated, _, err := s.service.AddAddress(s.ctx, AddAddressCommand{
		TenantID: s.tenantID, UserID: s.userID, PersonID: p.ID, Address: second, CloseExistingOn: &closeOn,
	})
	s.Require().NoError(err)
	s.Require().Len(updated.Addresses, 2)
	s.Require().NotNil(updated.Addresses[0].ValidTo)
	s.Equal(closeOn, *updated.Addresses[0].ValidTo)
	s.Equal("Bern", updated.CurrentAddress(s.now).City)
	s.Equal("Zürich", updated.AddressAt(id.Date(2024, 6, 1)).City)

	s.Contains(s.actions(), string(audit.EventAddressClosed))

	s.Run("close date before the current address start is rejected", func() {
		early := id.Date(2019, 1, 1)
		_, _, err := s.service.AddAddress(s.ctx, AddAddressCommand{
			TenantID: s.tenantID, UserID: s.userID, PersonID: p.ID, Address: first, CloseExistingOn: &early,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *PersonServiceSuite) TestNameChangesOverTime() {
	sc := testutil.NewScenario(s.T(), id.Date(2024, time.January, 10))
	var personID id.PersonID

	sc.Given("a person registered as Muster", func(t *testing.T, ctx context.Context) {
		p, err := s.service.CreatePerson(ctx, s.createCommand("756.1234.5678.97"))
		require.NoError(t, err)
		personID = p.ID
	})

	sc.On(id.Date(2024, time.May, 20)).When("the name changes to Beispiel from June", func(t *testing.T, ctx context.Context) {
		_, err := s.service.ChangeName(ctx, ChangeNameCommand{
			TenantID: s.tenantID, UserID: s.userID, PersonID: personID,
			NewLastName: "Beispiel", Reason: "Heirat", EffectiveDate: id.Date(2024, time.June, 1),
		})
		require.NoError(t, err)
	})

	sc.On(id.Date(2024, time.September, 15)).When("the name changes to Keller from October", func(t *testing.T, ctx context.Context) {
		_, err := s.service.ChangeName(ctx, ChangeNameCommand{
			TenantID: s.tenantID, UserID: s.userID, PersonID: personID,
			NewLastName: "Keller", Reason: "Scheidung", EffectiveDate: id.Date(2024, time.October, 1),
		})
		require.NoError(t, err)
	})

	sc.Then("each entry covers its recording day up to the day before the change", func(t *testing.T, ctx context.Context) {
		history, err := s.service.GetPersonHistory(ctx, s.tenantID, personID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "Beispiel", history[0].LastName)
		assert.Equal(t, id.Date(2024, time.September, 15), history[0].ValidFrom)
		assert.Equal(t, "Muster", history[1].LastName)
		require.NotNil(t, history[1].ValidTo)
		assert.Equal(t, id.Date(2024, time.May, 31), *history[1].ValidTo)

		cases := []struct {
			date     time.Time
			lastName string
		}{
			{id.Date(2024, time.May, 25), "Muster"},
			{id.Date(2024, time.September, 20), "Beispiel"},
			{id.Date(2024, time.July, 1), ""},
			{id.Date(2024, time.October, 5), ""},
		}
		for _, tc := range cases {
			entry, found, err := s.service.GetPersonStateAt(ctx, s.tenantID, personID, tc.date)
			require.NoError(t, err)
			if tc.lastName == "" {
				assert.False(t, found, tc.date.Format(time.DateOnly))
				continue
			}
			require.True(t, found, tc.date.Format(time.DateOnly))
			assert.Equal(t, tc.lastName, entry.LastName)
		}

		current, err := s.service.GetPerson(ctx, s.tenantID, personID)
		require.NoError(t, err)
		assert.Equal(t, "Keller", current.LastName)
		assert.Equal(t, int64(2), current.Version)
	})
}

func TestPersonService_EventFailureAbortsMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockAuditPublisher(ctrl)
	persons := personstore.NewInMemory()
	svc := NewPersonService(persons,
		WithAuditPublisher(publisher),
		WithTx(txcontext.NewMemoryRunner(persons)),
	)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	tenantID := id.TenantID(uuid.New())
	ahv, err := id.ParseAhvNumber("756.1234.5678.97")
	require.NoError(t, err)
	p, err := models.NewPerson(id.NewPersonID(), tenantID, ahv, "Muster", "Hans", id.Date(1980, 1, 1), id.GenderMale, id.UserID{}, now)
	require.NoError(t, err)
	require.NoError(t, persons.Create(ctx, p))

	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox unavailable"))

	_, err = svc.ChangeName(ctx, ChangeNameCommand{
		TenantID: tenantID, PersonID: p.ID, NewLastName: "Meier", EffectiveDate: id.Date(2025, 4, 1),
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))

	stored, err := persons.FindByID(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Muster", stored.LastName)
	assert.Equal(t, int64(0), stored.Version)
	history, err := persons.ListHistory(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPersonService_DefaultRunnerRollsBackInMemoryStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockAuditPublisher(ctrl)
	persons := personstore.NewInMemory()
	svc := NewPersonService(persons, WithAuditPublisher(publisher))

	tenantID := id.TenantID(uuid.New())
	ahv, err := id.ParseAhvNumber("756.1234.5678.97")
	require.NoError(t, err)
	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox unavailable"))

	_, err = svc.CreatePerson(context.Background(), CreatePersonCommand{
		TenantID: tenantID, AhvNumber: ahv, LastName: "Muster", FirstName: "Hans",
		DateOfBirth: id.Date(1980, 1, 1), Gender: id.GenderMale,
	})
	require.Error(t, err)

	exists, err := persons.ExistsByAhv(context.Background(), tenantID, ahv)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPersonService_StoreFailureIsInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockPersonStore(ctrl)
	svc := NewPersonService(store)
	tenantID := id.TenantID(uuid.New())

	store.EXPECT().FindByID(gomock.Any(), tenantID, gomock.Any()).Return(nil, errors.New("connection reset"))
	_, err := svc.GetPerson(context.Background(), tenantID, id.NewPersonID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))

	store.EXPECT().FindByID(gomock.Any(), tenantID, gomock.Any()).Return(nil, sentinel.ErrNotFound)
	_, err = svc.GetPerson(context.Background(), tenantID, id.NewPersonID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	store.EXPECT().ExistsByAhv(gomock.Any(), tenantID, gomock.Any()).Return(false, nil)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)
	ahv, err := id.ParseAhvNumber("756.1234.5678.97")
	require.NoError(t, err)
	_, err = svc.CreatePerson(context.Background(), CreatePersonCommand{
		TenantID: tenantID, AhvNumber: ahv, LastName: "Muster", FirstName: "Hans",
		DateOfBirth: id.Date(1980, 1, 1), Gender: id.GenderFemale,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDuplicate))
}
