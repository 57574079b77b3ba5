package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"govinda/internal/household/models"
	id "govinda/pkg/domain"
	"govinda/pkg/platform/paging"
	"govinda/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store    *InMemory
	ctx      context.Context
	tenantID id.TenantID
	now      time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.tenantID = id.TenantID(uuid.New())
	s.now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) newHousehold(tenantID id.TenantID, name string) *models.Household {
	h, err := models.NewHousehold(id.NewHouseholdID(), tenantID, name, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, h))
	return h
}

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	h := s.newHousehold(s.tenantID, "Familie Muster")

	s.Run("duplicate id", func() {
		s.ErrorIs(s.store.Create(s.ctx, h), sentinel.ErrAlreadyUsed)
	})

	s.Run("other tenant sees nothing", func() {
		_, err := s.store.FindByID(s.ctx, id.TenantID(uuid.New()), h.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned copies are detached", func() {
		got, err := s.store.FindByID(s.ctx, s.tenantID, h.ID)
		s.Require().NoError(err)
		_, err = got.AddMember(id.NewPersonID(), id.HouseholdRoleChild, s.now, s.now)
		s.Require().NoError(err)

		again, err := s.store.FindByID(s.ctx, s.tenantID, h.ID)
		s.Require().NoError(err)
		s.Empty(again.Members)
	})
}

func (s *InMemoryStoreSuite) TestUpdateVersioning() {
	h := s.newHousehold(s.tenantID, "Familie Muster")
	stale, err := s.store.FindByID(s.ctx, s.tenantID, h.ID)
	s.Require().NoError(err)

	_, err = h.AddMember(id.NewPersonID(), id.HouseholdRolePrimary, s.now, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Update(s.ctx, h))
	s.Equal(int64(1), h.Version)

	s.ErrorIs(s.store.Update(s.ctx, stale), sentinel.ErrConflict)
	s.ErrorIs(s.store.Delete(s.ctx, s.tenantID, h.ID, 0), sentinel.ErrConflict)
	s.Require().NoError(s.store.Delete(s.ctx, s.tenantID, h.ID, 1))
	s.ErrorIs(s.store.Delete(s.ctx, s.tenantID, h.ID, 1), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestFindByPerson() {
	h := s.newHousehold(s.tenantID, "Familie Muster")
	personID := id.NewPersonID()
	_, err := h.AddMember(personID, id.HouseholdRoleChild, id.Date(2024, time.January, 1), s.now)
	s.Require().NoError(err)
	_, err = h.RemoveMember(personID, id.Date(2025, time.March, 31), s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Update(s.ctx, h))

	got, err := s.store.FindByPerson(s.ctx, s.tenantID, personID, s.now)
	s.Require().NoError(err)
	s.Equal(h.ID, got.ID)

	_, err = s.store.FindByPerson(s.ctx, s.tenantID, personID, id.Date(2025, time.April, 1))
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByPerson(s.ctx, id.TenantID(uuid.New()), personID, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListAndSnapshot() {
	s.newHousehold(s.tenantID, "Zeller")
	s.newHousehold(s.tenantID, "amrein")
	s.newHousehold(id.TenantID(uuid.New()), "Other")

	page, err := s.store.List(s.ctx, s.tenantID, paging.Request{Page: 0, Size: 1})
	s.Require().NoError(err)
	s.Equal(2, page.TotalElements)
	s.Require().Len(page.Content, 1)
	s.Equal("amrein", page.Content[0].Name)

	desc, err := s.store.List(s.ctx, s.tenantID, paging.Request{Size: 10, SortDesc: true})
	s.Require().NoError(err)
	s.Equal("Zeller", desc.Content[0].Name)

	restore := s.store.Snapshot()
	s.newHousehold(s.tenantID, "Temporary")
	restore()
	page, err = s.store.List(s.ctx, s.tenantID, paging.Request{Size: 10})
	s.Require().NoError(err)
	s.Equal(2, page.TotalElements)
}
