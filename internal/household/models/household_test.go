package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"govinda/internal/household/models"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
)

type HouseholdSuite struct {
	suite.Suite
	now       time.Time
	household *models.Household
}

func TestHouseholdSuite(t *testing.T) {
	suite.Run(t, new(HouseholdSuite))
}

func (s *HouseholdSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	h, err := models.NewHousehold(id.NewHouseholdID(), id.TenantID(uuid.New()), "Familie Muster", s.now)
	s.Require().NoError(err)
	s.household = h
}

func (s *HouseholdSuite) TestConstruction() {
	_, err := models.NewHousehold(id.NewHouseholdID(), id.TenantID(uuid.New()), "   ", s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	s.Equal("Familie Muster", s.household.Name)
	s.Empty(s.household.Members)
}

func (s *HouseholdSuite) TestRename() {
	later := s.now.Add(time.Hour)
	s.Require().NoError(s.household.Rename("  Familie Beispiel ", later))
	s.Equal("Familie Beispiel", s.household.Name)
	s.Equal(later, s.household.UpdatedAt)

	err := s.household.Rename(" ", later)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	err = s.household.Rename(strings.Repeat("x", 201), later)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	s.Equal("Familie Beispiel", s.household.Name)
}

func (s *HouseholdSuite) TestAddMember() {
	primary := id.NewPersonID()
	partner := id.NewPersonID()

	_, err := s.household.AddMember(primary, id.HouseholdRolePrimary, id.Date(2024, time.January, 1), s.now)
	s.Require().NoError(err)
	_, err = s.household.AddMember(partner, id.HouseholdRolePartner, id.Date(2024, time.January, 1), s.now)
	s.Require().NoError(err)

	s.Run("second primary fails", func() {
		_, err := s.household.AddMember(id.NewPersonID(), id.HouseholdRolePrimary, s.now, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidMutation))
		s.Contains(err.Error(), "primary")
	})

	s.Run("same person twice fails", func() {
		_, err := s.household.AddMember(partner, id.HouseholdRoleChild, s.now, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidMutation))
		s.Contains(err.Error(), "already a member")
	})

	s.Len(s.household.Members, 2)
	s.Equal(primary, s.household.PrimaryMember(s.now).PersonID)
	s.True(s.household.HasPrimary(s.now))
}

func (s *HouseholdSuite) TestRemoveMember() {
	person := id.NewPersonID()
	_, err := s.household.AddMember(person, id.HouseholdRolePrimary, id.Date(2024, time.January, 1), s.now)
	s.Require().NoError(err)

	member, err := s.household.RemoveMember(person, id.Date(2024, time.December, 31), s.now)
	s.Require().NoError(err)
	s.Equal(id.Date(2024, time.December, 31), *member.ValidTo)

	s.Len(s.household.Members, 1, "removed members stay in the membership list")
	s.Empty(s.household.CurrentMembers(s.now))
	s.Nil(s.household.PrimaryMember(s.now))

	s.Run("removing a non-member fails", func() {
		_, err := s.household.RemoveMember(id.NewPersonID(), s.now, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("removing an already removed member fails", func() {
		_, err := s.household.RemoveMember(person, s.now, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("a former primary can be replaced and the person can rejoin", func() {
		_, err := s.household.AddMember(id.NewPersonID(), id.HouseholdRolePrimary, s.now, s.now)
		s.NoError(err)
		_, err = s.household.AddMember(person, id.HouseholdRolePartner, s.now, s.now)
		s.NoError(err)
	})
}

func (s *HouseholdSuite) TestMembershipEndingToday() {
	person := id.NewPersonID()
	_, err := s.household.AddMember(person, id.HouseholdRoleChild, id.Date(2024, time.January, 1), s.now)
	s.Require().NoError(err)
	_, err = s.household.RemoveMember(person, s.now, s.now)
	s.Require().NoError(err)

	s.Len(s.household.CurrentMembers(s.now), 1, "a membership ending today is still current")
	s.Empty(s.household.CurrentMembers(s.now.AddDate(0, 0, 1)))
	s.Equal(1, s.household.ChildCount(s.now))
}
