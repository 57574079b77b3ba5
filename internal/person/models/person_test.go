package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"govinda/internal/person/models"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
)

type PersonSuite struct {
	suite.Suite
	now      time.Time
	tenantID id.TenantID
	userID   id.UserID
	ahv      id.AhvNumber
}

func TestPersonSuite(t *testing.T) {
	suite.Run(t, new(PersonSuite))
}

func (s *PersonSuite) SetupTest() {
	s.now = time.Date(2024, 9, 10, 9, 30, 0, 0, time.UTC)
	s.tenantID = id.TenantID(uuid.New())
	s.userID = id.UserID(uuid.New())
	s.ahv = id.AhvNumber("756.1234.5678.90")
}

func (s *PersonSuite) newPerson() *models.Person {
	p, err := models.NewPerson(id.NewPersonID(), s.tenantID, s.ahv, "Muster", "Hans",
		id.Date(1985, time.March, 15), id.GenderMale, s.userID, s.now)
	s.Require().NoError(err)
	return p
}

func (s *PersonSuite) TestConstructionInvariants() {
	s.Run("rejects blank last name", func() {
		_, err := models.NewPerson(id.NewPersonID(), s.tenantID, s.ahv, "  ", "Hans",
			id.Date(1985, time.March, 15), id.GenderMale, s.userID, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Contains(err.Error(), "last name")
	})

	s.Run("rejects blank first name", func() {
		_, err := models.NewPerson(id.NewPersonID(), s.tenantID, s.ahv, "Muster", "",
			id.Date(1985, time.March, 15), id.GenderMale, s.userID, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Contains(err.Error(), "first name")
	})

	s.Run("rejects birth date in the future", func() {
		_, err := models.NewPerson(id.NewPersonID(), s.tenantID, s.ahv, "Muster", "Hans",
			id.Date(2024, time.September, 11), id.GenderMale, s.userID, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("accepts birth today", func() {
		_, err := models.NewPerson(id.NewPersonID(), s.tenantID, s.ahv, "Muster", "Baby",
			id.Date(2024, time.September, 10), id.GenderFemale, s.userID, s.now)
		s.NoError(err)
	})

	s.Run("applies defaults", func() {
		p := s.newPerson()
		s.Equal("CHE", p.Nationality)
		s.Equal(id.LanguageDE, p.PreferredLanguage)
		s.Equal(id.PersonStatusActive, p.Status)
		s.Nil(p.MaritalStatus)
		s.Equal(int64(0), p.Version)
		s.Equal("Hans Muster", p.FullName())
	})
}

func (s *PersonSuite) TestAge() {
	p := s.newPerson()
	s.Equal(39, p.AgeAt(id.Date(2025, time.March, 14)))
	s.Equal(40, p.AgeAt(id.Date(2025, time.March, 15)))
	s.Equal(id.AgeGroupAdult, p.AgeGroupAt(s.now))

	p.DateOfBirth = id.Date(2006, time.September, 11)
	s.Equal(17, p.AgeAt(s.now))
	s.Equal(id.AgeGroupChild, p.AgeGroupAt(s.now))
}

func (s *PersonSuite) TestChangeName() {
	p := s.newPerson()
	married := id.MaritalStatusSingle
	p.MaritalStatus = &married

	entry, err := p.ChangeName("Meier", "", "Heirat", id.Date(2024, time.October, 1), s.userID, s.now)
	s.Require().NoError(err)

	s.Equal("Muster", entry.LastName)
	s.Equal("Hans", entry.FirstName)
	s.Require().NotNil(entry.MaritalStatus)
	s.Equal(id.MaritalStatusSingle, *entry.MaritalStatus)
	s.Equal(id.Date(2024, time.September, 30), *entry.ValidTo)
	s.Equal(id.Date(2024, time.September, 10), entry.ValidFrom)
	s.Equal(id.MutationUpdate, entry.MutationType)
	s.Equal("Heirat", entry.MutationReason)
	s.Equal(p.ID, entry.PersonID)

	s.Equal("Meier", p.LastName)
	s.Equal("Hans", p.FirstName, "empty first name keeps the current one")
	s.Equal(s.now, p.UpdatedAt)

	s.Run("history snapshot is detached from the live entity", func() {
		changed := id.MaritalStatusMarried
		p.MaritalStatus = &changed
		s.Equal(id.MaritalStatusSingle, *entry.MaritalStatus)
	})

	s.Run("rejects blank last name", func() {
		_, err := p.ChangeName(" ", "Hans", "typo", s.now, s.userID, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal("Meier", p.LastName)
	})
}

func (s *PersonSuite) TestChangeMaritalStatus() {
	p := s.newPerson()
	single := id.MaritalStatusSingle
	p.MaritalStatus = &single

	entry, err := p.ChangeMaritalStatus(id.MaritalStatusMarried, "Heirat", id.Date(2024, time.September, 1), s.userID, s.now)
	s.Require().NoError(err)

	s.Equal(id.MaritalStatusMarried, *p.MaritalStatus)
	s.Equal(id.MaritalStatusSingle, *entry.MaritalStatus)
	s.Equal(id.Date(2024, time.August, 31), *entry.ValidTo)

	_, err = p.ChangeMaritalStatus(id.MaritalStatus("ENGAGED"), "", s.now, s.userID, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *PersonSuite) TestApplyUpdate() {
	p := s.newPerson()
	nat := "deu"
	lang := id.LanguageFR
	s.Require().NoError(p.ApplyUpdate(&nat, &lang, s.userID, s.now))
	s.Equal("DEU", p.Nationality)
	s.Equal(id.LanguageFR, p.PreferredLanguage)

	bad := "Germany"
	s.Error(p.ApplyUpdate(&bad, nil, s.userID, s.now))
}

func (s *PersonSuite) TestAddresses() {
	p := s.newPerson()
	first := s.newAddress(p, id.Date(2020, time.January, 1))

	_, err := p.AddAddress(first, nil, s.userID, s.now)
	s.Require().NoError(err)
	s.Equal(first, p.CurrentAddress(s.now))

	s.Run("closing the current main address", func() {
		second := s.newAddress(p, id.Date(2024, time.October, 1))
		closeOn := id.Date(2024, time.September, 30)
		closed, err := p.AddAddress(second, &closeOn, s.userID, s.now)
		s.Require().NoError(err)
		s.Equal(first, closed)
		s.Equal(closeOn, *first.ValidTo)
		s.Len(p.Addresses, 2)

		s.Equal(first, p.AddressAt(id.Date(2022, time.June, 1)))
		s.Equal(second, p.AddressAt(id.Date(2024, time.December, 1)))
		s.Nil(p.AddressAt(id.Date(2019, time.December, 31)))
	})

	s.Run("close date before start is rejected", func() {
		other := s.newPerson()
		a := s.newAddress(other, id.Date(2024, time.January, 1))
		_, err := other.AddAddress(a, nil, s.userID, s.now)
		s.Require().NoError(err)

		early := id.Date(2023, time.December, 31)
		_, err = other.AddAddress(s.newAddress(other, s.now), &early, s.userID, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Len(other.Addresses, 1)
	})

	s.Run("foreign address is rejected", func() {
		other := s.newPerson()
		_, err := p.AddAddress(s.newAddress(other, s.now), nil, s.userID, s.now)
		s.Error(err)
	})
}

func (s *PersonSuite) newAddress(p *models.Person, validFrom time.Time) *models.Address {
	a, err := models.NewAddress(id.NewAddressID(), p.ID, models.AddressFields{
		Type:        id.AddressTypeMain,
		Street:      "Bahnhofstrasse",
		HouseNumber: "1",
		PostalCode:  "8001",
		City:        "Zürich",
		Canton:      id.Canton("ZH"),
		ValidFrom:   validFrom,
	}, s.userID, s.now)
	s.Require().NoError(err)
	return a
}
