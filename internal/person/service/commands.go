package service

import (
	"time"

	"govinda/internal/person/models"
	id "govinda/pkg/domain"
)

// CreatePersonCommand carries the validated input for CreatePerson.
// Nil optional fields take the model defaults.
type CreatePersonCommand struct {
	TenantID          id.TenantID
	UserID            id.UserID
	AhvNumber         id.AhvNumber
	LastName          string
	FirstName         string
	DateOfBirth       time.Time
	Gender            id.Gender
	MaritalStatus     *id.MaritalStatus
	Nationality       *string
	PreferredLanguage *id.Language
}

// UpdatePersonCommand changes the non-historized attributes.
type UpdatePersonCommand struct {
	TenantID          id.TenantID
	UserID            id.UserID
	PersonID          id.PersonID
	Nationality       *string
	PreferredLanguage *id.Language
	ExpectedVersion   *int64
}

type ChangeNameCommand struct {
	TenantID        id.TenantID
	UserID          id.UserID
	PersonID        id.PersonID
	NewLastName     string
	NewFirstName    string
	Reason          string
	EffectiveDate   time.Time
	ExpectedVersion *int64
}

type ChangeMaritalStatusCommand struct {
	TenantID         id.TenantID
	UserID           id.UserID
	PersonID         id.PersonID
	NewMaritalStatus id.MaritalStatus
	Reason           string
	EffectiveDate    time.Time
	ExpectedVersion  *int64
}

// AddAddressCommand adds an address; CloseExistingOn ends the current MAIN
// address on that day first.
type AddAddressCommand struct {
	TenantID        id.TenantID
	UserID          id.UserID
	PersonID        id.PersonID
	Address         models.AddressFields
	CloseExistingOn *time.Time
	ExpectedVersion *int64
}
