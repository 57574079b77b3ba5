package models

import (
	"strings"
	"time"

	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
)

// DefaultCountry is the ISO 3166 alpha-3 code used when none is given.
const DefaultCountry = "CHE"

// AddressFields carries the caller-supplied values of a new address.
type AddressFields struct {
	Type            id.AddressType
	Street          string
	HouseNumber     string
	AdditionalLine  string
	PostalCode      string
	City            string
	Canton          id.Canton
	Country         string
	PremiumRegionID *string
	ValidFrom       time.Time
	ValidTo         *time.Time
}

// Address is a postal address owned by a Person, valid for [ValidFrom, ValidTo].
//
// Invariants:
//   - Street, PostalCode and City are non-blank
//   - ValidTo, when set, is not before ValidFrom
type Address struct {
	ID              id.AddressID
	PersonID        id.PersonID
	Type            id.AddressType
	Street          string
	HouseNumber     string
	AdditionalLine  string
	PostalCode      string
	City            string
	Canton          id.Canton
	Country         string
	PremiumRegionID *string
	ValidFrom       time.Time
	ValidTo         *time.Time
	RecordedAt      time.Time
	SupersededAt    *time.Time
	CreatedBy       id.UserID
}

func NewAddress(addressID id.AddressID, personID id.PersonID, f AddressFields, createdBy id.UserID, now time.Time) (*Address, error) {
	f.Street = strings.TrimSpace(f.Street)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.City = strings.TrimSpace(f.City)
	f.Country = strings.ToUpper(strings.TrimSpace(f.Country))

	switch {
	case f.Street == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "street must not be blank")
	case f.PostalCode == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "postal code must not be blank")
	case f.City == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "city must not be blank")
	case len(f.Street) > 200 || len(f.AdditionalLine) > 200:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "street lines must be 200 characters or less")
	case len(f.PostalCode) > 10:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "postal code must be 10 characters or less")
	case len(f.City) > 100:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "city must be 100 characters or less")
	case f.ValidFrom.IsZero():
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "valid from is required")
	}
	if !f.Type.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "unknown address type: %s", f.Type)
	}
	if !f.Canton.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "unknown canton: %s", f.Canton)
	}
	if f.Country == "" {
		f.Country = DefaultCountry
	}

	validFrom := id.DateOf(f.ValidFrom)
	var validTo *time.Time
	if f.ValidTo != nil {
		end := id.DateOf(*f.ValidTo)
		if end.Before(validFrom) {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "end date cannot be before start date")
		}
		validTo = &end
	}

	return &Address{
		ID:              addressID,
		PersonID:        personID,
		Type:            f.Type,
		Street:          f.Street,
		HouseNumber:     strings.TrimSpace(f.HouseNumber),
		AdditionalLine:  strings.TrimSpace(f.AdditionalLine),
		PostalCode:      f.PostalCode,
		City:            f.City,
		Canton:          f.Canton,
		Country:         f.Country,
		PremiumRegionID: f.PremiumRegionID,
		ValidFrom:       validFrom,
		ValidTo:         validTo,
		RecordedAt:      now,
		CreatedBy:       createdBy,
	}, nil
}

// IsCurrent reports whether the address has no end date or ends on or after today.
func (a *Address) IsCurrent(today time.Time) bool {
	return a.ValidTo == nil || !a.ValidTo.Before(id.DateOf(today))
}

// IsValidOn reports whether date lies inside the inclusive validity window.
func (a *Address) IsValidOn(date time.Time) bool {
	date = id.DateOf(date)
	if a.ValidFrom.After(date) {
		return false
	}
	return a.ValidTo == nil || !a.ValidTo.Before(date)
}

// CanClose checks that endDate does not precede ValidFrom.
func (a *Address) CanClose(endDate time.Time) error {
	if id.DateOf(endDate).Before(a.ValidFrom) {
		return dErrors.New(dErrors.CodeInvariantViolation, "end date cannot be before start date")
	}
	return nil
}

// ApplyClose sets the end of the validity window.
// Call CanClose first to validate the date.
func (a *Address) ApplyClose(endDate time.Time) {
	end := id.DateOf(endDate)
	a.ValidTo = &end
}

// Close validates and applies the end date in one call.
func (a *Address) Close(endDate time.Time) error {
	if err := a.CanClose(endDate); err != nil {
		return err
	}
	a.ApplyClose(endDate)
	return nil
}

// FormattedStreet is "Street HouseNumber", or the street alone.
func (a *Address) FormattedStreet() string {
	if a.HouseNumber == "" {
		return a.Street
	}
	return a.Street + " " + a.HouseNumber
}

// FormattedCity is "PostalCode City".
func (a *Address) FormattedCity() string {
	return a.PostalCode + " " + a.City
}

// FormattedLines renders the address as printed on an envelope.
func (a *Address) FormattedLines() []string {
	lines := []string{a.FormattedStreet()}
	if a.AdditionalLine != "" {
		lines = append(lines, a.AdditionalLine)
	}
	return append(lines, a.FormattedCity())
}
