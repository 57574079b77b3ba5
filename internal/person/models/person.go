package models

import (
	"strings"
	"time"

	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
)

const (
	DefaultNationality = "CHE"
	maxNameLength      = 100
)

// Person is the aggregate root for an insured natural person.
//
// Invariants:
//   - LastName and FirstName are non-blank and at most 100 characters
//   - DateOfBirth is not after the day of creation
//   - AhvNumber is unique within the tenant (enforced by the store)
//   - Version increases by one on every persisted change
//
// Name and marital status are historized: changing them produces a
// PersonHistoryEntry holding the previous values. Nationality and preferred
// language change in place without history.
type Person struct {
	ID                id.PersonID
	TenantID          id.TenantID
	AhvNumber         id.AhvNumber
	LastName          string
	FirstName         string
	DateOfBirth       time.Time
	Gender            id.Gender
	MaritalStatus     *id.MaritalStatus
	Nationality       string
	PreferredLanguage id.Language
	Status            id.PersonStatus
	Addresses         []*Address
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         id.UserID
	UpdatedBy         id.UserID
}

var _ id.Historized[*PersonHistoryEntry] = (*Person)(nil)

func NewPerson(
	personID id.PersonID,
	tenantID id.TenantID,
	ahv id.AhvNumber,
	lastName, firstName string,
	dateOfBirth time.Time,
	gender id.Gender,
	createdBy id.UserID,
	now time.Time,
) (*Person, error) {
	lastName = strings.TrimSpace(lastName)
	firstName = strings.TrimSpace(firstName)
	if err := validateNames(lastName, firstName); err != nil {
		return nil, err
	}
	if ahv.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "AHV number is required")
	}
	if dateOfBirth.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "date of birth is required")
	}
	if id.DateOf(dateOfBirth).After(id.DateOf(now)) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "date of birth cannot be in the future")
	}
	if !gender.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "unknown gender: %s", gender)
	}
	return &Person{
		ID:                personID,
		TenantID:          tenantID,
		AhvNumber:         ahv,
		LastName:          lastName,
		FirstName:         firstName,
		DateOfBirth:       id.DateOf(dateOfBirth),
		Gender:            gender,
		Nationality:       DefaultNationality,
		PreferredLanguage: id.LanguageDE,
		Status:            id.PersonStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
		CreatedBy:         createdBy,
		UpdatedBy:         createdBy,
	}, nil
}

func validateNames(lastName, firstName string) error {
	switch {
	case lastName == "":
		return dErrors.New(dErrors.CodeInvariantViolation, "last name must not be blank")
	case firstName == "":
		return dErrors.New(dErrors.CodeInvariantViolation, "first name must not be blank")
	case len(lastName) > maxNameLength || len(firstName) > maxNameLength:
		return dErrors.New(dErrors.CodeInvariantViolation, "names must be 100 characters or less")
	}
	return nil
}

func (p *Person) IsActive() bool {
	return p.Status == id.PersonStatusActive
}

// FullName is "First Last".
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// AgeAt returns the completed years of life on date.
func (p *Person) AgeAt(date time.Time) int {
	return id.YearsBetween(p.DateOfBirth, date)
}

func (p *Person) AgeGroupAt(date time.Time) id.AgeGroup {
	return id.AgeGroupForAge(p.AgeAt(date))
}

// CurrentAddress returns the first MAIN address that is current on today.
func (p *Person) CurrentAddress(today time.Time) *Address {
	for _, a := range p.Addresses {
		if a.Type == id.AddressTypeMain && a.IsCurrent(today) {
			return a
		}
	}
	return nil
}

// AddressAt returns the first MAIN address valid on date. Overlapping MAIN
// addresses are not disambiguated.
func (p *Person) AddressAt(date time.Time) *Address {
	for _, a := range p.Addresses {
		if a.Type == id.AddressTypeMain && a.IsValidOn(date) {
			return a
		}
	}
	return nil
}

// AddAddress appends address. When closeExistingOn is set, the current MAIN
// address is closed on that day first; the close date must not precede its start.
// Returns the closed address, if any.
func (p *Person) AddAddress(address *Address, closeExistingOn *time.Time, changedBy id.UserID, now time.Time) (*Address, error) {
	if address.PersonID != p.ID {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "address belongs to another person")
	}
	var closed *Address
	if closeExistingOn != nil {
		if current := p.CurrentAddress(now); current != nil {
			if err := current.Close(*closeExistingOn); err != nil {
				return nil, err
			}
			closed = current
		}
	}
	p.Addresses = append(p.Addresses, address)
	p.touch(changedBy, now)
	return closed, nil
}

// ChangeName records the current name and marital status in a history entry
// ending the day before effectiveDate, then applies the new name.
// An empty newFirstName keeps the current first name.
func (p *Person) ChangeName(newLastName, newFirstName, reason string, effectiveDate time.Time, changedBy id.UserID, now time.Time) (*PersonHistoryEntry, error) {
	newLastName = strings.TrimSpace(newLastName)
	newFirstName = strings.TrimSpace(newFirstName)
	if newFirstName == "" {
		newFirstName = p.FirstName
	}
	if newLastName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "new last name must not be blank")
	}
	if err := validateNames(newLastName, newFirstName); err != nil {
		return nil, err
	}

	entry := p.CreateHistoryEntry(now, effectiveDate, id.MutationUpdate, reason, changedBy)
	p.LastName = newLastName
	p.FirstName = newFirstName
	p.touch(changedBy, now)
	return entry, nil
}

// ChangeMaritalStatus records the current values in a history entry ending the
// day before effectiveDate, then applies newStatus.
func (p *Person) ChangeMaritalStatus(newStatus id.MaritalStatus, reason string, effectiveDate time.Time, changedBy id.UserID, now time.Time) (*PersonHistoryEntry, error) {
	if !newStatus.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "unknown marital status: %s", newStatus)
	}

	entry := p.CreateHistoryEntry(now, effectiveDate, id.MutationUpdate, reason, changedBy)
	status := newStatus
	p.MaritalStatus = &status
	p.touch(changedBy, now)
	return entry, nil
}

// ApplyUpdate changes the non-historized attributes. Nil arguments are left unchanged.
func (p *Person) ApplyUpdate(nationality *string, language *id.Language, changedBy id.UserID, now time.Time) error {
	if nationality != nil {
		n := strings.ToUpper(strings.TrimSpace(*nationality))
		if len(n) != 3 {
			return dErrors.New(dErrors.CodeInvariantViolation, "nationality must be a 3-letter country code")
		}
		p.Nationality = n
	}
	if language != nil {
		if !language.IsValid() {
			return dErrors.Newf(dErrors.CodeInvariantViolation, "unsupported language: %s", *language)
		}
		p.PreferredLanguage = *language
	}
	p.touch(changedBy, now)
	return nil
}

// CreateHistoryEntry snapshots the historized fields as they are now.
func (p *Person) CreateHistoryEntry(now, effectiveDate time.Time, mutationType id.MutationType, reason string, changedBy id.UserID) *PersonHistoryEntry {
	var status *id.MaritalStatus
	if p.MaritalStatus != nil {
		s := *p.MaritalStatus
		status = &s
	}
	return &PersonHistoryEntry{
		HistoryEntry:  id.NewHistoryEntry(now, effectiveDate, mutationType, strings.TrimSpace(reason), changedBy),
		PersonID:      p.ID,
		TenantID:      p.TenantID,
		LastName:      p.LastName,
		FirstName:     p.FirstName,
		MaritalStatus: status,
	}
}

func (p *Person) touch(changedBy id.UserID, now time.Time) {
	p.UpdatedAt = now
	p.UpdatedBy = changedBy
}
