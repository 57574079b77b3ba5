package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "govinda/pkg/domain-errors"
)

// Typed identifiers. Each is a distinct type so a PersonID can never be passed
// where a TenantID is expected.
type (
	TenantID          uuid.UUID
	UserID            uuid.UUID
	PersonID          uuid.UUID
	AddressID         uuid.UUID
	HouseholdID       uuid.UUID
	HouseholdMemberID uuid.UUID
	HistoryID         uuid.UUID
)

const maxIDLength = 64

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" || strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return u, nil
}

// ParseTenantID parses a tenant id at a trust boundary.
// Errors: CodeInvalidInput for empty, malformed, or nil UUIDs.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant id")
	return TenantID(u), err
}

// ParseUserID parses a user id at a trust boundary.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

// ParsePersonID parses a person id at a trust boundary.
func ParsePersonID(s string) (PersonID, error) {
	u, err := parseUUID(s, "person id")
	return PersonID(u), err
}

// ParseAddressID parses an address id at a trust boundary.
func ParseAddressID(s string) (AddressID, error) {
	u, err := parseUUID(s, "address id")
	return AddressID(u), err
}

// ParseHouseholdID parses a household id at a trust boundary.
func ParseHouseholdID(s string) (HouseholdID, error) {
	u, err := parseUUID(s, "household id")
	return HouseholdID(u), err
}

func NewPersonID() PersonID                   { return PersonID(uuid.New()) }
func NewAddressID() AddressID                 { return AddressID(uuid.New()) }
func NewHouseholdID() HouseholdID             { return HouseholdID(uuid.New()) }
func NewHouseholdMemberID() HouseholdMemberID { return HouseholdMemberID(uuid.New()) }
func NewHistoryID() HistoryID                 { return HistoryID(uuid.New()) }

func (id TenantID) String() string          { return uuid.UUID(id).String() }
func (id UserID) String() string            { return uuid.UUID(id).String() }
func (id PersonID) String() string          { return uuid.UUID(id).String() }
func (id AddressID) String() string         { return uuid.UUID(id).String() }
func (id HouseholdID) String() string       { return uuid.UUID(id).String() }
func (id HouseholdMemberID) String() string { return uuid.UUID(id).String() }
func (id HistoryID) String() string         { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id PersonID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id HouseholdID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id TenantID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id PersonID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id AddressID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id HouseholdID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id HouseholdMemberID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id HistoryID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *PersonID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *HouseholdID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *TenantID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *AddressID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *HouseholdMemberID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *HistoryID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
