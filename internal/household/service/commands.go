package service

import (
	"time"

	id "govinda/pkg/domain"
)

type CreateHouseholdCommand struct {
	TenantID id.TenantID
	UserID   id.UserID
	Name     string
}

type RenameHouseholdCommand struct {
	TenantID        id.TenantID
	UserID          id.UserID
	HouseholdID     id.HouseholdID
	Name            string
	ExpectedVersion *int64
}

type AddMemberCommand struct {
	TenantID        id.TenantID
	UserID          id.UserID
	HouseholdID     id.HouseholdID
	PersonID        id.PersonID
	Role            id.HouseholdRole
	ValidFrom       time.Time
	ExpectedVersion *int64
}

type RemoveMemberCommand struct {
	TenantID    id.TenantID
	UserID      id.UserID
	HouseholdID id.HouseholdID
	PersonID    id.PersonID
	// ValidTo defaults to today when zero.
	ValidTo         time.Time
	ExpectedVersion *int64
}

type DeleteHouseholdCommand struct {
	TenantID        id.TenantID
	UserID          id.UserID
	HouseholdID     id.HouseholdID
	ExpectedVersion *int64
}
