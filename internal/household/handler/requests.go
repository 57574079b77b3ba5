package handler

import (
	"strings"
	"time"

	"govinda/internal/household/service"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
)

type CreateHouseholdRequest struct {
	Name string `json:"name"`
}

func (r *CreateHouseholdRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return invalid("name", "must not be blank")
	}
	if len(r.Name) > 200 {
		return invalid("name", "must be 200 characters or less")
	}
	return nil
}

func (r *CreateHouseholdRequest) command(tenantID id.TenantID, userID id.UserID) service.CreateHouseholdCommand {
	return service.CreateHouseholdCommand{TenantID: tenantID, UserID: userID, Name: r.Name}
}

type RenameHouseholdRequest struct {
	CreateHouseholdRequest
	ExpectedVersion *int64 `json:"expected_version,omitempty"`
}

func (r *RenameHouseholdRequest) command(tenantID id.TenantID, userID id.UserID, householdID id.HouseholdID) service.RenameHouseholdCommand {
	return service.RenameHouseholdCommand{
		TenantID:        tenantID,
		UserID:          userID,
		HouseholdID:     householdID,
		Name:            r.Name,
		ExpectedVersion: r.ExpectedVersion,
	}
}

type AddMemberRequest struct {
	PersonID        string `json:"person_id"`
	Role            string `json:"role"`
	ValidFrom       string `json:"valid_from,omitempty"`
	ExpectedVersion *int64 `json:"expected_version,omitempty"`

	personID  id.PersonID
	role      id.HouseholdRole
	validFrom time.Time
}

func (r *AddMemberRequest) Validate() error {
	var fields []dErrors.FieldError
	if personID, err := id.ParsePersonID(strings.TrimSpace(r.PersonID)); err != nil {
		fields = append(fields, dErrors.FieldError{Field: "person_id", Message: "must be a UUID"})
	} else {
		r.personID = personID
	}
	if role, err := id.ParseHouseholdRole(r.Role); err != nil {
		fields = append(fields, dErrors.FieldError{Field: "role", Message: "must be PRIMARY, PARTNER or CHILD"})
	} else {
		r.role = role
	}
	if raw := strings.TrimSpace(r.ValidFrom); raw != "" {
		if d, err := id.ParseDate(raw); err != nil {
			fields = append(fields, dErrors.FieldError{Field: "valid_from", Message: "must be formatted as YYYY-MM-DD"})
		} else {
			r.validFrom = d
		}
	}
	if len(fields) > 0 {
		return dErrors.NewFields(dErrors.CodeInvalidInput, "request validation failed", fields)
	}
	return nil
}

func (r *AddMemberRequest) command(tenantID id.TenantID, userID id.UserID, householdID id.HouseholdID) service.AddMemberCommand {
	return service.AddMemberCommand{
		TenantID:        tenantID,
		UserID:          userID,
		HouseholdID:     householdID,
		PersonID:        r.personID,
		Role:            r.role,
		ValidFrom:       r.validFrom,
		ExpectedVersion: r.ExpectedVersion,
	}
}

func invalid(field, msg string) error {
	return dErrors.NewFields(dErrors.CodeInvalidInput, "request validation failed",
		[]dErrors.FieldError{{Field: field, Message: msg}})
}
