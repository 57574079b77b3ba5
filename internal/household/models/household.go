package models

import (
	"strings"
	"time"

	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
)

const maxNameLength = 200

// Household groups persons insured as a family unit.
//
// Invariants:
//   - Name is non-blank and at most 200 characters
//   - At most one current member has role PRIMARY
//   - A person holds at most one current membership in the household
//
// Members are never deleted; removal ends the membership by setting ValidTo.
type Household struct {
	ID        id.HouseholdID
	TenantID  id.TenantID
	Name      string
	Members   []*HouseholdMember
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HouseholdMember links a person to a household for [ValidFrom, ValidTo].
type HouseholdMember struct {
	ID          id.HouseholdMemberID
	HouseholdID id.HouseholdID
	PersonID    id.PersonID
	Role        id.HouseholdRole
	ValidFrom   time.Time
	ValidTo     *time.Time
}

// IsCurrent reports whether the membership has not ended before today.
func (m *HouseholdMember) IsCurrent(today time.Time) bool {
	return m.ValidTo == nil || !m.ValidTo.Before(id.DateOf(today))
}

func NewHousehold(householdID id.HouseholdID, tenantID id.TenantID, name string, now time.Time) (*Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "household name must not be blank")
	}
	if len(name) > maxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "household name must be 200 characters or less")
	}
	return &Household{
		ID:        householdID,
		TenantID:  tenantID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CurrentMembers returns the memberships that are current on today.
func (h *Household) CurrentMembers(today time.Time) []*HouseholdMember {
	var current []*HouseholdMember
	for _, m := range h.Members {
		if m.IsCurrent(today) {
			current = append(current, m)
		}
	}
	return current
}

// PrimaryMember returns the current PRIMARY member, or nil.
func (h *Household) PrimaryMember(today time.Time) *HouseholdMember {
	for _, m := range h.CurrentMembers(today) {
		if m.Role == id.HouseholdRolePrimary {
			return m
		}
	}
	return nil
}

func (h *Household) HasPrimary(today time.Time) bool {
	return h.PrimaryMember(today) != nil
}

func (h *Household) ChildCount(today time.Time) int {
	n := 0
	for _, m := range h.CurrentMembers(today) {
		if m.Role == id.HouseholdRoleChild {
			n++
		}
	}
	return n
}

// MemberFor returns the current membership of personID, or nil.
func (h *Household) MemberFor(personID id.PersonID, today time.Time) *HouseholdMember {
	for _, m := range h.CurrentMembers(today) {
		if m.PersonID == personID {
			return m
		}
	}
	return nil
}

// CanAddMember checks the membership invariants for a new member.
func (h *Household) CanAddMember(personID id.PersonID, role id.HouseholdRole, today time.Time) error {
	if !role.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown household role: %s", role)
	}
	if h.MemberFor(personID, today) != nil {
		return dErrors.New(dErrors.CodeInvalidMutation, "person is already a member of this household")
	}
	if role == id.HouseholdRolePrimary && h.HasPrimary(today) {
		return dErrors.New(dErrors.CodeInvalidMutation, "household already has a primary member")
	}
	return nil
}

// ApplyAddMember appends the membership. Call CanAddMember first.
func (h *Household) ApplyAddMember(personID id.PersonID, role id.HouseholdRole, validFrom, now time.Time) *HouseholdMember {
	member := &HouseholdMember{
		ID:          id.NewHouseholdMemberID(),
		HouseholdID: h.ID,
		PersonID:    personID,
		Role:        role,
		ValidFrom:   id.DateOf(validFrom),
	}
	h.Members = append(h.Members, member)
	h.UpdatedAt = now
	return member
}

// AddMember validates and appends a membership in one call.
func (h *Household) AddMember(personID id.PersonID, role id.HouseholdRole, validFrom, now time.Time) (*HouseholdMember, error) {
	if err := h.CanAddMember(personID, role, now); err != nil {
		return nil, err
	}
	return h.ApplyAddMember(personID, role, validFrom, now), nil
}

// RemoveMember ends the current membership of personID on validTo.
func (h *Household) RemoveMember(personID id.PersonID, validTo, now time.Time) (*HouseholdMember, error) {
	member := h.MemberFor(personID, now)
	if member == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "member not found in household")
	}
	end := id.DateOf(validTo)
	if end.Before(member.ValidFrom) {
		return nil, dErrors.New(dErrors.CodeInvalidMutation, "membership cannot end before it starts")
	}
	member.ValidTo = &end
	h.UpdatedAt = now
	return member, nil
}

// Rename changes the household name.
func (h *Household) Rename(name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "household name must not be blank")
	}
	if len(name) > maxNameLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "household name must be 200 characters or less")
	}
	h.Name = name
	h.UpdatedAt = now
	return nil
}
