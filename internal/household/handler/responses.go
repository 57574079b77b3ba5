package handler

import (
	"time"

	"govinda/internal/household/models"
	id "govinda/pkg/domain"
)

type MemberResponse struct {
	ID        string `json:"id"`
	PersonID  string `json:"person_id"`
	Role      string `json:"role"`
	ValidFrom string `json:"valid_from"`
	ValidTo   string `json:"valid_to,omitempty"`
	Current   bool   `json:"current"`
}

type HouseholdResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	PrimaryPersonID string           `json:"primary_person_id,omitempty"`
	ChildCount      int              `json:"child_count"`
	Members         []MemberResponse `json:"members"`
	Version         int64            `json:"version"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
}

// toHouseholdResponse renders h with membership state evaluated for today.
func toHouseholdResponse(h *models.Household, today time.Time) HouseholdResponse {
	resp := HouseholdResponse{
		ID:         h.ID.String(),
		Name:       h.Name,
		ChildCount: h.ChildCount(today),
		Members:    make([]MemberResponse, 0, len(h.Members)),
		Version:    h.Version,
		CreatedAt:  h.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  h.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if primary := h.PrimaryMember(today); primary != nil {
		resp.PrimaryPersonID = primary.PersonID.String()
	}
	for _, m := range h.Members {
		resp.Members = append(resp.Members, toMemberResponse(m, today))
	}
	return resp
}

func toMemberResponse(m *models.HouseholdMember, today time.Time) MemberResponse {
	return MemberResponse{
		ID:        m.ID.String(),
		PersonID:  m.PersonID.String(),
		Role:      string(m.Role),
		ValidFrom: id.FormatDate(&m.ValidFrom),
		ValidTo:   id.FormatDate(m.ValidTo),
		Current:   m.IsCurrent(today),
	}
}
