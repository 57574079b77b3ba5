package handler

import (
	"time"

	"govinda/internal/person/models"
	id "govinda/pkg/domain"
)

type AddressResponse struct {
	ID              string   `json:"id"`
	AddressType     string   `json:"address_type"`
	Street          string   `json:"street"`
	HouseNumber     string   `json:"house_number,omitempty"`
	AdditionalLine  string   `json:"additional_line,omitempty"`
	PostalCode      string   `json:"postal_code"`
	City            string   `json:"city"`
	Canton          string   `json:"canton"`
	CantonName      string   `json:"canton_name"`
	Country         string   `json:"country"`
	PremiumRegionID *string  `json:"premium_region_id,omitempty"`
	ValidFrom       string   `json:"valid_from"`
	ValidTo         string   `json:"valid_to,omitempty"`
	FormattedLines  []string `json:"formatted_lines"`
}

type PersonResponse struct {
	ID                string           `json:"id"`
	AhvNr             string           `json:"ahv_nr"`
	LastName          string           `json:"last_name"`
	FirstName         string           `json:"first_name"`
	FullName          string           `json:"full_name"`
	DateOfBirth       string           `json:"date_of_birth"`
	Gender            string           `json:"gender"`
	Age               int              `json:"age"`
	AgeGroup          string           `json:"age_group"`
	MaritalStatus     *string          `json:"marital_status"`
	Nationality       string           `json:"nationality"`
	PreferredLanguage string           `json:"preferred_language"`
	Status            string           `json:"status"`
	Version           int64            `json:"version"`
	CurrentAddress    *AddressResponse `json:"current_address"`
}

type PersonHistoryResponse struct {
	HistoryID      string  `json:"history_id"`
	LastName       string  `json:"last_name"`
	FirstName      string  `json:"first_name"`
	MaritalStatus  *string `json:"marital_status"`
	ValidFrom      string  `json:"valid_from"`
	ValidTo        string  `json:"valid_to,omitempty"`
	MutationType   string  `json:"mutation_type"`
	MutationReason string  `json:"mutation_reason,omitempty"`
	ChangedBy      string  `json:"changed_by,omitempty"`
	RecordedAt     string  `json:"recorded_at"`
}

func toAddressResponse(a *models.Address) *AddressResponse {
	if a == nil {
		return nil
	}
	return &AddressResponse{
		ID:              a.ID.String(),
		AddressType:     string(a.Type),
		Street:          a.Street,
		HouseNumber:     a.HouseNumber,
		AdditionalLine:  a.AdditionalLine,
		PostalCode:      a.PostalCode,
		City:            a.City,
		Canton:          string(a.Canton),
		CantonName:      a.Canton.Name(),
		Country:         a.Country,
		PremiumRegionID: a.PremiumRegionID,
		ValidFrom:       id.FormatDate(&a.ValidFrom),
		ValidTo:         id.FormatDate(a.ValidTo),
		FormattedLines:  a.FormattedLines(),
	}
}

// toPersonResponse renders p with its derived fields computed for today.
func toPersonResponse(p *models.Person, today time.Time) PersonResponse {
	return PersonResponse{
		ID:                p.ID.String(),
		AhvNr:             p.AhvNumber.String(),
		LastName:          p.LastName,
		FirstName:         p.FirstName,
		FullName:          p.FullName(),
		DateOfBirth:       id.FormatDate(&p.DateOfBirth),
		Gender:            string(p.Gender),
		Age:               p.AgeAt(today),
		AgeGroup:          string(p.AgeGroupAt(today)),
		MaritalStatus:     maritalString(p.MaritalStatus),
		Nationality:       p.Nationality,
		PreferredLanguage: string(p.PreferredLanguage),
		Status:            string(p.Status),
		Version:           p.Version,
		CurrentAddress:    toAddressResponse(p.CurrentAddress(today)),
	}
}

func toHistoryResponse(h *models.PersonHistoryEntry) PersonHistoryResponse {
	resp := PersonHistoryResponse{
		HistoryID:      h.HistoryID.String(),
		LastName:       h.LastName,
		FirstName:      h.FirstName,
		MaritalStatus:  maritalString(h.MaritalStatus),
		ValidFrom:      id.FormatDate(&h.ValidFrom),
		ValidTo:        id.FormatDate(h.ValidTo),
		MutationType:   string(h.MutationType),
		MutationReason: h.MutationReason,
		RecordedAt:     h.RecordedAt.UTC().Format(time.RFC3339),
	}
	if !h.ChangedBy.IsNil() {
		resp.ChangedBy = h.ChangedBy.String()
	}
	return resp
}

func maritalString(m *id.MaritalStatus) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}
