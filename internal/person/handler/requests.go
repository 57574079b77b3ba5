package handler

import (
	"strings"
	"time"

	"govinda/internal/person/models"
	"govinda/internal/person/service"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
)

// fieldErrors collects request-shape problems so one response can list all of them.
type fieldErrors []dErrors.FieldError

func (f *fieldErrors) add(field, msg string) {
	*f = append(*f, dErrors.FieldError{Field: field, Message: msg})
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return dErrors.NewFields(dErrors.CodeInvalidInput, "request validation failed", f)
}

func (f *fieldErrors) requireText(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "must not be blank")
	}
}

func (f *fieldErrors) date(field, value string, required bool) *time.Time {
	if strings.TrimSpace(value) == "" {
		if required {
			f.add(field, "is required")
		}
		return nil
	}
	t, err := id.ParseDate(strings.TrimSpace(value))
	if err != nil {
		f.add(field, "must be formatted as YYYY-MM-DD")
		return nil
	}
	return &t
}

func (f *fieldErrors) language(field string, value *string) *id.Language {
	if value == nil {
		return nil
	}
	lang, err := id.ParseLanguage(*value)
	if err != nil {
		f.add(field, "must be one of de, fr, it, en")
		return nil
	}
	return &lang
}

type CreatePersonRequest struct {
	AhvNr             string  `json:"ahv_nr"`
	LastName          string  `json:"last_name"`
	FirstName         string  `json:"first_name"`
	DateOfBirth       string  `json:"date_of_birth"`
	Gender            string  `json:"gender"`
	MaritalStatus     *string `json:"marital_status,omitempty"`
	Nationality       *string `json:"nationality,omitempty"`
	PreferredLanguage *string `json:"preferred_language,omitempty"`

	ahv           id.AhvNumber
	dateOfBirth   time.Time
	gender        id.Gender
	maritalStatus *id.MaritalStatus
	language      *id.Language
}

func (r *CreatePersonRequest) Validate() error {
	var errs fieldErrors
	errs.requireText("ahv_nr", r.AhvNr)
	errs.requireText("last_name", r.LastName)
	errs.requireText("first_name", r.FirstName)
	if dob := errs.date("date_of_birth", r.DateOfBirth, true); dob != nil {
		r.dateOfBirth = *dob
	}
	if g, err := id.ParseGender(r.Gender); err != nil {
		errs.add("gender", "must be MALE, FEMALE or OTHER")
	} else {
		r.gender = g
	}
	if r.MaritalStatus != nil {
		if m, err := id.ParseMaritalStatus(*r.MaritalStatus); err != nil {
			errs.add("marital_status", "unknown marital status")
		} else {
			r.maritalStatus = &m
		}
	}
	r.language = errs.language("preferred_language", r.PreferredLanguage)
	if err := errs.err(); err != nil {
		return err
	}

	ahv, err := id.ParseAhvNumber(r.AhvNr)
	if err != nil {
		return err
	}
	r.ahv = ahv
	return nil
}

func (r *CreatePersonRequest) command(tenantID id.TenantID, userID id.UserID) service.CreatePersonCommand {
	return service.CreatePersonCommand{
		TenantID:          tenantID,
		UserID:            userID,
		AhvNumber:         r.ahv,
		LastName:          r.LastName,
		FirstName:         r.FirstName,
		DateOfBirth:       r.dateOfBirth,
		Gender:            r.gender,
		MaritalStatus:     r.maritalStatus,
		Nationality:       r.Nationality,
		PreferredLanguage: r.language,
	}
}

type UpdatePersonRequest struct {
	Nationality       *string `json:"nationality,omitempty"`
	PreferredLanguage *string `json:"preferred_language,omitempty"`
	ExpectedVersion   *int64  `json:"expected_version,omitempty"`

	language *id.Language
}

func (r *UpdatePersonRequest) Validate() error {
	var errs fieldErrors
	if r.Nationality == nil && r.PreferredLanguage == nil {
		errs.add("nationality", "nationality or preferred_language is required")
	}
	r.language = errs.language("preferred_language", r.PreferredLanguage)
	return errs.err()
}

func (r *UpdatePersonRequest) command(tenantID id.TenantID, userID id.UserID, personID id.PersonID) service.UpdatePersonCommand {
	return service.UpdatePersonCommand{
		TenantID:          tenantID,
		UserID:            userID,
		PersonID:          personID,
		Nationality:       r.Nationality,
		PreferredLanguage: r.language,
		ExpectedVersion:   r.ExpectedVersion,
	}
}

type ChangeNameRequest struct {
	NewLastName     string `json:"new_last_name"`
	NewFirstName    string `json:"new_first_name,omitempty"`
	EffectiveDate   string `json:"effective_date"`
	Reason          string `json:"reason,omitempty"`
	ExpectedVersion *int64 `json:"expected_version,omitempty"`

	effectiveDate time.Time
}

func (r *ChangeNameRequest) Validate() error {
	var errs fieldErrors
	errs.requireText("new_last_name", r.NewLastName)
	if d := errs.date("effective_date", r.EffectiveDate, true); d != nil {
		r.effectiveDate = *d
	}
	if len(r.Reason) > 500 {
		errs.add("reason", "must be 500 characters or less")
	}
	return errs.err()
}

func (r *ChangeNameRequest) command(tenantID id.TenantID, userID id.UserID, personID id.PersonID) service.ChangeNameCommand {
	return service.ChangeNameCommand{
		TenantID:        tenantID,
		UserID:          userID,
		PersonID:        personID,
		NewLastName:     r.NewLastName,
		NewFirstName:    r.NewFirstName,
		Reason:          r.Reason,
		EffectiveDate:   r.effectiveDate,
		ExpectedVersion: r.ExpectedVersion,
	}
}

type ChangeMaritalStatusRequest struct {
	NewMaritalStatus string `json:"new_marital_status"`
	EffectiveDate    string `json:"effective_date"`
	Reason           string `json:"reason,omitempty"`
	ExpectedVersion  *int64 `json:"expected_version,omitempty"`

	status        id.MaritalStatus
	effectiveDate time.Time
}

func (r *ChangeMaritalStatusRequest) Validate() error {
	var errs fieldErrors
	if m, err := id.ParseMaritalStatus(r.NewMaritalStatus); err != nil {
		errs.add("new_marital_status", "unknown marital status")
	} else {
		r.status = m
	}
	if d := errs.date("effective_date", r.EffectiveDate, true); d != nil {
		r.effectiveDate = *d
	}
	if len(r.Reason) > 500 {
		errs.add("reason", "must be 500 characters or less")
	}
	return errs.err()
}

func (r *ChangeMaritalStatusRequest) command(tenantID id.TenantID, userID id.UserID, personID id.PersonID) service.ChangeMaritalStatusCommand {
	return service.ChangeMaritalStatusCommand{
		TenantID:         tenantID,
		UserID:           userID,
		PersonID:         personID,
		NewMaritalStatus: r.status,
		Reason:           r.Reason,
		EffectiveDate:    r.effectiveDate,
		ExpectedVersion:  r.ExpectedVersion,
	}
}

type AddAddressRequest struct {
	AddressType     string  `json:"address_type"`
	Street          string  `json:"street"`
	HouseNumber     string  `json:"house_number,omitempty"`
	AdditionalLine  string  `json:"additional_line,omitempty"`
	PostalCode      string  `json:"postal_code"`
	City            string  `json:"city"`
	Canton          string  `json:"canton"`
	Country         string  `json:"country,omitempty"`
	PremiumRegionID *string `json:"premium_region_id,omitempty"`
	ValidFrom       string  `json:"valid_from"`
	ValidTo         string  `json:"valid_to,omitempty"`
	CloseExistingOn string  `json:"close_existing_on,omitempty"`
	ExpectedVersion *int64  `json:"expected_version,omitempty"`

	fields  models.AddressFields
	closeOn *time.Time
}

func (r *AddAddressRequest) Validate() error {
	var errs fieldErrors
	addressType := id.AddressTypeMain
	if strings.TrimSpace(r.AddressType) != "" {
		t, err := id.ParseAddressType(r.AddressType)
		if err != nil {
			errs.add("address_type", "must be MAIN, CORRESPONDENCE or BILLING")
		}
		addressType = t
	}
	errs.requireText("street", r.Street)
	errs.requireText("postal_code", r.PostalCode)
	errs.requireText("city", r.City)
	canton, err := id.ParseCanton(r.Canton)
	if err != nil {
		errs.add("canton", "must be a Swiss canton abbreviation")
	}
	validFrom := errs.date("valid_from", r.ValidFrom, true)
	validTo := errs.date("valid_to", r.ValidTo, false)
	r.closeOn = errs.date("close_existing_on", r.CloseExistingOn, false)
	if err := errs.err(); err != nil {
		return err
	}

	r.fields = models.AddressFields{
		Type:            addressType,
		Street:          r.Street,
		HouseNumber:     r.HouseNumber,
		AdditionalLine:  r.AdditionalLine,
		PostalCode:      r.PostalCode,
		City:            r.City,
		Canton:          canton,
		Country:         r.Country,
		PremiumRegionID: r.PremiumRegionID,
		ValidFrom:       *validFrom,
		ValidTo:         validTo,
	}
	return nil
}

func (r *AddAddressRequest) command(tenantID id.TenantID, userID id.UserID, personID id.PersonID) service.AddAddressCommand {
	return service.AddAddressCommand{
		TenantID:        tenantID,
		UserID:          userID,
		PersonID:        personID,
		Address:         r.fields,
		CloseExistingOn: r.closeOn,
		ExpectedVersion: r.ExpectedVersion,
	}
}
