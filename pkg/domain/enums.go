package domain

import (
	"strings"

	dErrors "govinda/pkg/domain-errors"
)

// Currency is an ISO 4217 code accepted for Money.
type Currency string

const (
	CurrencyCHF Currency = "CHF"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyCHF, CurrencyEUR, CurrencyUSD:
		return true
	}
	return false
}

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "unsupported currency: %s", s)
	}
	return c, nil
}

// Language is a Swiss national language plus English.
type Language string

const (
	LanguageDE Language = "de"
	LanguageFR Language = "fr"
	LanguageIT Language = "it"
	LanguageEN Language = "en"
)

// SupportedLanguages lists languages in fallback-priority order.
var SupportedLanguages = []Language{LanguageDE, LanguageFR, LanguageIT, LanguageEN}

func (l Language) IsValid() bool {
	switch l {
	case LanguageDE, LanguageFR, LanguageIT, LanguageEN:
		return true
	}
	return false
}

func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "unsupported language: %s", s)
	}
	return l, nil
}

// Gender as recorded in the civil registry.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

var genderCodes = map[string]Gender{"M": GenderMale, "F": GenderFemale, "O": GenderOther}

// ParseGender accepts either the name (MALE) or the one-letter code (M).
func ParseGender(s string) (Gender, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch g := Gender(s); g {
	case GenderMale, GenderFemale, GenderOther:
		return g, nil
	}
	if g, ok := genderCodes[s]; ok {
		return g, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown gender: %s", s)
}

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Code returns the one-letter registry code.
func (g Gender) Code() string {
	for code, gender := range genderCodes {
		if gender == g {
			return code
		}
	}
	return ""
}

// MaritalStatus follows the Swiss civil status catalogue.
type MaritalStatus string

const (
	MaritalStatusSingle                MaritalStatus = "SINGLE"
	MaritalStatusMarried               MaritalStatus = "MARRIED"
	MaritalStatusDivorced              MaritalStatus = "DIVORCED"
	MaritalStatusWidowed               MaritalStatus = "WIDOWED"
	MaritalStatusRegisteredPartnership MaritalStatus = "REGISTERED_PARTNERSHIP"
	MaritalStatusDissolvedPartnership  MaritalStatus = "DISSOLVED_PARTNERSHIP"
)

var maritalStatusCodes = map[MaritalStatus]string{
	MaritalStatusSingle:                "S",
	MaritalStatusMarried:               "M",
	MaritalStatusDivorced:              "D",
	MaritalStatusWidowed:               "W",
	MaritalStatusRegisteredPartnership: "P",
	MaritalStatusDissolvedPartnership:  "DP",
}

func (m MaritalStatus) IsValid() bool {
	_, ok := maritalStatusCodes[m]
	return ok
}

// Code returns the short civil-registry code, e.g. "DP".
func (m MaritalStatus) Code() string {
	return maritalStatusCodes[m]
}

func ParseMaritalStatus(s string) (MaritalStatus, error) {
	m := MaritalStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown marital status: %s", s)
	}
	return m, nil
}

// ParseMaritalStatusCode resolves a short code such as "M" or "DP".
func ParseMaritalStatusCode(code string) (MaritalStatus, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for status, c := range maritalStatusCodes {
		if c == code {
			return status, nil
		}
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown marital status code: %s", code)
}

// Canton is one of the 26 Swiss cantons by its two-letter abbreviation.
type Canton string

var cantons = map[Canton]string{
	"AG": "Aargau", "AI": "Appenzell Innerrhoden", "AR": "Appenzell Ausserrhoden",
	"BE": "Bern", "BL": "Basel-Landschaft", "BS": "Basel-Stadt",
	"FR": "Fribourg", "GE": "Genève", "GL": "Glarus", "GR": "Graubünden",
	"JU": "Jura", "LU": "Luzern", "NE": "Neuchâtel", "NW": "Nidwalden",
	"OW": "Obwalden", "SG": "St. Gallen", "SH": "Schaffhausen", "SO": "Solothurn",
	"SZ": "Schwyz", "TG": "Thurgau", "TI": "Ticino", "UR": "Uri",
	"VD": "Vaud", "VS": "Valais", "ZG": "Zug", "ZH": "Zürich",
}

func (c Canton) IsValid() bool {
	_, ok := cantons[c]
	return ok
}

// Name returns the canton's official name.
func (c Canton) Name() string {
	return cantons[c]
}

func ParseCanton(s string) (Canton, error) {
	c := Canton(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown canton: %s", s)
	}
	return c, nil
}

// PersonStatus is the lifecycle state of an insured person.
type PersonStatus string

const (
	PersonStatusActive    PersonStatus = "ACTIVE"
	PersonStatusDeceased  PersonStatus = "DECEASED"
	PersonStatusEmigrated PersonStatus = "EMIGRATED"
)

func (p PersonStatus) IsValid() bool {
	switch p {
	case PersonStatusActive, PersonStatusDeceased, PersonStatusEmigrated:
		return true
	}
	return false
}

func ParsePersonStatus(s string) (PersonStatus, error) {
	switch p := PersonStatus(strings.ToUpper(strings.TrimSpace(s))); p {
	case PersonStatusActive, PersonStatusDeceased, PersonStatusEmigrated:
		return p, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown person status: %s", s)
}

// AddressType distinguishes the purpose of an address.
type AddressType string

const (
	AddressTypeMain           AddressType = "MAIN"
	AddressTypeCorrespondence AddressType = "CORRESPONDENCE"
	AddressTypeBilling        AddressType = "BILLING"
)

func (a AddressType) IsValid() bool {
	switch a {
	case AddressTypeMain, AddressTypeCorrespondence, AddressTypeBilling:
		return true
	}
	return false
}

func ParseAddressType(s string) (AddressType, error) {
	switch a := AddressType(strings.ToUpper(strings.TrimSpace(s))); a {
	case AddressTypeMain, AddressTypeCorrespondence, AddressTypeBilling:
		return a, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown address type: %s", s)
}

// HouseholdRole is a member's role within a household.
type HouseholdRole string

const (
	HouseholdRolePrimary HouseholdRole = "PRIMARY"
	HouseholdRolePartner HouseholdRole = "PARTNER"
	HouseholdRoleChild   HouseholdRole = "CHILD"
)

func (r HouseholdRole) IsValid() bool {
	switch r {
	case HouseholdRolePrimary, HouseholdRolePartner, HouseholdRoleChild:
		return true
	}
	return false
}

func ParseHouseholdRole(s string) (HouseholdRole, error) {
	switch r := HouseholdRole(strings.ToUpper(strings.TrimSpace(s))); r {
	case HouseholdRolePrimary, HouseholdRolePartner, HouseholdRoleChild:
		return r, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown household role: %s", s)
}

// MutationType classifies a history entry.
type MutationType string

const (
	MutationCreate       MutationType = "CREATE"
	MutationUpdate       MutationType = "UPDATE"
	MutationCorrection   MutationType = "CORRECTION"
	MutationCancellation MutationType = "CANCELLATION"
)

func ParseMutationType(s string) (MutationType, error) {
	switch m := MutationType(strings.ToUpper(strings.TrimSpace(s))); m {
	case MutationCreate, MutationUpdate, MutationCorrection, MutationCancellation:
		return m, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown mutation type: %s", s)
}
