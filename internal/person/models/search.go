package models

import (
	"strings"
	"time"
)

// SearchCriteria filters persons. Empty fields are ignored; all set fields must match.
type SearchCriteria struct {
	LastName    string
	FirstName   string
	AhvNumber   string
	DateOfBirth *time.Time
	PostalCode  string
}

func (c SearchCriteria) IsEmpty() bool {
	return c.LastName == "" && c.FirstName == "" && c.AhvNumber == "" &&
		c.DateOfBirth == nil && c.PostalCode == ""
}

// Matches applies the criteria the way the SQL store does: names match as
// case-insensitive substrings, the AHV number as a substring of its formatted
// form, and the postal code against any address without an end date.
func (c SearchCriteria) Matches(p *Person) bool {
	if c.LastName != "" && !containsFold(p.LastName, c.LastName) {
		return false
	}
	if c.FirstName != "" && !containsFold(p.FirstName, c.FirstName) {
		return false
	}
	if c.AhvNumber != "" && !strings.Contains(p.AhvNumber.String(), c.AhvNumber) {
		return false
	}
	if c.DateOfBirth != nil && !p.DateOfBirth.Equal(*c.DateOfBirth) {
		return false
	}
	if c.PostalCode != "" {
		found := false
		for _, a := range p.Addresses {
			if a.ValidTo == nil && a.PostalCode == c.PostalCode {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
