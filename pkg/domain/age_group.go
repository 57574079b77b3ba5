package domain

import (
	dErrors "govinda/pkg/domain-errors"
)

// AgeGroup is the premium age band used by Swiss basic insurance.
type AgeGroup string

const (
	AgeGroupChild      AgeGroup = "CHILD"
	AgeGroupYoungAdult AgeGroup = "YOUNG_ADULT"
	AgeGroupAdult      AgeGroup = "ADULT"
)

const (
	childMaxAge      = 18
	youngAdultMaxAge = 25
)

// AgeGroupForAge maps whole years to a band: 0-18 CHILD, 19-25 YOUNG_ADULT, 26+ ADULT.
func AgeGroupForAge(age int) AgeGroup {
	switch {
	case age <= childMaxAge:
		return AgeGroupChild
	case age <= youngAdultMaxAge:
		return AgeGroupYoungAdult
	default:
		return AgeGroupAdult
	}
}

// MinAge is the inclusive lower bound of the band.
func (g AgeGroup) MinAge() int {
	switch g {
	case AgeGroupYoungAdult:
		return childMaxAge + 1
	case AgeGroupAdult:
		return youngAdultMaxAge + 1
	default:
		return 0
	}
}

// MaxAge is the inclusive upper bound; ok is false for the open-ended ADULT band.
func (g AgeGroup) MaxAge() (age int, ok bool) {
	switch g {
	case AgeGroupChild:
		return childMaxAge, true
	case AgeGroupYoungAdult:
		return youngAdultMaxAge, true
	default:
		return 0, false
	}
}

// Franchise is the annual deductible of basic insurance.
type Franchise int

const (
	FranchiseCHF0    Franchise = 0
	FranchiseCHF100  Franchise = 100
	FranchiseCHF200  Franchise = 200
	FranchiseCHF300  Franchise = 300
	FranchiseCHF400  Franchise = 400
	FranchiseCHF500  Franchise = 500
	FranchiseCHF600  Franchise = 600
	FranchiseCHF1000 Franchise = 1000
	FranchiseCHF1500 Franchise = 1500
	FranchiseCHF2000 Franchise = 2000
	FranchiseCHF2500 Franchise = 2500
)

type franchiseRule struct {
	franchise   Franchise
	forChildren bool
	forAdults   bool
}

// franchiseRules is ordered by amount.
var franchiseRules = []franchiseRule{
	{FranchiseCHF0, true, false},
	{FranchiseCHF100, true, false},
	{FranchiseCHF200, true, false},
	{FranchiseCHF300, true, true},
	{FranchiseCHF400, true, false},
	{FranchiseCHF500, false, true},
	{FranchiseCHF600, true, false},
	{FranchiseCHF1000, false, true},
	{FranchiseCHF1500, false, true},
	{FranchiseCHF2000, false, true},
	{FranchiseCHF2500, false, true},
}

// FranchisesFor lists the franchises selectable for an age band, ascending.
func FranchisesFor(group AgeGroup) []Franchise {
	var out []Franchise
	for _, r := range franchiseRules {
		if (group == AgeGroupChild && r.forChildren) || (group != AgeGroupChild && r.forAdults) {
			out = append(out, r.franchise)
		}
	}
	return out
}

// DefaultFranchise is CHF 0 for children and CHF 300 otherwise.
func DefaultFranchise(group AgeGroup) Franchise {
	if group == AgeGroupChild {
		return FranchiseCHF0
	}
	return FranchiseCHF300
}

// FranchiseFromAmount resolves a whole-franc amount.
func FranchiseFromAmount(amount int) (Franchise, error) {
	for _, r := range franchiseRules {
		if int(r.franchise) == amount {
			return r.franchise, nil
		}
	}
	return 0, dErrors.Newf(dErrors.CodeValidation, "unknown franchise amount: %d", amount)
}

// Amount returns the franchise as Swiss francs.
func (f Franchise) Amount() Money {
	return CHFFromInt(int64(f))
}
