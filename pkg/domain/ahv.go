package domain

import (
	"regexp"
	"strings"

	dErrors "govinda/pkg/domain-errors"
)

// AhvNumber is the Swiss social-insurance number (AHV/AVS), e.g. 756.1234.5678.90.
// Invariant: the value matches 756.XXXX.XXXX.XX exactly.
//
// Construct via ParseAhvNumber or AhvNumberFromUnformatted; direct casting
// bypasses validation.
type AhvNumber string

var ahvPattern = regexp.MustCompile(`^756\.\d{4}\.\d{4}\.\d{2}$`)

const ahvDigits = 13

// ParseAhvNumber validates a formatted AHV number.
// Errors: CodeInvalidAhvNumber when the value does not match the format.
func ParseAhvNumber(s string) (AhvNumber, error) {
	s = strings.TrimSpace(s)
	if !ahvPattern.MatchString(s) {
		return "", dErrors.Newf(dErrors.CodeInvalidAhvNumber,
			"invalid AHV number format: %s (expected 756.XXXX.XXXX.XX)", s)
	}
	return AhvNumber(s), nil
}

// AhvNumberFromUnformatted builds an AHV number from its 13 bare digits.
func AhvNumberFromUnformatted(digits string) (AhvNumber, error) {
	if len(digits) != ahvDigits || !isASCIIDigits(digits) {
		return "", dErrors.New(dErrors.CodeInvalidAhvNumber, "AHV number must have exactly 13 digits")
	}
	return ParseAhvNumber(digits[0:3] + "." + digits[3:7] + "." + digits[7:11] + "." + digits[11:13])
}

// Unformatted returns the 13 digits without separators.
func (a AhvNumber) Unformatted() string {
	return strings.ReplaceAll(string(a), ".", "")
}

func (a AhvNumber) String() string {
	return string(a)
}

func (a AhvNumber) IsZero() bool {
	return a == ""
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
