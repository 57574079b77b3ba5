package domain

import (
	"time"

	dErrors "govinda/pkg/domain-errors"
)

// DateLayout is the wire format for business dates.
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar day in UTC. Business dates (birth dates,
// validity windows) are always compared in this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD.
// Errors: CodeInvalidInput for anything else.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD")
	}
	return t, nil
}

// FormatDate renders a business date; nil renders as empty.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// DayBefore returns the calendar day preceding date.
func DayBefore(date time.Time) time.Time {
	return DateOf(date).AddDate(0, 0, -1)
}

// YearsBetween counts full years from start to end, crediting a year only once
// the anniversary has been reached.
func YearsBetween(start, end time.Time) int {
	start, end = DateOf(start), DateOf(end)
	years := end.Year() - start.Year()
	if end.Month() < start.Month() || (end.Month() == start.Month() && end.Day() < start.Day()) {
		years--
	}
	return years
}
