package domain

import "time"

// HistoryEntry is the bitemporal metadata shared by every history record.
//
// ValidFrom/ValidTo is business time: when the recorded values were true.
// RecordedAt/SupersededAt is transaction time: when the system learned them
// and when a later record replaced them. Entries are append-only; superseding
// sets SupersededAt and never rewrites the values.
type HistoryEntry struct {
	HistoryID      HistoryID
	ValidFrom      time.Time
	ValidTo        *time.Time
	RecordedAt     time.Time
	SupersededAt   *time.Time
	MutationType   MutationType
	MutationReason string
	ChangedBy      UserID
}

// NewHistoryEntry builds metadata for a record describing values that stop
// being valid on effectiveDate. ValidFrom is the recording day, not the start
// of the old value's validity; ValidTo is the day before effectiveDate.
func NewHistoryEntry(now, effectiveDate time.Time, mutationType MutationType, reason string, changedBy UserID) HistoryEntry {
	validTo := DayBefore(effectiveDate)
	return HistoryEntry{
		HistoryID:      NewHistoryID(),
		ValidFrom:      DateOf(now),
		ValidTo:        &validTo,
		RecordedAt:     now,
		MutationType:   mutationType,
		MutationReason: reason,
		ChangedBy:      changedBy,
	}
}

// CoversDate reports whether date lies inside [ValidFrom, ValidTo].
func (h HistoryEntry) CoversDate(date time.Time) bool {
	date = DateOf(date)
	if date.Before(DateOf(h.ValidFrom)) {
		return false
	}
	return h.ValidTo == nil || !date.After(DateOf(*h.ValidTo))
}

func (h HistoryEntry) IsSuperseded() bool {
	return h.SupersededAt != nil
}

// Historized is implemented by aggregates that snapshot their tracked fields
// into a history record of type H before a tracked mutation.
type Historized[H any] interface {
	CreateHistoryEntry(now, effectiveDate time.Time, mutationType MutationType, reason string, changedBy UserID) H
}

// StateAt picks the newest non-superseded entry covering date. Entries may be in
// any order; ties on ValidFrom go to the later RecordedAt.
func StateAt[H any](entries []H, meta func(H) HistoryEntry, date time.Time) (H, bool) {
	var (
		best  H
		found bool
		bestM HistoryEntry
	)
	for _, e := range entries {
		m := meta(e)
		if m.IsSuperseded() || !m.CoversDate(date) {
			continue
		}
		if !found || m.ValidFrom.After(bestM.ValidFrom) ||
			(m.ValidFrom.Equal(bestM.ValidFrom) && m.RecordedAt.After(bestM.RecordedAt)) {
			best, bestM, found = e, m, true
		}
	}
	return best, found
}
