package models

import (
	"time"

	id "govinda/pkg/domain"
)

// PersonHistoryEntry holds the historized Person fields as they were before a
// tracked mutation, together with the bitemporal metadata.
type PersonHistoryEntry struct {
	id.HistoryEntry
	PersonID      id.PersonID
	TenantID      id.TenantID
	LastName      string
	FirstName     string
	MaritalStatus *id.MaritalStatus
}

func historyMeta(h *PersonHistoryEntry) id.HistoryEntry {
	return h.HistoryEntry
}

// StateAt returns the entry describing the person on date, if any.
func StateAt(entries []*PersonHistoryEntry, date time.Time) (*PersonHistoryEntry, bool) {
	return id.StateAt(entries, historyMeta, date)
}
