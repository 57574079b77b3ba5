// Package sentinel holds the facts a person or household store reports about
// a lookup or write. Services translate them into domain-errors codes, so no
// handler ever sees one.
package sentinel

import "errors"

var (
	// ErrNotFound means no row exists for the id, or it belongs to another tenant.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyUsed means a unique key such as tenant plus AHV number is taken.
	ErrAlreadyUsed = errors.New("unique key already used")
	// ErrConflict means the stored version moved on since the caller read it.
	ErrConflict = errors.New("stale version")
)
