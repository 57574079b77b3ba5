// Package domainerrors defines the error taxonomy shared by models, services and
// the HTTP boundary.
//
// Models and services return *Error values carrying a Code. Only the transport
// layer (pkg/platform/httputil) maps codes to status codes and wire identifiers.
// Stores never return these directly; they return pkg/platform/sentinel errors
// which services translate.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// Request-shape errors (400).
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"

	// Domain rule violations (422).
	CodeValidation         Code = "validation_error"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInvalidAhvNumber   Code = "invalid_ahv_number"
	CodeInvalidMutation    Code = "invalid_mutation"

	// Lookup and state errors.
	CodeNotFound               Code = "entity_not_found"
	CodeDuplicate              Code = "duplicate_entity"
	CodeConflict               Code = "conflict"
	CodeConcurrentModification Code = "concurrent_modification"

	// Access errors.
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeTenantAccess Code = "unauthorized_tenant_access"

	// Infrastructure errors.
	CodeTimeout  Code = "timeout"
	CodeInternal Code = "internal_error"
)

// FieldError names a single invalid request field.
type FieldError struct {
	Field   string
	Message string
}

// Error is a coded domain error. Err holds the wrapped cause, if any.
type Error struct {
	Code    Code
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewFields creates a coded error listing the offending request fields.
func NewFields(code Code, msg string, fields []FieldError) error {
	return &Error{Code: code, Message: msg, Fields: fields}
}

// Wrap attaches a code and message to an underlying error.
// Returns nil when err is nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// As returns the outermost *Error in the chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether the outermost domain error carries code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// Is is an alias of HasCode kept for call-site readability in tests.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of the outermost domain error, or CodeInternal when
// err carries none.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the message of the outermost domain error without the
// wrapped cause, so internal details never reach clients.
func MessageOf(err error) string {
	if de, ok := As(err); ok {
		return de.Message
	}
	return ""
}

// FieldsOf returns the field errors of the outermost domain error.
func FieldsOf(err error) []FieldError {
	if de, ok := As(err); ok {
		return de.Fields
	}
	return nil
}
