// Package httputil holds the JSON response helpers shared by all handlers.
// WriteError is the only place where domain error codes become HTTP status codes.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
	"govinda/pkg/platform/i18n"
	"govinda/pkg/requestcontext"
)

const maxBodyBytes = 1 << 20

// Validatable is implemented by request DTOs. Validate normalizes and parses
// the decoded body and returns a coded error when it is unusable.
type Validatable interface {
	Validate() error
}

// ErrorResponse is the wire shape of every error.
type ErrorResponse struct {
	Error            string        `json:"error"`
	ErrorDescription string        `json:"error_description,omitempty"`
	Message          string        `json:"message,omitempty"`
	Details          []FieldDetail `json:"details,omitempty"`
}

type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to a status code and writes the error body with a
// German message.
func WriteError(w http.ResponseWriter, err error) {
	writeError(w, err, id.LanguageDE)
}

// WriteRequestError is WriteError localized to the language negotiated for r.
func WriteRequestError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, err, requestcontext.Language(r.Context()))
}

func writeError(w http.ResponseWriter, err error, lang id.Language) {
	code := dErrors.CodeOf(err)
	status := StatusFor(code)

	resp := ErrorResponse{
		Error:   string(wireCode(code)),
		Message: i18n.Message(code, lang),
	}
	if code != dErrors.CodeInternal {
		resp.ErrorDescription = dErrors.MessageOf(err)
		for _, f := range dErrors.FieldsOf(err) {
			resp.Details = append(resp.Details, FieldDetail{Field: f.Field, Message: f.Message})
		}
	}
	WriteJSON(w, status, resp)
}

// StatusFor maps a domain error code to its HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeValidation, dErrors.CodeInvariantViolation,
		dErrors.CodeInvalidAhvNumber, dErrors.CodeInvalidMutation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeDuplicate, dErrors.CodeConflict, dErrors.CodeConcurrentModification:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden, dErrors.CodeTenantAccess:
		return http.StatusForbidden
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Invariant violations are an internal model code; clients see validation_error.
func wireCode(code dErrors.Code) dErrors.Code {
	if code == dErrors.CodeInvariantViolation {
		return dErrors.CodeValidation
	}
	return code
}

// DecodeAndPrepare decodes the JSON body into T and runs its Validate method.
// On failure it writes the error response itself and returns ok=false.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req := new(T)
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(req); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			msg = "request body too large"
		}
		logger.WarnContext(ctx, "failed to decode request",
			"request_id", requestID,
			"error", err,
		)
		WriteRequestError(w, r, dErrors.New(dErrors.CodeBadRequest, msg))
		return nil, false
	}

	if err := PT(req).Validate(); err != nil {
		logger.WarnContext(ctx, "invalid request",
			"request_id", requestID,
			"error", err,
		)
		WriteRequestError(w, r, err)
		return nil, false
	}
	return req, true
}
