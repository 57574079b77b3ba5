// Package requesttime provides middleware for request-scoped time.
// All operations within a single HTTP request use the same "now" timestamp, so
// a person's UpdatedAt, its history entry's RecordedAt and the change event
// written to the outbox agree to the nanosecond.
package requesttime

import (
	"net/http"
	"time"

	"govinda/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context for consistent time references throughout the request.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock lets tests pin the request time.
func MiddlewareWithClock(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
