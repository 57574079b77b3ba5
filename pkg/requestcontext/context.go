// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services and stores read them without importing
// net/http. Tenant and user ids are still passed to services explicitly; the
// context copies exist for logging and change-event enrichment.
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithTenantID(ctx, tenantID)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "govinda/pkg/domain"
)

type (
	tenantIDKey    struct{}
	userIDKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	languageKey    struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyTenantID    = tenantIDKey{}
	ContextKeyUserID      = userIDKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeyLanguage    = languageKey{}
)

// TenantID retrieves the caller's declared tenant. Zero value if not set.
func TenantID(ctx context.Context) id.TenantID {
	if tenantID, ok := ctx.Value(ContextKeyTenantID).(id.TenantID); ok {
		return tenantID
	}
	return id.TenantID{}
}

func WithTenantID(ctx context.Context, tenantID id.TenantID) context.Context {
	return context.WithValue(ctx, ContextKeyTenantID, tenantID)
}

// UserID retrieves the acting user. Zero value if not set.
func UserID(ctx context.Context) id.UserID {
	if userID, ok := ctx.Value(ContextKeyUserID).(id.UserID); ok {
		return userID
	}
	return id.UserID{}
}

func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// RequestID retrieves the request correlation id.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Language retrieves the negotiated response language, defaulting to German.
func Language(ctx context.Context) id.Language {
	if lang, ok := ctx.Value(ContextKeyLanguage).(id.Language); ok {
		return lang
	}
	return id.LanguageDE
}

func WithLanguage(ctx context.Context, lang id.Language) context.Context {
	return context.WithValue(ctx, ContextKeyLanguage, lang)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like workers and tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
// Useful for:
//   - Service unit tests that don't run the full HTTP middleware chain
//   - Workers that need consistent time within a batch operation
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
