// Package auth reads the caller identity that the upstream gateway asserts in
// request headers. Authentication itself happens before this service.
package auth

import (
	"log/slog"
	"net/http"

	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
	"govinda/pkg/platform/httputil"
	"govinda/pkg/platform/middleware/metadata"
	"govinda/pkg/requestcontext"
)

const (
	HeaderTenantID = "X-Tenant-Id"
	HeaderUserID   = "X-User-Id"
)

// RequireTenant rejects requests without a valid X-Tenant-Id header and stores
// the tenant in the request context. A valid X-User-Id, when present, is stored too.
func RequireTenant(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			tenantID, err := id.ParseTenantID(r.Header.Get(HeaderTenantID))
			if err != nil {
				logger.WarnContext(ctx, "request without valid tenant header",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
					"client_ip", metadata.GetClientIP(ctx),
				)
				httputil.WriteRequestError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "X-Tenant-Id header is missing or invalid"))
				return
			}
			ctx = requestcontext.WithTenantID(ctx, tenantID)

			if raw := r.Header.Get(HeaderUserID); raw != "" {
				userID, err := id.ParseUserID(raw)
				if err != nil {
					httputil.WriteRequestError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "X-User-Id header is invalid"))
					return
				}
				ctx = requestcontext.WithUserID(ctx, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects mutating requests that carry no acting user.
// It must run after RequireTenant.
func RequireUser(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if requestcontext.UserID(ctx).IsNil() {
				logger.WarnContext(ctx, "mutation without acting user",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
					"client_ip", metadata.GetClientIP(ctx),
				)
				httputil.WriteRequestError(w, r, dErrors.New(dErrors.CodeUnauthorized, "X-User-Id header is required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
