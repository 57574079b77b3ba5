package testutil

import (
	"net/http"

	id "govinda/pkg/domain"
	"govinda/pkg/platform/middleware/auth"
	"govinda/pkg/requestcontext"
)

// WithCaller sets the tenant and user headers the gateway would assert.
// A nil user id leaves the user header unset, which read-only requests allow.
func WithCaller(req *http.Request, tenantID id.TenantID, userID id.UserID) *http.Request {
	req.Header.Set(auth.HeaderTenantID, tenantID.String())
	if !userID.IsNil() {
		req.Header.Set(auth.HeaderUserID, userID.String())
	}
	return req
}

// WithCallerContext stores tenant and user directly in the request context.
// This simulates what the auth middleware does, for handlers mounted without it.
func WithCallerContext(req *http.Request, tenantID id.TenantID, userID id.UserID) *http.Request {
	ctx := requestcontext.WithTenantID(req.Context(), tenantID)
	if !userID.IsNil() {
		ctx = requestcontext.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

// WithLanguage sets the Accept-Language header used for localized error messages.
func WithLanguage(req *http.Request, lang string) *http.Request {
	req.Header.Set("Accept-Language", lang)
	return req
}
