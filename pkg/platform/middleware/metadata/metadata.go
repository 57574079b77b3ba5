// Package metadata captures request metadata that is not identity: the client
// address for logs and the negotiated response language.
package metadata

import (
	"context"
	"net/http"
	"strings"

	"govinda/pkg/platform/i18n"
	"govinda/pkg/requestcontext"
)

type contextKeyClientIP struct{}

// RequestMetadata stores the client IP and the language negotiated from
// Accept-Language in the request context.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextKeyClientIP{}, ClientIPFromRequest(r))
		lang := i18n.Negotiate(r.Header.Get("Accept-Language"))
		ctx = requestcontext.WithLanguage(ctx, lang)
		w.Header().Set("Content-Language", string(lang))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientIP retrieves the client IP address from the context.
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(contextKeyClientIP{}).(string); ok {
		return ip
	}
	return ""
}

// ClientIPFromRequest prefers the first X-Forwarded-For hop, then X-Real-IP,
// then the connection address without its port.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return strings.Trim(addr[:idx], "[]")
		}
		return addr
	}
	return "unknown"
}
