package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	id "govinda/pkg/domain"
	"govinda/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "first forwarded hop", headers: map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2"}, want: "10.0.0.1"},
		{name: "real ip header", headers: map[string]string{"X-Real-IP": "10.0.0.9"}, want: "10.0.0.9"},
		{name: "ipv4 remote addr", remoteAddr: "192.168.1.5:5123", want: "192.168.1.5"},
		{name: "ipv6 remote addr", remoteAddr: "[::1]:5123", want: "::1"},
		{name: "no address", remoteAddr: "", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}

func TestRequestMetadata(t *testing.T) {
	var gotIP string
	var gotLang id.Language
	h := RequestMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = GetClientIP(r.Context())
		gotLang = requestcontext.Language(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.1.2.3")
	req.Header.Set("Accept-Language", "it-CH, de;q=0.5")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "10.1.2.3", gotIP)
	assert.Equal(t, id.LanguageIT, gotLang)
	assert.Equal(t, "it", rr.Header().Get("Content-Language"))
}
