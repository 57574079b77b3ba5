package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "govinda/pkg/domain"
	"govinda/pkg/requestcontext"
)

func TestRequireTenant(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var gotTenant id.TenantID
	var gotUser id.UserID
	h := RequireTenant(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = requestcontext.TenantID(r.Context())
		gotUser = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("stores tenant and user", func(t *testing.T) {
		tenant, user := uuid.New(), uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderTenantID, tenant.String())
		req.Header.Set(HeaderUserID, user.String())
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, id.TenantID(tenant), gotTenant)
		assert.Equal(t, id.UserID(user), gotUser)
	})

	for name, header := range map[string]string{"missing": "", "malformed": "not-a-uuid", "nil uuid": uuid.Nil.String()} {
		t.Run("rejects "+name+" tenant", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set(HeaderTenantID, header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	t.Run("rejects malformed user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderTenantID, uuid.NewString())
		req.Header.Set(HeaderUserID, "nope")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRequireUser(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RequireTenant(logger)(RequireUser(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	read := httptest.NewRequest(http.MethodGet, "/", nil)
	read.Header.Set(HeaderTenantID, uuid.NewString())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, read)
	assert.Equal(t, http.StatusNoContent, rr.Code, "reads need no user")

	write := httptest.NewRequest(http.MethodPost, "/", nil)
	write.Header.Set(HeaderTenantID, uuid.NewString())
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, write)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	write.Header.Set(HeaderUserID, uuid.NewString())
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, write)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
