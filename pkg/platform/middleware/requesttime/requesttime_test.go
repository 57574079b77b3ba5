package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"govinda/pkg/requestcontext"
)

func TestMiddlewareWithClock(t *testing.T) {
	zurich := time.FixedZone("CET", 3600)
	pinned := time.Date(2025, 3, 1, 11, 0, 0, 0, zurich)

	var first, second time.Time
	h := MiddlewareWithClock(func() time.Time { return pinned })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first = requestcontext.Now(r.Context())
		second = requestcontext.Now(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, first, second)
	assert.Equal(t, time.UTC, first.Location())
	assert.True(t, first.Equal(pinned))
}
