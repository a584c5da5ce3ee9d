package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP_ForwardedHeaderWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:44321"
	req.Header.Set("X-Forwarded-For", "81.2.69.160, 172.16.0.1, 10.0.0.5")

	assert.Equal(t, "81.2.69.160", ClientIP(req))
}

func TestClientIP_SingleForwardedHop(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", " 81.2.69.160 ")

	assert.Equal(t, "81.2.69.160", ClientIP(req))
}

func TestClientIP_FallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:52814"

	assert.Equal(t, "203.0.113.9", ClientIP(req))
}

func TestClientIP_RemoteAddrWithoutPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9"

	assert.Equal(t, "203.0.113.9", ClientIP(req))
}

func TestRateLimitMiddleware_BurstThenLimited(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// A dedicated address so other tests can't eat this visitor's tokens.
	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rallies", nil)
		req.RemoteAddr = "198.51.100.77:40000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 30; i++ {
		require.Equal(t, http.StatusOK, send(), "request %d should fit the burst", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestRateLimitMiddleware_AddressesAreIndependent(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	drain := httptest.NewRequest(http.MethodGet, "/", nil)
	drain.RemoteAddr = "198.51.100.78:40000"
	for i := 0; i < 31; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, drain)
	}

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "198.51.100.79:40000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}
