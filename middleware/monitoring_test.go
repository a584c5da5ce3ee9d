package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorMiddleware_CountsRequests(t *testing.T) {
	handler := MonitorMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/ping", "GET", "OK"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/ping", "GET", "OK"))
	assert.Equal(t, before+1, after)
}

func TestMonitorMiddleware_CountsRateLimited(t *testing.T) {
	handler := MonitorMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
	}))

	before := testutil.ToFloat64(rateLimited)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rallies", nil))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(rateLimited))
}

func TestBasicAuthMiddleware(t *testing.T) {
	t.Setenv("METRICS_USER", "shore")
	t.Setenv("METRICS_PASS", "squad")

	handler := BasicAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	anon := httptest.NewRecorder()
	handler.ServeHTTP(anon, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusUnauthorized, anon.Code)
	assert.NotEmpty(t, anon.Header().Get("WWW-Authenticate"))

	authed := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	authed.SetBasicAuth("shore", "squad")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authed)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPprofSecurityMiddleware(t *testing.T) {
	t.Setenv("PPROF_SECRET", "swordfish")

	handler := PprofSecurityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	noSecret := httptest.NewRecorder()
	handler.ServeHTTP(noSecret, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	require.Equal(t, http.StatusForbidden, noSecret.Code)

	withSecret := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	withSecret.Header.Set("X-Pprof-Secret", "swordfish")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withSecret)
	require.Equal(t, http.StatusOK, rec.Code)
}
