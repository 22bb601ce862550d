package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHealthChecker(t *testing.T) (*HealthChecker, *ServerContext) {
	t.Helper()
	sc, err := NewServerContext(context.Background(), testOptions()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return NewHealthChecker(sc), sc
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var response HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	return response
}

func TestLivenessHandler(t *testing.T) {
	checker, _ := newTestHealthChecker(t)

	rec := httptest.NewRecorder()
	checker.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	response := decodeHealth(t, rec)
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "0.1.0", response.Version)
	assert.NotEmpty(t, response.Uptime)
}

func TestReadinessHandlerReady(t *testing.T) {
	checker, _ := newTestHealthChecker(t)

	rec := httptest.NewRecorder()
	checker.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	response := decodeHealth(t, rec)
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "ok", response.Checks["ready"])
	assert.Equal(t, "ok", response.Checks["shutdown"])
}

func TestReadinessHandlerNotReady(t *testing.T) {
	checker, _ := newTestHealthChecker(t)
	checker.SetReady(false)

	rec := httptest.NewRecorder()
	checker.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	response := decodeHealth(t, rec)
	assert.Equal(t, "not ready", response.Status)
	assert.Equal(t, "not ready", response.Checks["ready"])
	assert.False(t, checker.IsReady())
}

func TestReadinessHandlerAfterShutdown(t *testing.T) {
	checker, sc := newTestHealthChecker(t)
	require.NoError(t, sc.Shutdown())

	rec := httptest.NewRecorder()
	checker.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	response := decodeHealth(t, rec)
	assert.Equal(t, "shutting down", response.Checks["shutdown"])
}

func TestRegisterHealthEndpoints(t *testing.T) {
	checker, _ := newTestHealthChecker(t)

	mux := http.NewServeMux()
	checker.RegisterHealthEndpoints(mux)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
