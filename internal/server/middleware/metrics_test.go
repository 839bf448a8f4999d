package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fulmenhq/gofulmen/telemetry"
	telemetrytesting "github.com/fulmenhq/gofulmen/telemetry/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadeyemo32/career26-vanguard/internal/observability"
)

func setupTelemetry(t *testing.T) *telemetrytesting.FakeCollector {
	t.Helper()

	collector := telemetrytesting.NewFakeCollector()
	sys, err := telemetry.NewSystem(&telemetry.Config{Enabled: true, Emitter: collector})
	require.NoError(t, err)

	original := observability.TelemetrySystem
	observability.TelemetrySystem = sys
	t.Cleanup(func() { observability.TelemetrySystem = original })

	return collector
}

func TestRequestMetrics(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		wantError bool
	}{
		{"ok", http.StatusOK, `{"rejected":false}`, false},
		{"client error", http.StatusBadRequest, `{"error":{}}`, true},
		{"server error", http.StatusInternalServerError, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			collector := setupTelemetry(t)
			handler := RequestMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/name-to-search", strings.NewReader(`{"company_name":"Acme"}`))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.body, rec.Body.String())
			assert.Greater(t, collector.CountMetricsByName("http_requests_total"), 0)
			assert.Greater(t, collector.CountMetricsByName("http_request_duration_ms"), 0)
			assert.Greater(t, collector.CountMetricsByName("http_request_size_bytes"), 0)
			assert.Greater(t, collector.CountMetricsByName("http_response_size_bytes"), 0)
			if tc.wantError {
				assert.Greater(t, collector.CountMetricsByName("http_errors_total"), 0)
			} else {
				assert.Zero(t, collector.CountMetricsByName("http_errors_total"))
			}
		})
	}
}

func TestRequestMetricsWithoutTelemetry(t *testing.T) {
	original := observability.TelemetrySystem
	observability.TelemetrySystem = nil
	t.Cleanup(func() { observability.TelemetrySystem = original })

	handler := RequestMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	setupTelemetry(t)

	var seen string
	handler := RequestID(RequestMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", seen)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestGetEndpointPattern(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/health", "/health/*"},
		{"/health/ready", "/health/*"},
		{"/version", "/version"},
		{"/metrics", "/metrics"},
		{"/v1/name-to-search/batch", "/v1/*"},
		{"/v1/companies/01234567/search-queries", "/v1/companies/{companyNumber}/search-queries"},
		{"/api/users/123", "/unknown"},
		{"/", "/"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		assert.Equal(t, tt.expected, getEndpointPattern(req), tt.path)
	}
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	setupTelemetry(t)

	handler := RequestID(Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/name-to-search", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.NotContains(t, rec.Body.String(), "goroutine")
	assert.Contains(t, rec.Body.String(), rec.Header().Get(RequestIDHeader))
}

func TestRecoveryReraisesAbortHandler(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRequestIDReplacesInvalidInbound(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, inbound := range []string{"has space", strings.Repeat("x", 200), "tab\tid"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, inbound)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		got := rec.Header().Get(RequestIDHeader)
		assert.NotEqual(t, inbound, got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, "replacement must be a UUID")
	}
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}
