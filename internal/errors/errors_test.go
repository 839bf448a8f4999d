package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadeyemo32/career26-vanguard/internal/server/middleware"
)

func TestHTTPStatusFromCode(t *testing.T) {
	cases := map[string]int{
		CodeInvalidInput:       http.StatusBadRequest,
		CodeValidationFailed:   http.StatusBadRequest,
		CodeNotFound:           http.StatusNotFound,
		CodeMethodNotAllowed:   http.StatusMethodNotAllowed,
		CodeRateLimited:        http.StatusTooManyRequests,
		CodeTimeout:            http.StatusGatewayTimeout,
		CodeServiceUnavailable: http.StatusServiceUnavailable,
		CodeDatabase:           http.StatusInternalServerError,
		CodeConfigInvalid:      http.StatusInternalServerError,
		"SOMETHING_ELSE":       http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatusFromCode(code), code)
	}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromEnvelope(nil))
}

func TestWrapKeepsCauseAndGeneratesID(t *testing.T) {
	env := WrapDatabaseError(context.Background(), fmt.Errorf("disk full"), "save failed")
	require.NotNil(t, env)
	assert.Equal(t, CodeDatabase, env.Code)
	assert.Equal(t, "save failed", env.Message)
	assert.Equal(t, "disk full", env.Context["wrapped_error"])
	assert.NotEmpty(t, env.CorrelationID)
}

func TestEnsureEnvelope(t *testing.T) {
	env := EnsureEnvelope(nil)
	assert.Equal(t, CodeInternal, env.Code)

	plain := EnsureEnvelope(stderrors.New("boom"))
	assert.Equal(t, CodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Context["wrapped_error"])

	original := NewNotFoundError("missing")
	assert.Same(t, original, EnsureEnvelope(original))
	assert.Same(t, original, EnsureEnvelope(fmt.Errorf("lookup: %w", original)))
}

func TestEnsureCorrelationIDFallback(t *testing.T) {
	env := EnsureCorrelationID(NewValidationError("bad"), nil)
	assert.True(t, strings.HasPrefix(env.CorrelationID, "fallback-"), env.CorrelationID)
	assert.Nil(t, EnsureCorrelationID(nil, nil))
}

func TestResponseDetailsPrefersDetails(t *testing.T) {
	env := WithDetails(NewValidationError("too many"), map[string]interface{}{"max_batch": 10})
	details := ResponseDetails(env)
	assert.EqualValues(t, 10, details["max_batch"])
	assert.Nil(t, ResponseDetails(NewValidationError("plain")))
	assert.Same(t, env, WithDetails(env, nil))
}

func TestRespondWithErrorUsesRequestID(t *testing.T) {
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondWithError(w, r, WithDetails(NewValidationError("company_name is required"),
			map[string]interface{}{"field": "company_name"}))
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/name-to-search", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeValidationFailed, body.Error.Code)
	assert.Equal(t, "company_name is required", body.Error.Message)
	assert.Equal(t, "req-123", body.Error.RequestID)
	assert.Equal(t, "company_name", body.Error.Details["field"])
}

func TestRespondWithEnvelopeNilWriter(t *testing.T) {
	assert.NotPanics(t, func() { RespondWithEnvelope(nil, nil, NewNotFoundError("x")) })
}
