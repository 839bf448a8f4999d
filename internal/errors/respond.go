package errors

import (
	"encoding/json"
	"net/http"

	"github.com/fulmenhq/gofulmen/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/metrics"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
)

// HTTPErrorDetail is the error body returned to callers.
type HTTPErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// HTTPErrorResponse is the {"error": {...}} wrapper.
type HTTPErrorResponse struct {
	Error HTTPErrorDetail `json:"error"`
}

// HTTPStatusFromEnvelope returns the status for env's code.
func HTTPStatusFromEnvelope(env *Envelope) int {
	if env == nil {
		return http.StatusInternalServerError
	}
	return HTTPStatusFromCode(env.Code)
}

// ResponseDetails merges envelope details with its context. Details win on
// key collisions.
func ResponseDetails(env *Envelope) map[string]interface{} {
	if env == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(env.Details)+len(env.Context))
	for k, v := range env.Context {
		merged[k] = v
	}
	for k, v := range env.Details {
		merged[k] = v
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// RespondWithError writes err as a JSON error response.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	RespondWithEnvelope(w, r, EnsureEnvelope(err))
}

// RespondWithEnvelope logs env, counts it, and writes it as JSON.
func RespondWithEnvelope(w http.ResponseWriter, r *http.Request, env *Envelope) {
	if w == nil {
		return
	}
	if env == nil {
		env = EnsureEnvelope(nil)
	}

	var endpoint string
	if r != nil {
		env = EnsureCorrelationID(env, r.Context())
		endpoint = routePattern(r)
	} else {
		env = EnsureCorrelationID(env, nil)
	}
	status := HTTPStatusFromEnvelope(env)

	logEnvelope(env, status)
	metrics.RecordError(env.Code, status)
	if endpoint != "" {
		metrics.RecordErrorByEndpoint(endpoint, env.Code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(HTTPErrorResponse{Error: HTTPErrorDetail{
		Code:      env.Code,
		Message:   env.Message,
		Details:   ResponseDetails(env),
		RequestID: env.CorrelationID,
	}})
}

// routePattern keeps company numbers and other path values out of labels.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func logEnvelope(env *Envelope, status int) {
	logger := observability.ServerLogger
	if logger == nil {
		return
	}

	fields := make([]zap.Field, 0, 4+len(env.Context))
	fields = append(fields, zap.String("error_code", env.Code), zap.Int("http_status", status))
	if env.Severity != "" {
		fields = append(fields, zap.String("severity", string(env.Severity)))
	}
	if env.CorrelationID != "" {
		fields = append(fields, zap.String("request_id", env.CorrelationID))
	}
	for k, v := range env.Context {
		fields = append(fields, zap.Any(k, v))
	}

	switch env.Severity {
	case errors.SeverityCritical, errors.SeverityHigh:
		logger.Error(env.Message, fields...)
	case errors.SeverityMedium:
		logger.Warn(env.Message, fields...)
	default:
		logger.Info(env.Message, fields...)
	}
}
