package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	gferrors "github.com/fulmenhq/gofulmen/errors"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/metrics"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
)

// Recovery turns a handler panic into a 500 envelope. The panic value and
// stack go to the log only. http.ErrAbortHandler is re-raised so net/http can
// abort the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			requestID := GetRequestID(r.Context())
			metrics.RecordPanic()
			if logger := observability.ServerLogger; logger != nil {
				logger.Error("Recovered from panic",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", requestID),
					zap.Any("panic", recovered),
					zap.ByteString("stack", debug.Stack()))
			}

			envelope := gferrors.NewErrorEnvelope("INTERNAL_ERROR", "internal server error").
				WithCorrelationID(requestID)
			envelope, _ = envelope.WithSeverity(gferrors.SeverityCritical)
			writeErrorResponse(w, envelope, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

// ErrorResponse mirrors the body written by the errors package.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// writeErrorResponse encodes envelope without importing internal/errors,
// which depends on this package for request IDs.
func writeErrorResponse(w http.ResponseWriter, envelope *gferrors.ErrorEnvelope, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{
		Code:      envelope.Code,
		Message:   envelope.Message,
		Details:   envelope.Context,
		RequestID: envelope.CorrelationID,
	}})
}
