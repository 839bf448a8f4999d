package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/observability"
)

// statusRecorder captures the status code and body size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.written += int64(n)
	return n, err
}

// getEndpointPattern returns the chi route pattern, or a fixed bucket for
// unrouted paths, so company numbers never become label values.
func getEndpointPattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	path := r.URL.Path
	switch {
	case path == "/health" || strings.HasPrefix(path, "/health/"):
		return "/health/*"
	case path == "/version", path == "/metrics", path == "/":
		return path
	case strings.HasPrefix(path, "/v1/companies/"):
		return "/v1/companies/{companyNumber}/search-queries"
	case strings.HasPrefix(path, "/v1/"):
		return "/v1/*"
	default:
		return "/unknown"
	}
}

// quietEndpoint reports endpoints that scrapers and probes hit constantly.
func quietEndpoint(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/health") || endpoint == "/metrics"
}

type requestObservation struct {
	method   string
	endpoint string
	status   int
	duration time.Duration
	reqSize  int64
	respSize int64
}

func (o requestObservation) emit() {
	sys := observability.TelemetrySystem
	status := strconv.Itoa(o.status)
	labels := map[string]string{"method": o.method, "endpoint": o.endpoint, "status": status}
	sizeLabels := map[string]string{"method": o.method, "endpoint": o.endpoint}

	_ = sys.Counter("http_requests_total", 1, labels)
	_ = sys.Histogram("http_request_duration_ms", o.duration, labels)
	_ = sys.Gauge("http_request_size_bytes", float64(o.reqSize), sizeLabels)
	_ = sys.Gauge("http_response_size_bytes", float64(o.respSize), sizeLabels)

	if o.status >= http.StatusBadRequest {
		errorType := "client_error"
		if o.status >= http.StatusInternalServerError {
			errorType = "server_error"
		}
		_ = sys.Counter("http_errors_total", 1, map[string]string{
			"method":     o.method,
			"endpoint":   o.endpoint,
			"status":     status,
			"error_type": errorType,
		})
	}
}

// RequestMetrics records request counts, latency and sizes per route and
// logs each completed request.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if observability.TelemetrySystem == nil {
			next.ServeHTTP(w, r)
			return
		}

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		obs := requestObservation{
			method:   r.Method,
			endpoint: getEndpointPattern(r),
			status:   rec.status,
			duration: time.Since(started),
			respSize: rec.written,
		}
		if r.ContentLength > 0 {
			obs.reqSize = r.ContentLength
		}
		obs.emit()

		logger := observability.ServerLogger
		if logger == nil {
			return
		}
		fields := []zap.Field{
			zap.String("method", obs.method),
			zap.String("path", r.URL.Path),
			zap.String("endpoint", obs.endpoint),
			zap.Int("status", obs.status),
			zap.Duration("duration", obs.duration),
			zap.Int64("request_size", obs.reqSize),
			zap.Int64("response_size", obs.respSize),
			zap.String("request_id", GetRequestID(r.Context())),
		}
		if quietEndpoint(obs.endpoint) {
			logger.Debug("HTTP request completed", fields...)
			return
		}
		logger.Info("HTTP request completed", fields...)
	})
}
