package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/tadeyemo32/career26-vanguard/internal/errors"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
)

var metricsProxyClient = &http.Client{
	Timeout: 5 * time.Second,
}

// hopHeaders are not forwarded; net/http manages them.
var hopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

// metricsHandler proxies Prometheus metrics from the internal exporter so
// callers can scrape /metrics on the main HTTP server. fallbackPort is used
// when the exporter has not reported its bound port.
func metricsHandler(fallbackPort int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if observability.PrometheusExporter == nil {
			apperrors.RespondWithError(w, r, apperrors.NewServiceUnavailableError("metrics exporter not initialized"))
			return
		}

		port := observability.GetMetricsPort()
		if port == 0 {
			port = fallbackPort
		}
		if port == 0 {
			port = observability.DefaultMetricsPort
		}
		metricsURL := fmt.Sprintf("http://127.0.0.1:%d/metrics", port)

		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, metricsURL, nil)
		if err != nil {
			apperrors.RespondWithError(w, r, apperrors.WithDetails(
				apperrors.WrapInternal(r.Context(), err, "unable to construct metrics request"),
				map[string]interface{}{"metrics_url": metricsURL}))
			return
		}
		if accept := r.Header.Get("Accept"); accept != "" {
			req.Header.Set("Accept", accept)
		}

		resp, err := metricsProxyClient.Do(req)
		if err != nil {
			apperrors.RespondWithError(w, r, apperrors.WithDetails(
				apperrors.WrapInternal(r.Context(), err, "prometheus exporter unavailable"),
				map[string]interface{}{"metrics_url": metricsURL}))
			return
		}
		defer func() {
			if err := resp.Body.Close(); err != nil && observability.ServerLogger != nil {
				observability.ServerLogger.Warn("Failed to close metrics response body", zap.Error(err))
			}
		}()

		for key, values := range resp.Header {
			if _, hop := hopHeaders[http.CanonicalHeaderKey(key)]; hop {
				continue
			}
			for _, v := range values {
				w.Header().Add(key, v)
			}
		}
		if resp.Header.Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		}

		w.WriteHeader(resp.StatusCode)
		if _, err := io.Copy(w, resp.Body); err != nil && observability.ServerLogger != nil {
			observability.ServerLogger.Warn("Failed to write metrics response", zap.Error(err))
		}
	}
}
