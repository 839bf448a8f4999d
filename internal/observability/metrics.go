package observability

import (
	"fmt"
	"net"
	"strconv"

	"github.com/fulmenhq/gofulmen/telemetry"
	"github.com/fulmenhq/gofulmen/telemetry/exporters"
)

// DefaultMetricsPort is the exporter port when none is configured.
const DefaultMetricsPort = 9090

var (
	// TelemetrySystem receives every metric the service emits. Nil means
	// metrics are off and emitters return early.
	TelemetrySystem *telemetry.System

	// PrometheusExporter serves the exposition format on loopback; the API
	// server proxies it at /metrics.
	PrometheusExporter *exporters.PrometheusExporter

	metricsPort int
)

// InitMetrics starts the Prometheus exporter on 127.0.0.1:port (0 picks a
// free port) and installs the telemetry system. Metric names are prefixed
// with namespace, or serviceName when namespace is empty.
func InitMetrics(serviceName string, port int, namespace ...string) error {
	if port < 0 {
		port = 0
	}
	prefix := serviceName
	if len(namespace) > 0 && namespace[0] != "" {
		prefix = namespace[0]
	}

	exporter := exporters.NewPrometheusExporter(prefix, fmt.Sprintf("127.0.0.1:%d", port))
	if err := exporter.Start(); err != nil {
		return fmt.Errorf("start prometheus exporter: %w", err)
	}

	sys, err := telemetry.NewSystem(&telemetry.Config{Enabled: true, Emitter: exporter})
	if err != nil {
		_ = exporter.Stop()
		return fmt.Errorf("create telemetry system: %w", err)
	}

	bound, err := resolvePort(exporter.GetAddr())
	switch {
	case err == nil:
		metricsPort = bound
	case port != 0:
		metricsPort = port
	default:
		metricsPort = DefaultMetricsPort
	}

	PrometheusExporter = exporter
	TelemetrySystem = sys
	return nil
}

// ShutdownMetrics stops the exporter and disables emission.
func ShutdownMetrics() error {
	exporter := PrometheusExporter
	PrometheusExporter = nil
	TelemetrySystem = nil
	metricsPort = 0
	if exporter == nil {
		return nil
	}
	return exporter.Stop()
}

// GetMetricsPort returns the exporter's bound port, or 0 before InitMetrics.
func GetMetricsPort() int {
	return metricsPort
}

func resolvePort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(portStr)
}
