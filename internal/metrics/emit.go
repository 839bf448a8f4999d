// Package metrics names and emits the service's Prometheus metrics. Every
// emitter is a no-op until observability.InitMetrics has run.
package metrics

import (
	"time"

	"github.com/fulmenhq/gofulmen/telemetry"

	"github.com/tadeyemo32/career26-vanguard/internal/observability"
)

type labels = map[string]string

func system() *telemetry.System {
	return observability.TelemetrySystem
}

func count(name string, l labels) {
	if sys := system(); sys != nil {
		_ = sys.Counter(name, 1, l)
	}
}

func gauge(name string, v float64, l labels) {
	if sys := system(); sys != nil {
		_ = sys.Gauge(name, v, l)
	}
}

func observe(name string, d time.Duration, l labels) {
	if sys := system(); sys != nil {
		_ = sys.Histogram(name, d, l)
	}
}

// outcome picks the label value for a boolean result.
func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
