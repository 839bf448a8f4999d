package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tadeyemo32/career26-vanguard/internal/observability"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "rejected", outcome(true, "rejected", "accepted"))
	assert.Equal(t, "failure", outcome(false, "success", "failure"))
}

func TestEmittersWithoutTelemetry(t *testing.T) {
	prev := observability.TelemetrySystem
	observability.TelemetrySystem = nil
	t.Cleanup(func() { observability.TelemetrySystem = prev })

	assert.NotPanics(t, func() {
		RecordNameSearch("cli", true, "empty_after_cleaning", 0, time.Millisecond)
		RecordNameSearch("api", false, "", 3, time.Millisecond)
		SetBatchSize("cli", 10)
		RecordError("VALIDATION_ERROR", 400)
		RecordErrorByEndpoint("/v1/name-to-search", "VALIDATION_ERROR")
		RecordPanic()
		RecordStoreOperation("save_results", true, time.Millisecond)
		RecordHealthCheck("store", false, time.Millisecond)
		SetServerStartTime(time.Now().Unix())
		SetServerUptime(5)
	})
}
