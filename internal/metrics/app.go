package metrics

import "time"

const (
	StoreOperationsTotal   = "store_operations_total"
	StoreOperationDuration = "store_operation_duration_ms"

	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	ServerStartTime = "app_server_start_time_seconds"
	ServerUptime    = "app_server_uptime_seconds"
)

// RecordStoreOperation tracks one store call, e.g. "save_results".
func RecordStoreOperation(operation string, success bool, duration time.Duration) {
	count(StoreOperationsTotal, labels{"operation": operation, "status": outcome(success, "success", "failure")})
	observe(StoreOperationDuration, duration, labels{"operation": operation})
}

// RecordHealthCheck tracks one named health checker run.
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	count(HealthCheckTotal, labels{"check": checkName, "status": outcome(healthy, "healthy", "unhealthy")})
	observe(HealthCheckDuration, duration, labels{"check": checkName})
}

func SetServerStartTime(unix int64) {
	gauge(ServerStartTime, float64(unix), nil)
}

func SetServerUptime(seconds int64) {
	gauge(ServerUptime, float64(seconds), nil)
}
