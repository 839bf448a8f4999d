package metrics

import "strconv"

const (
	ErrorsTotalName      = "errors_total"
	PanicsTotalName      = "panics_total"
	ErrorsByEndpointName = "errors_by_endpoint"
)

// RecordError counts an error response by envelope code and HTTP status.
func RecordError(errorCode string, httpStatus int) {
	count(ErrorsTotalName, labels{"error_code": errorCode, "http_status": strconv.Itoa(httpStatus)})
}

// RecordPanic counts a handler panic caught by the recovery middleware.
func RecordPanic() {
	count(PanicsTotalName, nil)
}

// RecordErrorByEndpoint counts an error against a route pattern. Callers
// pass patterns, never raw paths.
func RecordErrorByEndpoint(endpoint, errorCode string) {
	count(ErrorsByEndpointName, labels{"endpoint": endpoint, "error_code": errorCode})
}
