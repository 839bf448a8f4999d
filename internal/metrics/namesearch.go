package metrics

import "time"

const (
	NameSearchTotal           = "name_search_total"
	NameSearchRejectionsTotal = "name_search_rejections_total"
	NameSearchQueries         = "name_search_queries"
	NameSearchDuration        = "name_search_duration_ms"
	BatchSizeName             = "name_search_batch_size"
)

// RecordNameSearch records one pipeline run. source is "cli" or "api";
// reason only applies to rejections.
func RecordNameSearch(source string, rejected bool, reason string, queries int, duration time.Duration) {
	count(NameSearchTotal, labels{"source": source, "outcome": outcome(rejected, "rejected", "accepted")})
	if rejected {
		count(NameSearchRejectionsTotal, labels{"reason": reason})
	} else {
		gauge(NameSearchQueries, float64(queries), labels{"source": source})
	}
	observe(NameSearchDuration, duration, labels{"source": source})
}

// SetBatchSize records the size of the latest batch.
func SetBatchSize(source string, size int) {
	gauge(BatchSizeName, float64(size), labels{"source": source})
}
