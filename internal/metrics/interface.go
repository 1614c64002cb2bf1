package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMaintenanceRuns()
	IncMaintenanceFailures()
	ObserveMaintenanceDuration(duration float64)
	IncMatchesRecorded()
	IncRankingRequests(view string)
	ObserveRequestDuration(route string, duration float64)
	IncCacheHits()
	IncCacheMisses()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
