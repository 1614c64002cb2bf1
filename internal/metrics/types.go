package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	MaintenanceRuns     prometheus.Counter
	MaintenanceFailures prometheus.Counter
	MaintenanceDuration prometheus.Histogram
	MatchesRecorded     prometheus.Counter
	RankingRequests     *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
