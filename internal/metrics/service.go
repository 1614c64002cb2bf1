package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MaintenanceRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "war_maintenance_runs_total",
			Help: "The total number of times the maintenance job has run.",
		}),
		MaintenanceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "war_maintenance_failures_total",
			Help: "The total number of maintenance steps that failed.",
		}),
		MaintenanceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "war_maintenance_duration_seconds",
			Help:    "The duration of a full maintenance run.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "war_matches_recorded_total",
			Help: "The total number of matches recorded or imported.",
		}),
		RankingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "war_ranking_requests_total",
			Help: "The total number of ranking computations served, by view.",
		}, []string{"view"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "war_http_request_duration_seconds",
			Help:    "The duration of HTTP requests, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "war_ranking_cache_hits_total",
			Help: "The total number of ranking responses served from cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "war_ranking_cache_misses_total",
			Help: "The total number of ranking responses computed on demand.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "war_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "war_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "war_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MaintenanceRuns,
		s.MaintenanceFailures,
		s.MaintenanceDuration,
		s.MatchesRecorded,
		s.RankingRequests,
		s.RequestDuration,
		s.CacheHits,
		s.CacheMisses,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMaintenanceRuns() {
	s.MaintenanceRuns.Inc()
}

func (s *Service) IncMaintenanceFailures() {
	s.MaintenanceFailures.Inc()
}

func (s *Service) ObserveMaintenanceDuration(duration float64) {
	s.MaintenanceDuration.Observe(duration)
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncRankingRequests(view string) {
	s.RankingRequests.WithLabelValues(view).Inc()
}

func (s *Service) ObserveRequestDuration(route string, duration float64) {
	s.RequestDuration.WithLabelValues(route).Observe(duration)
}

func (s *Service) IncCacheHits() {
	s.CacheHits.Inc()
}

func (s *Service) IncCacheMisses() {
	s.CacheMisses.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
