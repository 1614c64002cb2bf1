package http

import (
	"net/http"

	"github.com/mauv0809/war-scoreboard/internal/cache"
	"github.com/mauv0809/war-scoreboard/internal/config"
	"github.com/mauv0809/war-scoreboard/internal/http/handlers"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/notifier"
	"github.com/mauv0809/war-scoreboard/internal/period"
	"github.com/mauv0809/war-scoreboard/internal/pubsub"
	"github.com/mauv0809/war-scoreboard/internal/scheduler"
)

// NewServer wires the routes. sched may be nil when Inngest is not configured.
func NewServer(store league.Store, db handlers.Pinger, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, c cache.Cache, job handlers.MaintenanceJob, pubsub pubsub.PubSubClient, sched scheduler.Scheduler, clock period.Clock) *Server {
	server := &Server{
		Store:          store,
		DB:             db,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Cache:          c,
		Job:            job,
		Scheduler:      sched,
		Clock:          clock,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	server.handler = corsHandler(cfg.CORSOrigins, server.Router)
	return server
}

// handle registers h behind the common middlewares plus any extra ones.
func (s *Server) handle(pattern string, h http.Handler, extra ...Middleware) {
	middlewares := append([]Middleware{timingMiddleware(s.Metrics, pattern), paramsMiddleware}, extra...)
	s.Router.Handle(pattern, Chain(h, middlewares...))
}

func (s *Server) routes() {
	minMatches := s.Cfg.Ranking.MinPerformanceMatches
	attendanceTop := s.Cfg.Ranking.AttendanceTop

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.handle("GET /health", handlers.HealthCheckHandler(s.DB))

	s.handle("GET /api/ranking/global", handlers.GlobalRankingHandler(s.Store, s.Cache, s.Metrics))
	s.handle("GET /api/ranking/mensal/{year}/{month}", handlers.MonthlyRankingHandler(s.Store, s.Cache, s.Metrics))
	s.handle("GET /api/ranking/performance", handlers.PerformanceRankingHandler(s.Store, s.Cache, s.Metrics, minMatches))
	s.handle("GET /api/ranking/attendance", handlers.AttendanceRankingHandler(s.Store, s.Cache, s.Metrics, attendanceTop))
	s.handle("GET /api/ranking/streak", handlers.StreakRecordHandler(s.Store, s.Cache, s.Metrics))
	s.handle("GET /api/ranking/period/{name}", handlers.PeriodRankingHandler(s.Store, s.Cache, s.Metrics, s.Clock))
	s.handle("GET /api/dashboard", handlers.DashboardHandler(s.Store, s.Metrics, s.Clock, minMatches, attendanceTop))
	s.handle("GET /api/monthly-winners", handlers.MonthlyWinnersHandler(s.Store))

	s.handle("GET /api/players", handlers.ListPlayersHandler(s.Store))
	s.handle("POST /api/players", handlers.CreatePlayerHandler(s.Store, s.Cache))
	s.handle("GET /api/players/{id}", handlers.GetPlayerHandler(s.Store))
	s.handle("PATCH /api/players/{id}", handlers.UpdatePlayerHandler(s.Store, s.Cache))
	s.handle("POST /api/players/{id}/status", handlers.SetPlayerStatusHandler(s.Store, s.Cache))
	s.handle("GET /api/players/{id}/profile", handlers.PlayerProfileHandler(s.Store))

	s.handle("GET /api/matches", handlers.ListMatchesHandler(s.Store))
	s.handle("POST /api/matches", handlers.RecordMatchHandler(s.Store, s.Cache, s.Metrics, s.pubsub))
	s.handle("POST /api/matches/import", handlers.ImportMatchesHandler(s.Store, s.Cache, s.Metrics))

	s.handle("POST /api/maintenance/run", handlers.RunMaintenanceHandler(s.Job, s.Cache, s.Clock))
	s.handle("POST /api/maintenance/snapshot/{year}/{month}", handlers.SnapshotHandler(s.Job))
	s.handle("POST /pubsub/maintenance", handlers.MaintenancePushHandler(s.Job, s.pubsub, s.Clock))

	s.handle("POST /slack/command/ranking", handlers.RankingCommandHandler(s.Store, s.Notifier, s.Clock, minMatches), slackVerifierMiddleware(s.Cfg.Slack.SigningSecret))

	if s.Scheduler != nil {
		s.handle("POST /api/maintenance/request", handlers.RequestMaintenanceHandler(s.Scheduler))
		s.Router.Handle("/api/inngest", s.Scheduler.Serve())
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
