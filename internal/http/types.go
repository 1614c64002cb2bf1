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

type Server struct {
	Store          league.Store
	DB             handlers.Pinger
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Cache          cache.Cache
	Job            handlers.MaintenanceJob
	Scheduler      scheduler.Scheduler
	Clock          period.Clock
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
	handler        http.Handler
}
