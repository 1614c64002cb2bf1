package scheduler

import (
	"context"
	"net/http"
	"time"

	"github.com/mauv0809/war-scoreboard/internal/maintenance"
)

// Scheduler runs the maintenance job on a monthly cron and on demand.
type Scheduler interface {
	Serve() http.Handler
	RequestMaintenance(ctx context.Context, year, month int, dryRun bool) error
}

// Runner is the part of the maintenance job the scheduler drives.
type Runner interface {
	RunScheduled(ctx context.Context, now time.Time, dryRun bool) (*maintenance.Report, error)
}
