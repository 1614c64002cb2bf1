package scheduler

import (
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/war-scoreboard/internal/period"
)

const (
	// MonthlyCron fires at 06:00 on day 1 of each month.
	MonthlyCron = "0 6 1 * *"
	// EventMaintenanceRequested triggers an on-demand run.
	EventMaintenanceRequested = "league/maintenance.requested"
)

type client struct {
	inngestClient inngestgo.Client
	runner        Runner
	clock         period.Clock
}
