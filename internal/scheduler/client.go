package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
	"github.com/mauv0809/war-scoreboard/internal/maintenance"
	"github.com/mauv0809/war-scoreboard/internal/period"
)

// New registers the maintenance functions on the Inngest client.
func New(inngestClient inngestgo.Client, runner Runner, clock period.Clock) (Scheduler, error) {
	c := &client{
		inngestClient: inngestClient,
		runner:        runner,
		clock:         clock,
	}
	if err := c.createMonthlyFunction(); err != nil {
		return nil, err
	}
	if err := c.createOnDemandFunction(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *client) createMonthlyFunction() error {
	_, err := inngestgo.CreateFunction(
		c.inngestClient,
		inngestgo.FunctionOpts{
			ID:   "monthly-maintenance",
			Name: "Snapshot last month's winner and records",
		},
		inngestgo.CronTrigger(MonthlyCron),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			// By wrapping code in steps, it will be retried automatically on failure
			return step.Run(ctx, "run-maintenance", func(ctx context.Context) (*maintenance.Report, error) {
				return c.runner.RunScheduled(ctx, c.clock.Now(), false)
			})
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create monthly function: %w", err)
	}
	return nil
}

func (c *client) createOnDemandFunction() error {
	_, err := inngestgo.CreateFunction(
		c.inngestClient,
		inngestgo.FunctionOpts{
			ID:   "requested-maintenance",
			Name: "Snapshot a requested month",
		},
		inngestgo.EventTrigger(EventMaintenanceRequested, nil),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			now, dryRun := c.requestedAnchor(input)
			log.Info("Maintenance requested", "anchor", now.Format(time.DateOnly), "dry_run", dryRun)
			return step.Run(ctx, "run-maintenance", func(ctx context.Context) (*maintenance.Report, error) {
				return c.runner.RunScheduled(ctx, now, dryRun)
			})
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create on-demand function: %w", err)
	}
	return nil
}

func (c *client) Serve() http.Handler {
	return c.inngestClient.Serve()
}

// RequestMaintenance sends the event that triggers the on-demand function.
// Zero year and month request the run for the month before now.
func (c *client) RequestMaintenance(ctx context.Context, year, month int, dryRun bool) error {
	data := map[string]any{"dry_run": dryRun}
	if year != 0 || month != 0 {
		if _, err := period.ForMonth(year, month); err != nil {
			return err
		}
		data["year"] = year
		data["month"] = month
	}
	id, err := c.inngestClient.Send(ctx, inngestgo.Event{Name: EventMaintenanceRequested, Data: data})
	if err != nil {
		return fmt.Errorf("failed to send maintenance event: %w", err)
	}
	log.Info("Maintenance event sent", "event_id", id, "year", year, "month", month)
	return nil
}

// AnchorFor returns the instant whose previous month is {year, month}, the
// reference RunScheduled expects.
func AnchorFor(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
}

// requestedAnchor resolves the run anchor of an on-demand event.
func (c *client) requestedAnchor(input inngestgo.Input[map[string]any]) (time.Time, bool) {
	return anchorFromEvent(input.Event.Data, c.clock.Now())
}

// anchorFromEvent reads an optional {year, month, dry_run} payload. JSON
// numbers arrive as float64. Without a valid month the run targets the month
// before now.
func anchorFromEvent(data map[string]any, now time.Time) (time.Time, bool) {
	dryRun, _ := data["dry_run"].(bool)
	year, okYear := number(data["year"])
	month, okMonth := number(data["month"])
	if !okYear || !okMonth {
		return now, dryRun
	}
	if _, err := period.ForMonth(year, month); err != nil {
		log.Warn("Ignoring invalid requested period", "year", year, "month", month, "error", err)
		return now, dryRun
	}
	return AnchorFor(year, month), dryRun
}

func number(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}
