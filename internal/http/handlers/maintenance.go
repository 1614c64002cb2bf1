package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/cache"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/maintenance"
	"github.com/mauv0809/war-scoreboard/internal/period"
)

// MaintenanceJob is the part of maintenance.Job the handlers drive.
type MaintenanceJob interface {
	RunScheduled(ctx context.Context, now time.Time, dryRun bool) (*maintenance.Report, error)
	SnapshotMonth(ctx context.Context, year, month int, dryRun bool) (*league.MonthlyWinner, error)
	SnapshotYear(ctx context.Context, year int, dryRun bool) (*league.MonthlyWinner, error)
}

// MaintenanceRequester enqueues a maintenance run for the scheduler.
type MaintenanceRequester interface {
	RequestMaintenance(ctx context.Context, year, month int, dryRun bool) error
}

// RunMaintenanceHandler runs the scheduled job for the month before now.
// The report is returned even when a step failed.
func RunMaintenanceHandler(job MaintenanceJob, c cache.Cache, clock period.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := IsDryRunFromContext(r)
		report, err := job.RunScheduled(r.Context(), clock.Now(), isDryRun)
		if err != nil {
			log.Error("Maintenance run finished with errors", "error", err)
			writeJSON(w, http.StatusInternalServerError, report)
			return
		}
		if !isDryRun {
			invalidate(r.Context(), c)
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// SnapshotHandler materializes the winner of /{year}/{month}. Month 0 stores
// the annual summary. A period without matches answers 204.
func SnapshotHandler(job MaintenanceJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := IsDryRunFromContext(r)
		winner, err := snapshot(r.Context(), job, r.PathValue("year"), r.PathValue("month"), isDryRun)
		if err != nil {
			writeError(w, "Failed to snapshot period", err)
			return
		}
		if winner == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, winner)
	}
}

// RequestMaintenanceHandler hands a run for ?year=&month= to the scheduler.
// Without parameters the scheduler targets the previous month.
func RequestMaintenanceHandler(requester MaintenanceRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, month := 0, 0
		if r.URL.Query().Has("year") {
			p, err := period.Parse(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
			if err != nil {
				writeError(w, "Invalid period", err)
				return
			}
			year, month = p.Year, p.Month
		}
		if err := requester.RequestMaintenance(r.Context(), year, month, IsDryRunFromContext(r)); err != nil {
			writeError(w, "Failed to request maintenance", err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("Accepted"))
	}
}

func snapshot(ctx context.Context, job MaintenanceJob, yearStr, monthStr string, dryRun bool) (*league.MonthlyWinner, error) {
	if monthStr == strconv.Itoa(league.AnnualSummaryMonth) {
		p, err := period.ParseYear(yearStr)
		if err != nil {
			return nil, err
		}
		return job.SnapshotYear(ctx, p.Year, dryRun)
	}
	p, err := period.Parse(yearStr, monthStr)
	if err != nil {
		return nil, err
	}
	return job.SnapshotMonth(ctx, p.Year, p.Month, dryRun)
}
