package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/period"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
	"golang.org/x/sync/errgroup"
)

// DashboardStore is what the dashboard reads.
type DashboardStore interface {
	league.Reader
	MonthlyWinnersStore
}

// Dashboard is every section of the league home page. A section that failed
// is left empty and its error is listed under Errors.
type Dashboard struct {
	Period         period.Period              `json:"period"`
	Summary        *ranking.Summary           `json:"summary,omitempty"`
	Global         []ranking.Entry            `json:"global"`
	Monthly        []ranking.Entry            `json:"monthly"`
	Performance    []ranking.PerformanceEntry `json:"performance"`
	Attendance     []ranking.AttendanceEntry  `json:"attendance"`
	StreakRecord   *ranking.StreakHolder      `json:"streak_record,omitempty"`
	MonthlyWinners []league.MonthlyWinner     `json:"monthly_winners"`
	Errors         map[string]string          `json:"errors,omitempty"`
}

// DashboardHandler builds each section in parallel from its own read. Every
// goroutine writes a distinct field, so only Errors is guarded.
func DashboardHandler(store DashboardStore, m metrics.Metrics, clock period.Clock, minMatches, attendanceTop int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.IncRankingRequests("dashboard")
		current := period.CurrentMonth(clock.Now())
		d := &Dashboard{Period: current}

		var mu sync.Mutex
		fail := func(section string, err error) {
			log.Error("Dashboard section failed", "section", section, "error", err)
			mu.Lock()
			defer mu.Unlock()
			if d.Errors == nil {
				d.Errors = make(map[string]string)
			}
			d.Errors[section] = err.Error()
		}
		section := func(name string, filter league.MatchFilter, build func(matches []league.Match, players []league.Player)) func() error {
			return func() error {
				matches, players, err := loadSnapshot(r.Context(), store, filter)
				if err != nil {
					fail(name, err)
					return nil
				}
				build(matches, players)
				return nil
			}
		}

		var g errgroup.Group
		g.Go(section("summary", league.MatchFilter{}, func(matches []league.Match, players []league.Player) {
			s := ranking.Summarize(matches, players)
			d.Summary = &s
		}))
		g.Go(section("global", league.MatchFilter{}, func(matches []league.Match, players []league.Player) {
			d.Global = ranking.Global(matches, players)
		}))
		g.Go(section("monthly", current.MatchFilter(), func(matches []league.Match, players []league.Player) {
			d.Monthly = ranking.Monthly(matches, players, current.Year, current.Month)
		}))
		g.Go(section("performance", league.MatchFilter{}, func(matches []league.Match, players []league.Player) {
			d.Performance = ranking.Performance(matches, players, minMatches)
		}))
		g.Go(section("attendance", league.MatchFilter{}, func(matches []league.Match, players []league.Player) {
			d.Attendance = ranking.Attendance(matches, players, attendanceTop)
		}))
		g.Go(section("streak_record", league.MatchFilter{}, func(matches []league.Match, players []league.Player) {
			if holder, ok := ranking.ConsecutiveWinRecordHolder(matches, players); ok {
				d.StreakRecord = &holder
			}
		}))
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			defer cancel()
			winners, err := store.ListMonthlyWinners(ctx, 0)
			if err != nil {
				fail("monthly_winners", err)
				return nil
			}
			d.MonthlyWinners = winners
			return nil
		})
		g.Wait()

		if d.Global == nil {
			d.Global = []ranking.Entry{}
		}
		if d.Monthly == nil {
			d.Monthly = []ranking.Entry{}
		}
		if d.Performance == nil {
			d.Performance = []ranking.PerformanceEntry{}
		}
		if d.Attendance == nil {
			d.Attendance = []ranking.AttendanceEntry{}
		}
		if d.MonthlyWinners == nil {
			d.MonthlyWinners = []league.MonthlyWinner{}
		}
		writeJSON(w, http.StatusOK, d)
	}
}
