package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mauv0809/war-scoreboard/internal/cache"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/period"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
)

// PeriodRanking is the response of the named period ranking.
type PeriodRanking struct {
	Period  period.Period   `json:"period"`
	Ranking []ranking.Entry `json:"ranking"`
}

func GlobalRankingHandler(store league.Reader, c cache.Cache, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.IncRankingRequests("global")
		serveCached(w, r, c, m, "global", func(ctx context.Context) (any, error) {
			matches, players, err := loadSnapshot(ctx, store, league.MatchFilter{})
			if err != nil {
				return nil, err
			}
			return ranking.Global(matches, players), nil
		})
	}
}

// MonthlyRankingHandler serves /api/ranking/mensal/{year}/{month}.
func MonthlyRankingHandler(store league.Reader, c cache.Cache, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.IncRankingRequests("monthly")
		p, err := period.Parse(r.PathValue("year"), r.PathValue("month"))
		if err != nil {
			writeError(w, "Invalid period", err)
			return
		}
		serveCached(w, r, c, m, "monthly:"+p.Label(), func(ctx context.Context) (any, error) {
			matches, players, err := loadSnapshot(ctx, store, p.MatchFilter())
			if err != nil {
				return nil, err
			}
			return ranking.Monthly(matches, players, p.Year, p.Month), nil
		})
	}
}

// PerformanceRankingHandler serves the ranking of players with at least ?min= matches.
func PerformanceRankingHandler(store league.Reader, c cache.Cache, m metrics.Metrics, defaultMin int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.IncRankingRequests("performance")
		minMatches := queryInt(r, "min", defaultMin)
		serveCached(w, r, c, m, "performance:"+strconv.Itoa(minMatches), func(ctx context.Context) (any, error) {
			matches, players, err := loadSnapshot(ctx, store, league.MatchFilter{})
			if err != nil {
				return nil, err
			}
			return ranking.Performance(matches, players, minMatches), nil
		})
	}
}

// AttendanceRankingHandler serves the ?top= most active players.
func AttendanceRankingHandler(store league.Reader, c cache.Cache, m metrics.Metrics, defaultTop int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.IncRankingRequests("attendance")
		top := queryInt(r, "top", defaultTop)
		serveCached(w, r, c, m, "attendance:"+strconv.Itoa(top), func(ctx context.Context) (any, error) {
			matches, players, err := loadSnapshot(ctx, store, league.MatchFilter{})
			if err != nil {
				return nil, err
			}
			return ranking.Attendance(matches, players, top), nil
		})
	}
}

// StreakRecordHandler serves the live consecutive win record holder, or null.
func StreakRecordHandler(store league.Reader, c cache.Cache, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.IncRankingRequests("streak")
		serveCached(w, r, c, m, "streak", func(ctx context.Context) (any, error) {
			matches, players, err := loadSnapshot(ctx, store, league.MatchFilter{})
			if err != nil {
				return nil, err
			}
			holder, ok := ranking.ConsecutiveWinRecordHolder(matches, players)
			if !ok {
				return nil, nil
			}
			return holder, nil
		})
	}
}

// PeriodRankingHandler serves /api/ranking/period/{name} for this-month,
// last-month, this-year and all-time.
func PeriodRankingHandler(store league.Reader, c cache.Cache, m metrics.Metrics, clock period.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.IncRankingRequests("period")
		p, err := period.Resolve(r.PathValue("name"), clock.Now())
		if err != nil {
			writeError(w, "Invalid period", err)
			return
		}
		serveCached(w, r, c, m, "period:"+p.Label(), func(ctx context.Context) (any, error) {
			matches, players, err := loadSnapshot(ctx, store, p.MatchFilter())
			if err != nil {
				return nil, err
			}
			return PeriodRanking{Period: p, Ranking: ranking.ForPeriod(matches, players, p)}, nil
		})
	}
}

// MonthlyWinnersStore reads the materialized winners.
type MonthlyWinnersStore interface {
	ListMonthlyWinners(ctx context.Context, year int) ([]league.MonthlyWinner, error)
}

// MonthlyWinnersHandler lists stored snapshots, optionally for one ?year=.
func MonthlyWinnersHandler(store MonthlyWinnersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := 0
		if raw := r.URL.Query().Get("year"); raw != "" {
			p, err := period.ParseYear(raw)
			if err != nil {
				writeError(w, "Invalid year", err)
				return
			}
			year = p.Year
		}
		winners, err := store.ListMonthlyWinners(r.Context(), year)
		if err != nil {
			writeError(w, "Failed to list monthly winners", err)
			return
		}
		writeJSON(w, http.StatusOK, winners)
	}
}
