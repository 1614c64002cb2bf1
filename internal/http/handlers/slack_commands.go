package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/notifier"
	"github.com/mauv0809/war-scoreboard/internal/period"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
)

const rankingUsage = "Usage: `/ranking` or `/ranking global`, `/ranking mensal [YYYY MM]`, " +
	"`/ranking periodo this-month|last-month|this-year|all-time`, `/ranking performance`."

// RankingCommandHandler answers the /ranking slash command.
func RankingCommandHandler(store league.Reader, n notifier.Notifier, clock period.Clock, minMatches int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		text := r.FormValue("text")
		log.Info("Received ranking command", "text", text, "user", r.FormValue("user_name"))

		msg, err := rankingCommand(r.Context(), store, n, clock, minMatches, strings.Fields(strings.ToLower(text)))
		if err != nil {
			log.Error("Failed to answer ranking command", "text", text, "error", err)
			http.Error(w, "Failed to build ranking", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}

func rankingCommand(ctx context.Context, store league.Reader, n notifier.Notifier, clock period.Clock, minMatches int, args []string) (any, error) {
	sub := "global"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	var p period.Period
	var err error
	switch sub {
	case "global":
		p = period.AllTime()
	case "mensal":
		if len(args) == 2 {
			p, err = period.Parse(args[0], args[1])
		} else {
			p = period.CurrentMonth(clock.Now())
		}
	case "periodo":
		if len(args) != 1 {
			return n.FormatUsageResponse(rankingUsage)
		}
		p, err = period.Resolve(args[0], clock.Now())
	case "performance":
		matches, players, err := loadSnapshot(ctx, store, league.MatchFilter{})
		if err != nil {
			return nil, err
		}
		return n.FormatPerformanceResponse(ranking.Performance(matches, players, minMatches))
	default:
		return n.FormatUsageResponse(rankingUsage)
	}
	if err != nil {
		log.Warn("Invalid period in ranking command", "args", args, "error", err)
		return n.FormatUsageResponse(err.Error() + "\n" + rankingUsage)
	}

	matches, players, err := loadSnapshot(ctx, store, p.MatchFilter())
	if err != nil {
		return nil, err
	}
	return n.FormatRankingResponse(ranking.Title(p), ranking.ForPeriod(matches, players, p))
}
