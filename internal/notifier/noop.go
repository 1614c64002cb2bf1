package notifier

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
)

var _ Notifier = Noop{}

// Noop is used when no notification provider is configured. Sends are logged
// at debug level and formatted responses are plain text.
type Noop struct{}

func (Noop) SendMonthlyWinner(_ context.Context, winner league.MonthlyWinner, _ bool) error {
	log.Debug("Notifications disabled, skipping monthly winner", "year", winner.Year, "month", winner.Month, "player", winner.PlayerNickname)
	return nil
}

func (Noop) SendStreakRecord(_ context.Context, holder ranking.StreakHolder, _ bool) error {
	log.Debug("Notifications disabled, skipping streak record", "player", holder.Player.Nickname, "streak", holder.Streak)
	return nil
}

func (Noop) SendRanking(_ context.Context, title string, _ []ranking.Entry, _ bool) error {
	log.Debug("Notifications disabled, skipping ranking", "title", title)
	return nil
}

func (Noop) FormatRankingResponse(title string, entries []ranking.Entry) (any, error) {
	return map[string]any{"text": title, "entries": entries}, nil
}

func (Noop) FormatPerformanceResponse(entries []ranking.PerformanceEntry) (any, error) {
	return map[string]any{"text": "Performance ranking", "entries": entries}, nil
}

func (Noop) FormatUsageResponse(text string) (any, error) {
	return map[string]any{"text": text}, nil
}
