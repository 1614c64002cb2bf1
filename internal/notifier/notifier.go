package notifier

import (
	"context"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
)

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// Announcements from the maintenance job
	SendMonthlyWinner(ctx context.Context, winner league.MonthlyWinner, dryRun bool) error
	SendStreakRecord(ctx context.Context, holder ranking.StreakHolder, dryRun bool) error
	// For slash commands
	SendRanking(ctx context.Context, title string, entries []ranking.Entry, dryRun bool) error

	// For formatting responses for slash commands
	FormatRankingResponse(title string, entries []ranking.Entry) (any, error)
	FormatPerformanceResponse(entries []ranking.PerformanceEntry) (any, error)
	FormatUsageResponse(text string) (any, error)
}
