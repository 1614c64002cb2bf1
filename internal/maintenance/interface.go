package maintenance

import (
	"context"

	"github.com/mauv0809/war-scoreboard/internal/league"
)

// Store defines the database operations required by the maintenance job.
type Store interface {
	league.Reader
	UpsertMonthlyWinner(ctx context.Context, w league.MonthlyWinner) error
	UpsertStatistic(ctx context.Context, s league.Statistic) error
	GetStatistic(ctx context.Context, statType string) (*league.Statistic, error)
}
