package maintenance

import (
	"time"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/notifier"
)

// Job materializes monthly winners and the streak record.
type Job struct {
	store    Store
	notifier notifier.Notifier
	metrics  metrics.Metrics
	now      func() time.Time
}

// StreakRecord is the value payload of the consecutive-win statistic.
type StreakRecord struct {
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
	Streak   int    `json:"streak"`
}

// Report summarizes a scheduled run. NewStreakRecord is set when the holder
// or the streak changed in this run.
type Report struct {
	Period          string                `json:"period"`
	DryRun          bool                  `json:"dry_run"`
	MonthlyWinner   *league.MonthlyWinner `json:"monthly_winner,omitempty"`
	AnnualWinner    *league.MonthlyWinner `json:"annual_winner,omitempty"`
	StreakRecord    *StreakRecord         `json:"streak_record,omitempty"`
	NewStreakRecord bool                  `json:"new_streak_record"`
	Errors          []string              `json:"errors,omitempty"`
}
