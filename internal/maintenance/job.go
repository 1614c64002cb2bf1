// Package maintenance snapshots derived statistics into their materialized
// tables. Every snapshot is an upsert by natural key, so runs can be repeated.
package maintenance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/notifier"
	"github.com/mauv0809/war-scoreboard/internal/period"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
)

// New creates a new Job.
func New(store Store, notifier notifier.Notifier, metrics metrics.Metrics) *Job {
	return &Job{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		now:      time.Now,
	}
}

// SnapshotMonth stores the winner of the calendar month. It returns nil
// without writing when the month has no matches.
func (j *Job) SnapshotMonth(ctx context.Context, year, month int, dryRun bool) (*league.MonthlyWinner, error) {
	p, err := period.ForMonth(year, month)
	if err != nil {
		return nil, err
	}
	return j.snapshot(ctx, p, month, dryRun)
}

// SnapshotYear stores the annual summary row, keyed by month 0.
func (j *Job) SnapshotYear(ctx context.Context, year int, dryRun bool) (*league.MonthlyWinner, error) {
	p, err := period.ForYear(year)
	if err != nil {
		return nil, err
	}
	return j.snapshot(ctx, p, league.AnnualSummaryMonth, dryRun)
}

func (j *Job) snapshot(ctx context.Context, p period.Period, month int, dryRun bool) (*league.MonthlyWinner, error) {
	matches, players, err := j.load(ctx, p.MatchFilter())
	if err != nil {
		return nil, err
	}

	entry, ok := ranking.PeriodWinner(matches, players, p)
	if !ok {
		log.Info("No matches in period, nothing to snapshot", "period", p.Label())
		return nil, nil
	}

	winner := &league.MonthlyWinner{
		Year:           p.Year,
		Month:          month,
		PlayerID:       entry.Player.ID,
		PlayerNickname: entry.Player.Nickname,
		Wins:           entry.Wins,
		MatchesPlayed:  entry.MatchesPlayed,
		Rank:           entry.Player.Rank,
		RecordedAt:     j.now().UTC().Truncate(time.Second),
	}
	if dryRun {
		log.Info("[Dry Run] Would store winner", "period", p.Label(), "player", winner.PlayerNickname, "wins", winner.Wins)
		return winner, nil
	}
	if err := j.store.UpsertMonthlyWinner(ctx, *winner); err != nil {
		return nil, fmt.Errorf("store winner of %s: %w", p.Label(), err)
	}
	return winner, nil
}

// SnapshotStreakRecord stores the consecutive win record holder. It returns
// nil without writing when nobody has won a match.
func (j *Job) SnapshotStreakRecord(ctx context.Context, dryRun bool) (*StreakRecord, error) {
	matches, players, err := j.load(ctx, league.MatchFilter{})
	if err != nil {
		return nil, err
	}

	holder, ok := ranking.ConsecutiveWinRecordHolder(matches, players)
	if !ok {
		log.Info("No consecutive win record yet")
		return nil, nil
	}

	record := &StreakRecord{PlayerID: holder.Player.ID, Nickname: holder.Player.Nickname, Streak: holder.Streak}
	if dryRun {
		log.Info("[Dry Run] Would store streak record", "player", record.Nickname, "streak", record.Streak)
		return record, nil
	}

	value, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	err = j.store.UpsertStatistic(ctx, league.Statistic{
		Type:      league.StatisticConsecutiveWins,
		Value:     value,
		PlayerID:  record.PlayerID,
		UpdatedAt: j.now().UTC().Truncate(time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("store streak record: %w", err)
	}
	return record, nil
}

// RunScheduled snapshots the month before now, the annual summary when that
// month is December, and the streak record. A failing step is logged and the
// remaining steps still run; the first error is returned with the report.
func (j *Job) RunScheduled(ctx context.Context, now time.Time, dryRun bool) (*Report, error) {
	start := time.Now()
	j.metrics.IncMaintenanceRuns()
	defer func() {
		j.metrics.ObserveMaintenanceDuration(time.Since(start).Seconds())
	}()

	target := period.PreviousMonth(now)
	report := &Report{Period: target.Label(), DryRun: dryRun}
	log.Info("Starting maintenance run", "period", report.Period, "dry_run", dryRun)

	var firstErr error
	fail := func(step string, err error) {
		j.metrics.IncMaintenanceFailures()
		log.Error("Maintenance step failed", "step", step, "error", err)
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", step, err))
		if firstErr == nil {
			firstErr = err
		}
	}

	if winner, err := j.SnapshotMonth(ctx, target.Year, target.Month, dryRun); err != nil {
		fail("monthly winner", err)
	} else if winner != nil {
		report.MonthlyWinner = winner
		j.announce(ctx, *winner, dryRun)
		j.announceRanking(ctx, target, dryRun)
	}

	if target.Month == 12 {
		if winner, err := j.SnapshotYear(ctx, target.Year, dryRun); err != nil {
			fail("annual winner", err)
		} else if winner != nil {
			report.AnnualWinner = winner
			j.announce(ctx, *winner, dryRun)
		}
	}

	previous := j.storedStreakRecord(ctx)
	if record, err := j.SnapshotStreakRecord(ctx, dryRun); err != nil {
		fail("streak record", err)
	} else {
		report.StreakRecord = record
		if record != nil && (previous == nil || *previous != *record) {
			report.NewStreakRecord = true
			j.announceStreak(ctx, *record, dryRun)
		}
	}

	log.Info("Maintenance run finished", "period", report.Period, "errors", len(report.Errors))
	return report, firstErr
}

// announce failures never fail the run; the snapshot is already stored.
func (j *Job) announce(ctx context.Context, winner league.MonthlyWinner, dryRun bool) {
	if err := j.notifier.SendMonthlyWinner(ctx, winner, dryRun); err != nil {
		log.Warn("Failed to announce winner", "error", err, "year", winner.Year, "month", winner.Month)
	}
}

// announceRanking posts the full table of the closed month.
func (j *Job) announceRanking(ctx context.Context, p period.Period, dryRun bool) {
	matches, players, err := j.load(ctx, p.MatchFilter())
	if err != nil {
		log.Warn("Failed to load ranking for announcement", "period", p.Label(), "error", err)
		return
	}
	if err := j.notifier.SendRanking(ctx, ranking.Title(p), ranking.ForPeriod(matches, players, p), dryRun); err != nil {
		log.Warn("Failed to announce ranking", "period", p.Label(), "error", err)
	}
}

func (j *Job) announceStreak(ctx context.Context, record StreakRecord, dryRun bool) {
	holder := ranking.StreakHolder{
		Player: league.Player{ID: record.PlayerID, Nickname: record.Nickname},
		Streak: record.Streak,
	}
	if err := j.notifier.SendStreakRecord(ctx, holder, dryRun); err != nil {
		log.Warn("Failed to announce streak record", "player", record.Nickname, "error", err)
	}
}

// storedStreakRecord reads the record of the previous run. Failures read as no record.
func (j *Job) storedStreakRecord(ctx context.Context) *StreakRecord {
	stat, err := j.store.GetStatistic(ctx, league.StatisticConsecutiveWins)
	if err != nil {
		log.Warn("Failed to read stored streak record", "error", err)
		return nil
	}
	if stat == nil {
		return nil
	}
	var record StreakRecord
	if err := json.Unmarshal(stat.Value, &record); err != nil {
		log.Warn("Stored streak record is malformed", "error", err)
		return nil
	}
	return &record
}

func (j *Job) load(ctx context.Context, filter league.MatchFilter) ([]league.Match, []league.Player, error) {
	matches, err := j.store.ListMatches(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("list matches: %w", err)
	}
	players, err := j.store.ListPlayers(ctx, league.PlayerFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("list players: %w", err)
	}
	return matches, players, nil
}
