package league

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// UpsertMonthlyWinner stores the winner snapshot keyed by {year, month}.
// Re-running it for the same key overwrites the row instead of adding one.
func (s *store) UpsertMonthlyWinner(ctx context.Context, w MonthlyWinner) error {
	if w.Month < AnnualSummaryMonth || w.Month > 12 {
		return fmt.Errorf("invalid monthly winner month %d", w.Month)
	}
	if w.RecordedAt.IsZero() {
		w.RecordedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO monthly_winners (year, month, player_id, player_nickname, wins, matches_played, player_rank, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET
			player_id = excluded.player_id,
			player_nickname = excluded.player_nickname,
			wins = excluded.wins,
			matches_played = excluded.matches_played,
			player_rank = excluded.player_rank;
	`, w.Year, w.Month, w.PlayerID, w.PlayerNickname, w.Wins, w.MatchesPlayed, string(w.Rank), w.RecordedAt.Unix())
	if err != nil {
		log.Error("Failed to upsert monthly winner", "error", err, "year", w.Year, "month", w.Month)
		return err
	}
	log.Info("Upserted monthly winner", "year", w.Year, "month", w.Month, "player", w.PlayerNickname, "wins", w.Wins)
	return nil
}

// ListMonthlyWinners returns the snapshots of one year, or of all years when year is 0,
// newest first.
func (s *store) ListMonthlyWinners(ctx context.Context, year int) ([]MonthlyWinner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT year, month, player_id, player_nickname, wins, matches_played, player_rank, recorded_at FROM monthly_winners`
	var args []any
	if year != 0 {
		query += ` WHERE year = ?`
		args = append(args, year)
	}
	query += ` ORDER BY year DESC, month DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	winners := []MonthlyWinner{}
	for rows.Next() {
		var w MonthlyWinner
		var rank string
		var recordedAt int64
		if err := rows.Scan(&w.Year, &w.Month, &w.PlayerID, &w.PlayerNickname, &w.Wins, &w.MatchesPlayed, &rank, &recordedAt); err != nil {
			return nil, err
		}
		w.Rank = Rank(rank)
		w.RecordedAt = time.Unix(recordedAt, 0).UTC()
		winners = append(winners, w)
	}
	return winners, rows.Err()
}

// UpsertStatistic stores a statistic keyed by its type.
func (s *store) UpsertStatistic(ctx context.Context, st Statistic) error {
	if st.Type == "" {
		return errors.New("statistic type is required")
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = s.now()
	}
	value := st.Value
	if len(value) == 0 {
		value = []byte("null")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO statistics (type, value, player_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(type) DO UPDATE SET
			value = excluded.value,
			player_id = excluded.player_id,
			updated_at = excluded.updated_at;
	`, st.Type, string(value), sql.NullString{String: st.PlayerID, Valid: st.PlayerID != ""}, st.UpdatedAt.Unix())
	if err != nil {
		log.Error("Failed to upsert statistic", "error", err, "type", st.Type)
		return err
	}
	log.Debug("Upserted statistic", "type", st.Type, "playerID", st.PlayerID)
	return nil
}

// GetStatistic returns nil without error when the statistic was never recorded.
func (s *store) GetStatistic(ctx context.Context, statType string) (*Statistic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		st        Statistic
		value     string
		playerID  sql.NullString
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT type, value, player_id, updated_at FROM statistics WHERE type = ?`, statType).
		Scan(&st.Type, &value, &playerID, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	st.Value = []byte(value)
	st.PlayerID = playerID.String
	st.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &st, nil
}
