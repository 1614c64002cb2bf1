package league_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/mauv0809/war-scoreboard/internal/database"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return league.New(db), db, dbTeardown
}

func register(t *testing.T, store league.Store, nickname string) *league.Player {
	t.Helper()
	p, err := store.RegisterPlayer(context.Background(), league.NewPlayer{Name: nickname + " Name", Nickname: nickname})
	require.NoError(t, err)
	return p
}

func TestRegisterPlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	p := register(t, store, "general")
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, league.LowestRank, p.Rank, "new players always start at the lowest rank")
	assert.True(t, p.Active)

	t.Run("nickname must be unique ignoring case", func(t *testing.T) {
		_, err := store.RegisterPlayer(ctx, league.NewPlayer{Nickname: "GENERAL"})
		assert.ErrorIs(t, err, league.ErrNicknameTaken)
	})

	t.Run("nickname is required", func(t *testing.T) {
		_, err := store.RegisterPlayer(ctx, league.NewPlayer{Name: "No Nick"})
		assert.ErrorIs(t, err, league.ErrInvalidPlayer)
	})

	t.Run("lookup by nickname", func(t *testing.T) {
		found, err := store.GetPlayerByNickname(ctx, "General")
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
	})
}

func TestUpdatePlayerAndStatus(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	p := register(t, store, "tank")

	rank := league.RankSargento
	name := "Tank Commander"
	updated, err := store.UpdatePlayer(ctx, p.ID, league.PlayerUpdate{Name: &name, Rank: &rank})
	require.NoError(t, err)
	assert.Equal(t, league.RankSargento, updated.Rank)
	assert.Equal(t, "Tank Commander", updated.Name)
	assert.Equal(t, "tank", updated.Nickname)

	bad := league.Rank("emperor")
	_, err = store.UpdatePlayer(ctx, p.ID, league.PlayerUpdate{Rank: &bad})
	assert.ErrorIs(t, err, league.ErrInvalidPlayer)

	_, err = store.UpdatePlayer(ctx, "missing", league.PlayerUpdate{Name: &name})
	assert.ErrorIs(t, err, league.ErrPlayerNotFound)

	inactive, err := store.SetPlayerActive(ctx, p.ID, false)
	require.NoError(t, err)
	assert.False(t, inactive.Active)

	active, err := store.ListPlayers(ctx, league.PlayerFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := store.ListPlayers(ctx, league.PlayerFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "inactive players keep their registration")

	_, err = store.SetPlayerActive(ctx, "missing", true)
	assert.ErrorIs(t, err, league.ErrPlayerNotFound)
}

func TestRecordMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := register(t, store, "a")
	b := register(t, store, "b")

	m, err := store.RecordMatch(ctx, league.NewMatch{
		Date:           "2024-03-10",
		Type:           league.MatchTypeChampionship,
		WinnerID:       a.ID,
		ParticipantIDs: []string{a.ID, b.ID, a.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, m.ParticipantIDs, "duplicate participants are dropped")

	matches, err := store.ListMatches(ctx, league.MatchFilter{})
	require.NoError(t, err)
	require.Len(t, matches, 1, "a recorded match is visible to the next read")
	assert.Equal(t, m.ID, matches[0].ID)
	assert.Equal(t, []string{a.ID, b.ID}, matches[0].ParticipantIDs)
	assert.Equal(t, "2024-03-10", matches[0].Date.Format(league.DateLayout))
	assert.Equal(t, league.MatchTypeChampionship, matches[0].Type)

	tests := []struct {
		name  string
		input league.NewMatch
	}{
		{"no participants", league.NewMatch{Date: "2024-03-10", WinnerID: a.ID}},
		{"winner not a participant", league.NewMatch{Date: "2024-03-10", WinnerID: a.ID, ParticipantIDs: []string{b.ID}}},
		{"bad date", league.NewMatch{Date: "10/03/2024", WinnerID: a.ID, ParticipantIDs: []string{a.ID}}},
		{"bad type", league.NewMatch{Date: "2024-03-10", Type: "poker", WinnerID: a.ID, ParticipantIDs: []string{a.ID}}},
		{"unknown player", league.NewMatch{Date: "2024-03-10", WinnerID: a.ID, ParticipantIDs: []string{a.ID, "ghost"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.RecordMatch(ctx, tt.input)
			assert.ErrorIs(t, err, league.ErrInvalidMatch)
		})
	}

	matches, err = store.ListMatches(ctx, league.MatchFilter{})
	require.NoError(t, err)
	assert.Len(t, matches, 1, "rejected matches leave no trace")
}

func TestListMatches_DateFilterAndOrder(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := register(t, store, "a")
	for _, date := range []string{"2024-02-29", "2024-01-31", "2024-02-01", "2024-03-01"} {
		_, err := store.RecordMatch(ctx, league.NewMatch{Date: date, WinnerID: a.ID, ParticipantIDs: []string{a.ID}})
		require.NoError(t, err)
	}

	all, err := store.ListMatches(ctx, league.MatchFilter{})
	require.NoError(t, err)
	var dates []string
	for _, m := range all {
		dates = append(dates, m.Date.Format(league.DateLayout))
	}
	assert.Equal(t, []string{"2024-01-31", "2024-02-01", "2024-02-29", "2024-03-01"}, dates)

	from, _ := time.Parse(league.DateLayout, "2024-02-01")
	to, _ := time.Parse(league.DateLayout, "2024-02-29")
	feb, err := store.ListMatches(ctx, league.MatchFilter{DateFrom: from, DateTo: to})
	require.NoError(t, err)
	assert.Len(t, feb, 2, "both endpoints are inclusive")
}

func TestUpsertMonthlyWinner_IsIdempotent(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	first := time.Date(2024, time.March, 1, 6, 0, 0, 0, time.UTC)
	w := league.MonthlyWinner{Year: 2024, Month: 2, PlayerID: "p1", PlayerNickname: "a", Wins: 3, MatchesPlayed: 4, Rank: league.RankCabo, RecordedAt: first}
	require.NoError(t, store.UpsertMonthlyWinner(ctx, w))
	w.RecordedAt = first.Add(24 * time.Hour)
	require.NoError(t, store.UpsertMonthlyWinner(ctx, w))

	winners, err := store.ListMonthlyWinners(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, 3, winners[0].Wins)
	assert.Equal(t, league.RankCabo, winners[0].Rank)
	assert.True(t, first.Equal(winners[0].RecordedAt), "a re-run keeps the first recorded_at, got %s", winners[0].RecordedAt)

	w.Wins = 5
	require.NoError(t, store.UpsertMonthlyWinner(ctx, w))
	winners, err = store.ListMonthlyWinners(ctx, 0)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, 5, winners[0].Wins)
	assert.True(t, first.Equal(winners[0].RecordedAt))

	assert.Error(t, store.UpsertMonthlyWinner(ctx, league.MonthlyWinner{Year: 2024, Month: 13}))
}

func TestStatistics(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	missing, err := store.GetStatistic(ctx, league.StatisticConsecutiveWins)
	require.NoError(t, err)
	assert.Nil(t, missing)

	value, _ := json.Marshal(map[string]int{"streak": 4})
	require.NoError(t, store.UpsertStatistic(ctx, league.Statistic{Type: league.StatisticConsecutiveWins, Value: value, PlayerID: "p1"}))
	require.NoError(t, store.UpsertStatistic(ctx, league.Statistic{Type: league.StatisticConsecutiveWins, Value: value, PlayerID: "p2"}))

	st, err := store.GetStatistic(ctx, league.StatisticConsecutiveWins)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, "p2", st.PlayerID)
	assert.JSONEq(t, `{"streak":4}`, string(st.Value))
}

func TestImportLegacyMatches(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := register(t, store, "Alpha")
	b := register(t, store, "Bravo")

	report, err := store.ImportLegacyMatches(ctx, []league.LegacyMatch{
		{Date: "2023-05-01", Winner: "alpha", Participants: []string{"alpha", b.ID}},
		{Date: "2023-05-02", Winner: a.ID, Participants: []string{a.ID, "charlie"}},
		{Date: "2023-05-03", Winner: "bravo", Participants: []string{"alpha"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, 1, report.Skipped[0].Index)
	assert.Equal(t, []string{"charlie"}, report.Skipped[0].Unresolved)
	assert.Equal(t, 2, report.Skipped[1].Index)

	matches, err := store.ListMatches(ctx, league.MatchFilter{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, a.ID, matches[0].WinnerID, "nicknames are migrated to ids")
	assert.Equal(t, []string{a.ID, b.ID}, matches[0].ParticipantIDs)
}

func TestRankOrdering(t *testing.T) {
	assert.Len(t, league.Ranks, 8)
	assert.Equal(t, 1, league.RankRecruta.Level())
	assert.Equal(t, 8, league.RankMarechal.Level())
	assert.Less(t, league.RankCabo.Level(), league.RankTenente.Level())

	r, ok := league.ParseRank(" Coronel ")
	assert.True(t, ok)
	assert.Equal(t, league.RankCoronel, r)
	_, ok = league.ParseRank("emperor")
	assert.False(t, ok)
}
