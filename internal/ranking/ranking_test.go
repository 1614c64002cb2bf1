package ranking_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/period"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(id, nickname string) league.Player {
	return league.Player{ID: id, Name: nickname, Nickname: nickname, Rank: league.RankRecruta, Active: true}
}

var seq int

func match(date, winner string, participants ...string) league.Match {
	seq++
	d, err := time.Parse(league.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return league.Match{
		ID:             fmt.Sprintf("m%03d", seq),
		Date:           d,
		Type:           league.MatchTypeGlobal,
		WinnerID:       winner,
		ParticipantIDs: participants,
		CreatedAt:      time.Unix(int64(seq), 0),
	}
}

func scenario() ([]league.Match, []league.Player) {
	players := []league.Player{player("a", "A"), player("b", "B"), player("c", "C")}
	matches := []league.Match{
		match("2024-03-01", "a", "a", "b"),
		match("2024-03-02", "a", "a", "b", "c"),
		match("2024-03-03", "b", "a", "b"),
	}
	return matches, players
}

func nicknames[T any](rows []T, nick func(T) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, nick(r))
	}
	return out
}

func TestGlobal_Scenario(t *testing.T) {
	matches, players := scenario()

	got := ranking.Global(matches, players)
	require.Len(t, got, 3)

	assert.Equal(t, "A", got[0].Player.Nickname)
	assert.Equal(t, 2, got[0].Wins)
	assert.Equal(t, 3, got[0].MatchesPlayed)
	assert.Equal(t, 66.7, got[0].WinRate)

	assert.Equal(t, "B", got[1].Player.Nickname)
	assert.Equal(t, 1, got[1].Wins)
	assert.Equal(t, 3, got[1].MatchesPlayed)
	assert.Equal(t, 33.3, got[1].WinRate)

	assert.Equal(t, "C", got[2].Player.Nickname)
	assert.Equal(t, 0, got[2].Wins)
	assert.Equal(t, 1, got[2].MatchesPlayed)
	assert.Equal(t, 0.0, got[2].WinRate)
}

func TestGlobal_Properties(t *testing.T) {
	players := []league.Player{player("a", "ana"), player("b", "Bia"), player("c", "caio"), player("d", "davi"), player("e", "idle")}
	ids := []string{"a", "b", "c", "d"}
	var matches []league.Match
	for i := 0; i < 40; i++ {
		winner := ids[(i*7)%4]
		participants := []string{winner, ids[(i+1)%4]}
		if i%3 == 0 {
			participants = append(participants, ids[(i+2)%4])
		}
		matches = append(matches, match(fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1), winner, participants...))
	}

	got := ranking.Global(matches, players)

	total := 0
	for _, e := range got {
		total += e.Wins
		assert.LessOrEqual(t, e.Wins, e.MatchesPlayed)
		assert.NotEqual(t, "idle", e.Player.Nickname, "players without matches are excluded")
	}
	assert.Equal(t, len(matches), total, "every match has exactly one winner")

	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Wins != cur.Wins {
			assert.Greater(t, prev.Wins, cur.Wins)
			continue
		}
		if prev.MatchesPlayed != cur.MatchesPlayed {
			assert.Greater(t, prev.MatchesPlayed, cur.MatchesPlayed)
			continue
		}
		assert.Less(t, strings.ToLower(prev.Player.Nickname), strings.ToLower(cur.Player.Nickname))
	}

	reversed := make([]league.Match, len(matches))
	for i, m := range matches {
		reversed[len(matches)-1-i] = m
	}
	assert.Equal(t, got, ranking.Global(reversed, players), "input order does not change the ranking")
}

func TestGlobal_TieBreaks(t *testing.T) {
	players := []league.Player{player("z", "zed"), player("y", "Yan"), player("x", "xavi")}
	matches := []league.Match{
		match("2024-01-01", "z", "z", "x"),
		match("2024-01-02", "y", "y", "x"),
		match("2024-01-03", "x", "x", "y"),
		match("2024-01-04", "y", "y", "z", "x"),
	}
	// y: 2 wins / 3 played, x: 1/4, z: 1/2
	got := ranking.Global(matches, players)
	assert.Equal(t, []string{"Yan", "xavi", "zed"}, nicknames(got, func(e ranking.Entry) string { return e.Player.Nickname }))

	players = []league.Player{player("1", "bob"), player("2", "Alice")}
	matches = []league.Match{
		match("2024-01-01", "1", "1", "2"),
		match("2024-01-02", "2", "1", "2"),
	}
	got = ranking.Global(matches, players)
	assert.Equal(t, []string{"Alice", "bob"}, nicknames(got, func(e ranking.Entry) string { return e.Player.Nickname }),
		"equal wins and matches fall back to nickname ignoring case")
}

func TestGlobal_UnknownPlayersExcluded(t *testing.T) {
	players := []league.Player{player("a", "A")}
	matches := []league.Match{
		match("2024-01-01", "ghost", "a", "ghost"),
		match("2024-01-02", "a", "a", "ghost"),
	}

	got := ranking.Global(matches, players)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Player.Nickname)
	assert.Equal(t, 1, got[0].Wins)
	assert.Equal(t, 2, got[0].MatchesPlayed)
}

func TestEmptyInputs(t *testing.T) {
	_, players := scenario()

	assert.NotNil(t, ranking.Global(nil, players))
	assert.Empty(t, ranking.Global(nil, players))
	assert.Empty(t, ranking.Performance(nil, players, 3))
	assert.Empty(t, ranking.Attendance(nil, players, 8))

	_, ok := ranking.ConsecutiveWinRecordHolder(nil, players)
	assert.False(t, ok)
}

func TestMonthly(t *testing.T) {
	players := []league.Player{player("a", "A"), player("b", "B")}
	matches := []league.Match{
		match("2024-02-29", "a", "a", "b"),
		match("2024-03-01", "b", "a", "b"),
		match("2024-03-31", "b", "a", "b"),
		match("2024-04-01", "a", "a", "b"),
	}

	got := ranking.Monthly(matches, players, 2024, 3)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Player.Nickname)
	assert.Equal(t, 2, got[0].Wins)
	assert.Equal(t, 2, got[0].MatchesPlayed, "both month endpoints are included")

	winner, ok := ranking.MonthlyWinner(matches, players, 2024, 3)
	require.True(t, ok)
	assert.Equal(t, got[0], winner, "the winner is the top row of the monthly ranking")

	t.Run("month without matches", func(t *testing.T) {
		empty := ranking.Monthly(matches, players, 2024, 6)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
		_, ok := ranking.MonthlyWinner(matches, players, 2024, 6)
		assert.False(t, ok)
	})

	t.Run("invalid month", func(t *testing.T) {
		assert.Empty(t, ranking.Monthly(matches, players, 2024, 13))
	})

	t.Run("year window", func(t *testing.T) {
		year, err := period.ForYear(2024)
		require.NoError(t, err)
		winner, ok := ranking.PeriodWinner(matches, players, year)
		require.True(t, ok)
		assert.Equal(t, 2, winner.Wins)
		assert.Equal(t, 4, winner.MatchesPlayed)
		assert.Equal(t, "A", winner.Player.Nickname, "tied on wins and matches, nickname decides")
	})
}

func TestPerformance(t *testing.T) {
	matches, players := scenario()

	got := ranking.Performance(matches, players, 3)
	require.Len(t, got, 2)
	for _, e := range got {
		assert.GreaterOrEqual(t, e.MatchesPlayed, 3)
	}
	assert.Equal(t, "A", got[0].Player.Nickname)
	assert.Equal(t, 66.7, got[0].PerformancePercent)
	assert.Equal(t, ranking.LevelAdvanced, got[0].Level)
	assert.Equal(t, "B", got[1].Player.Nickname)
	assert.Equal(t, ranking.LevelBeginner, got[1].Level)

	assert.Equal(t, got, ranking.Performance(matches, players, 0), "non-positive threshold uses the default")
	assert.Len(t, ranking.Performance(matches, players, 1), 3)

	t.Run("single match winner does not dominate", func(t *testing.T) {
		players := []league.Player{player("a", "A"), player("b", "B")}
		matches := []league.Match{
			match("2024-01-01", "a", "a", "b"),
			match("2024-01-02", "b", "b"),
			match("2024-01-03", "b", "b"),
			match("2024-01-04", "a", "b"),
		}
		got := ranking.Performance(matches, players, 3)
		require.Len(t, got, 1)
		assert.Equal(t, "B", got[0].Player.Nickname)
	})

	t.Run("equal percent breaks on wins", func(t *testing.T) {
		players := []league.Player{player("a", "A"), player("b", "B")}
		matches := []league.Match{
			match("2024-01-01", "a", "a"),
			match("2024-01-02", "a", "a"),
			match("2024-01-03", "a", "a"),
			match("2024-01-04", "a", "a"),
			match("2024-01-05", "b", "b"),
			match("2024-01-06", "b", "b"),
			match("2024-01-07", "b", "b"),
		}
		got := ranking.Performance(matches, players, 3)
		assert.Equal(t, []string{"A", "B"}, nicknames(got, func(e ranking.PerformanceEntry) string { return e.Player.Nickname }))
	})
}

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		percent float64
		want    ranking.Level
	}{
		{100, ranking.LevelElite},
		{80, ranking.LevelElite},
		{79.9, ranking.LevelAdvanced},
		{60, ranking.LevelAdvanced},
		{59.9, ranking.LevelIntermediate},
		{40, ranking.LevelIntermediate},
		{39.9, ranking.LevelBeginner},
		{0, ranking.LevelBeginner},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.percent), func(t *testing.T) {
			assert.Equal(t, tt.want, ranking.ClassifyLevel(tt.percent))
		})
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, 33.3, ranking.Rate(1, 3))
	assert.Equal(t, 66.7, ranking.Rate(2, 3))
	assert.Equal(t, 100.0, ranking.Rate(2, 2))
	assert.Equal(t, 0.0, ranking.Rate(0, 0))
}

func TestAttendance(t *testing.T) {
	var players []league.Player
	var matches []league.Match
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("p%d", i)
		players = append(players, player(id, fmt.Sprintf("player%02d", i)))
		for j := 0; j <= i; j++ {
			matches = append(matches, match("2024-05-01", id, id))
		}
	}
	players = append(players, player("idle", "idle"))

	got := ranking.Attendance(matches, players, 0)
	require.Len(t, got, ranking.DefaultAttendanceTop)
	assert.Equal(t, "player09", got[0].Player.Nickname)
	assert.Equal(t, 10, got[0].MatchesPlayed)
	assert.Equal(t, "player02", got[7].Player.Nickname)

	all := ranking.Attendance(matches, players, 100)
	assert.Len(t, all, 10, "players without matches are excluded")
}

func TestTitle(t *testing.T) {
	march, err := period.ForMonth(2024, 3)
	require.NoError(t, err)
	year, err := period.ForYear(2024)
	require.NoError(t, err)

	assert.Equal(t, "Ranking 03/2024", ranking.Title(march))
	assert.Equal(t, "Ranking 2024", ranking.Title(year))
	assert.Equal(t, "Global Ranking", ranking.Title(period.AllTime()))
}
