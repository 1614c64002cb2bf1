package ranking_test

import (
	"testing"
	"time"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsecutiveWinRecord(t *testing.T) {
	matches := []league.Match{
		match("2024-01-01", "a", "a", "b"),
		match("2024-01-02", "a", "a", "b"),
		match("2024-01-03", "b", "a", "b"),
		match("2024-01-04", "a", "a", "b"),
	}
	assert.Equal(t, 2, ranking.ConsecutiveWinRecord(matches, "a"), "win, win, loss, win")
	assert.Equal(t, 1, ranking.ConsecutiveWinRecord(matches, "b"))
	assert.Equal(t, 0, ranking.ConsecutiveWinRecord(matches, "nobody"))

	t.Run("history is scanned by date, not input order", func(t *testing.T) {
		shuffled := []league.Match{matches[3], matches[1], matches[0], matches[2]}
		assert.Equal(t, 2, ranking.ConsecutiveWinRecord(shuffled, "a"))
	})

	t.Run("matches the player skipped do not reset the run", func(t *testing.T) {
		withOthers := append([]league.Match{}, matches[:2]...)
		withOthers = append(withOthers, match("2024-01-02", "c", "c", "d"), match("2024-01-05", "a", "a"))
		assert.Equal(t, 3, ranking.ConsecutiveWinRecord(withOthers, "a"))
	})

	t.Run("same day keeps recorded order", func(t *testing.T) {
		first := match("2024-02-01", "a", "a", "b")
		second := match("2024-02-01", "b", "a", "b")
		third := match("2024-02-01", "a", "a", "b")
		second.CreatedAt = first.CreatedAt.Add(time.Second)
		third.CreatedAt = second.CreatedAt.Add(time.Second)
		assert.Equal(t, 1, ranking.ConsecutiveWinRecord([]league.Match{third, first, second}, "a"))
	})
}

func TestConsecutiveWinRecordHolder(t *testing.T) {
	players := []league.Player{player("a", "bravo"), player("b", "alpha"), player("c", "charlie")}
	matches := []league.Match{
		match("2024-01-01", "a", "a", "b"),
		match("2024-01-02", "a", "a", "b"),
		match("2024-01-03", "b", "a", "b"),
		match("2024-01-04", "b", "b", "c"),
		match("2024-01-05", "c", "c", "a"),
	}

	holder, ok := ranking.ConsecutiveWinRecordHolder(matches, players)
	require.True(t, ok)
	assert.Equal(t, 2, holder.Streak)
	assert.Equal(t, "alpha", holder.Player.Nickname, "tied streaks go to the first nickname")

	t.Run("unknown players never hold the record", func(t *testing.T) {
		ghostRun := append([]league.Match{}, matches...)
		for _, d := range []string{"2024-02-01", "2024-02-02", "2024-02-03"} {
			ghostRun = append(ghostRun, match(d, "ghost", "ghost", "c"))
		}
		holder, ok := ranking.ConsecutiveWinRecordHolder(ghostRun, players)
		require.True(t, ok)
		assert.Equal(t, "alpha", holder.Player.Nickname)
	})

	t.Run("nobody ever won", func(t *testing.T) {
		_, ok := ranking.ConsecutiveWinRecordHolder(matches, []league.Player{player("z", "zulu")})
		assert.False(t, ok)
	})
}

func TestSummarizeAndProfile(t *testing.T) {
	matches, players := scenario()
	players[2].Active = false
	matches[1].Type = league.MatchTypeChampionship

	s := ranking.Summarize(matches, players)
	assert.Equal(t, 3, s.TotalMatches)
	assert.Equal(t, 3, s.TotalPlayers)
	assert.Equal(t, 2, s.ActivePlayers)
	assert.Equal(t, 3, s.PlayersWithMatches)
	assert.Equal(t, 2, s.MatchesByType[league.MatchTypeGlobal])
	assert.Equal(t, 1, s.MatchesByType[league.MatchTypeChampionship])
	require.NotNil(t, s.LastMatchDate)
	assert.Equal(t, "2024-03-03", s.LastMatchDate.Format(league.DateLayout))

	profile, ok := ranking.PlayerProfile(matches, players, "b")
	require.True(t, ok)
	assert.Equal(t, 2, profile.Position)
	assert.Equal(t, 1, profile.Wins)
	assert.Equal(t, 3, profile.MatchesPlayed)
	assert.Equal(t, 33.3, profile.WinRate)
	assert.Equal(t, ranking.LevelBeginner, profile.Level)
	assert.Equal(t, 1, profile.StreakRecord)

	profile, ok = ranking.PlayerProfile(matches, players, "a")
	require.True(t, ok)
	assert.Equal(t, 2, profile.StreakRecord)

	_, ok = ranking.PlayerProfile(matches, players, "ghost")
	assert.False(t, ok)

	s = ranking.Summarize(nil, nil)
	assert.Zero(t, s.TotalMatches)
	assert.Nil(t, s.LastMatchDate)
}
