package ranking

import (
	"time"

	"github.com/mauv0809/war-scoreboard/internal/league"
)

// Defaults applied when a caller passes a non-positive threshold.
const (
	DefaultMinMatches    = 3
	DefaultAttendanceTop = 8
)

// Level is the display badge derived from a performance percent.
type Level string

const (
	LevelElite        Level = "Elite"
	LevelAdvanced     Level = "Advanced"
	LevelIntermediate Level = "Intermediate"
	LevelBeginner     Level = "Beginner"
)

// Entry is one row of a wins-based ranking.
type Entry struct {
	Player        league.Player `json:"player"`
	Wins          int           `json:"wins"`
	MatchesPlayed int           `json:"matches_played"`
	WinRate       float64       `json:"win_rate"`
}

// PerformanceEntry is one row of the performance ranking.
type PerformanceEntry struct {
	Player             league.Player `json:"player"`
	Wins               int           `json:"wins"`
	MatchesPlayed      int           `json:"matches_played"`
	PerformancePercent float64       `json:"performance_percent"`
	Level              Level         `json:"level"`
}

// AttendanceEntry is one row of the attendance table.
type AttendanceEntry struct {
	Player        league.Player `json:"player"`
	MatchesPlayed int           `json:"matches_played"`
}

// StreakHolder is the player owning the longest run of consecutive wins.
type StreakHolder struct {
	Player league.Player `json:"player"`
	Streak int           `json:"streak"`
}

// Summary holds the dashboard header counters.
type Summary struct {
	TotalMatches       int                      `json:"total_matches"`
	TotalPlayers       int                      `json:"total_players"`
	ActivePlayers      int                      `json:"active_players"`
	PlayersWithMatches int                      `json:"players_with_matches"`
	MatchesByType      map[league.MatchType]int `json:"matches_by_type"`
	LastMatchDate      *time.Time               `json:"last_match_date,omitempty"`
}

// Profile is a single player's statistics.
type Profile struct {
	Player        league.Player `json:"player"`
	Position      int           `json:"position,omitempty"`
	Wins          int           `json:"wins"`
	MatchesPlayed int           `json:"matches_played"`
	WinRate       float64       `json:"win_rate"`
	Level         Level         `json:"level"`
	StreakRecord  int           `json:"streak_record"`
	LastMatchDate *time.Time    `json:"last_match_date,omitempty"`
}

type tally struct {
	wins   int
	played int
}
