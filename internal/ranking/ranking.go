// Package ranking computes leaderboards and statistics from the match log.
// Every function is pure: it reads the given snapshot and returns ordered rows.
// Matches that reference players missing from the registry still count for the
// known players involved; the unknown ids are skipped and logged once per call.
package ranking

import (
	"fmt"
	"sort"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/period"
)

// Global ranks every player with at least one match by wins, then matches
// played, then nickname.
func Global(matches []league.Match, players []league.Player) []Entry {
	return rank("global", matches, players)
}

// Monthly is Global restricted to the calendar month. An invalid month or an
// empty window yields an empty list.
func Monthly(matches []league.Match, players []league.Player, year, month int) []Entry {
	p, err := period.ForMonth(year, month)
	if err != nil {
		return []Entry{}
	}
	return ForPeriod(matches, players, p)
}

// ForPeriod is Global restricted to the window.
func ForPeriod(matches []league.Match, players []league.Player, p period.Period) []Entry {
	return rank("period "+p.Label(), Within(matches, p), players)
}

// MonthlyWinner returns the top row of Monthly. ok is false when the month
// has no matches.
func MonthlyWinner(matches []league.Match, players []league.Player, year, month int) (Entry, bool) {
	entries := Monthly(matches, players, year, month)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// PeriodWinner returns the top row of ForPeriod.
func PeriodWinner(matches []league.Match, players []league.Player, p period.Period) (Entry, bool) {
	entries := ForPeriod(matches, players, p)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// Performance ranks players with at least minMatches matches by performance
// percent, then wins, then nickname. A non-positive minMatches uses
// DefaultMinMatches.
func Performance(matches []league.Match, players []league.Player, minMatches int) []PerformanceEntry {
	if minMatches <= 0 {
		minMatches = DefaultMinMatches
	}
	r := newRoster(players)
	tallies := r.tallies(matches)
	r.warnUnknown("performance")

	out := make([]PerformanceEntry, 0, len(tallies))
	for id, t := range tallies {
		if t.played < minMatches {
			continue
		}
		percent := Rate(t.wins, t.played)
		out = append(out, PerformanceEntry{
			Player:             r.players[id],
			Wins:               t.wins,
			MatchesPlayed:      t.played,
			PerformancePercent: percent,
			Level:              ClassifyLevel(percent),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PerformancePercent != b.PerformancePercent {
			return a.PerformancePercent > b.PerformancePercent
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return nicknameLess(a.Player, b.Player)
	})
	return out
}

// Attendance ranks players by matches played, then nickname, keeping the
// first topN. A non-positive topN uses DefaultAttendanceTop.
func Attendance(matches []league.Match, players []league.Player, topN int) []AttendanceEntry {
	if topN <= 0 {
		topN = DefaultAttendanceTop
	}
	r := newRoster(players)
	tallies := r.tallies(matches)
	r.warnUnknown("attendance")

	out := make([]AttendanceEntry, 0, len(tallies))
	for id, t := range tallies {
		out = append(out, AttendanceEntry{Player: r.players[id], MatchesPlayed: t.played})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchesPlayed != out[j].MatchesPlayed {
			return out[i].MatchesPlayed > out[j].MatchesPlayed
		}
		return nicknameLess(out[i].Player, out[j].Player)
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Within returns the matches whose date falls in the window.
func Within(matches []league.Match, p period.Period) []league.Match {
	out := make([]league.Match, 0, len(matches))
	for _, m := range matches {
		if p.Contains(m.Date) {
			out = append(out, m)
		}
	}
	return out
}

func rank(computation string, matches []league.Match, players []league.Player) []Entry {
	r := newRoster(players)
	tallies := r.tallies(matches)
	r.warnUnknown(computation)

	out := make([]Entry, 0, len(tallies))
	for id, t := range tallies {
		out = append(out, Entry{
			Player:        r.players[id],
			Wins:          t.wins,
			MatchesPlayed: t.played,
			WinRate:       Rate(t.wins, t.played),
		})
	}
	sortEntries(out)
	return out
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.MatchesPlayed != b.MatchesPlayed {
			return a.MatchesPlayed > b.MatchesPlayed
		}
		return nicknameLess(a.Player, b.Player)
	})
}

// Title names the ranking of a period for announcements.
func Title(p period.Period) string {
	switch p.Kind {
	case period.KindMonth:
		return fmt.Sprintf("Ranking %02d/%d", p.Month, p.Year)
	case period.KindYear:
		return fmt.Sprintf("Ranking %d", p.Year)
	}
	return "Global Ranking"
}
