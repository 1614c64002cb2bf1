package ranking

import (
	"time"

	"github.com/mauv0809/war-scoreboard/internal/league"
)

// Summarize counts the dashboard header figures.
func Summarize(matches []league.Match, players []league.Player) Summary {
	s := Summary{
		TotalMatches:  len(matches),
		TotalPlayers:  len(players),
		MatchesByType: make(map[league.MatchType]int),
	}
	for _, p := range players {
		if p.Active {
			s.ActivePlayers++
		}
	}

	r := newRoster(players)
	s.PlayersWithMatches = len(r.tallies(matches))
	r.warnUnknown("summary")

	var last time.Time
	for _, m := range matches {
		s.MatchesByType[m.Type]++
		if m.Date.After(last) {
			last = m.Date
		}
	}
	if !last.IsZero() {
		s.LastMatchDate = &last
	}
	return s
}

// PlayerProfile gathers one registered player's statistics. ok is false when
// the id is not in the registry.
func PlayerProfile(matches []league.Match, players []league.Player, playerID string) (Profile, bool) {
	r := newRoster(players)
	p, ok := r.players[playerID]
	if !ok {
		return Profile{}, false
	}

	profile := Profile{Player: p, Level: LevelBeginner}
	for i, e := range Global(matches, players) {
		if e.Player.ID == playerID {
			profile.Position = i + 1
			profile.Wins = e.Wins
			profile.MatchesPlayed = e.MatchesPlayed
			profile.WinRate = e.WinRate
			profile.Level = ClassifyLevel(e.WinRate)
			break
		}
	}

	var last time.Time
	for _, m := range matches {
		if m.Involves(playerID) && m.Date.After(last) {
			last = m.Date
		}
	}
	if !last.IsZero() {
		profile.LastMatchDate = &last
	}
	profile.StreakRecord = ConsecutiveWinRecord(matches, playerID)
	return profile, true
}
