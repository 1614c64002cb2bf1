package ranking

import (
	"sort"

	"github.com/mauv0809/war-scoreboard/internal/league"
)

// chronological returns a copy of matches ordered by date. Matches on the same
// date keep the order they were recorded in.
func chronological(matches []league.Match) []league.Match {
	sorted := make([]league.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}

// ConsecutiveWinRecord is the longest run of wins in the player's
// chronological match history. Any match the player took part in without
// winning resets the run.
func ConsecutiveWinRecord(matches []league.Match, playerID string) int {
	current, best := 0, 0
	for _, m := range chronological(matches) {
		if !m.Involves(playerID) {
			continue
		}
		if m.WinnerID != playerID {
			current = 0
			continue
		}
		current++
		if current > best {
			best = current
		}
	}
	return best
}

// ConsecutiveWinRecordHolder returns the registered player with the longest
// win streak, ties broken by nickname. ok is false when nobody has won a match.
func ConsecutiveWinRecordHolder(matches []league.Match, players []league.Player) (StreakHolder, bool) {
	r := newRoster(players)
	records := streakRecords(matches)

	var holder StreakHolder
	found := false
	for id, streak := range records {
		p, ok := r.lookup(id)
		if !ok || streak == 0 {
			continue
		}
		if !found || streak > holder.Streak || (streak == holder.Streak && nicknameLess(p, holder.Player)) {
			holder = StreakHolder{Player: p, Streak: streak}
			found = true
		}
	}
	r.warnUnknown("streak")
	return holder, found
}

// streakRecords computes every player's record in one chronological pass.
func streakRecords(matches []league.Match) map[string]int {
	current := make(map[string]int)
	best := make(map[string]int)
	for _, m := range chronological(matches) {
		for _, id := range participants(m) {
			if id != m.WinnerID {
				current[id] = 0
				if _, ok := best[id]; !ok {
					best[id] = 0
				}
				continue
			}
			current[id]++
			if current[id] > best[id] {
				best[id] = current[id]
			}
		}
	}
	return best
}
