package ranking

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/league"
)

// roster indexes the registry by id and collects references it cannot resolve.
type roster struct {
	players map[string]league.Player
	unknown map[string]struct{}
}

func newRoster(players []league.Player) *roster {
	r := &roster{
		players: make(map[string]league.Player, len(players)),
		unknown: make(map[string]struct{}),
	}
	for _, p := range players {
		r.players[p.ID] = p
	}
	return r
}

// lookup returns the registered player, recording the id when it is unknown.
func (r *roster) lookup(id string) (league.Player, bool) {
	p, ok := r.players[id]
	if !ok {
		r.unknown[id] = struct{}{}
	}
	return p, ok
}

// tallies counts wins and participations of known players over matches.
func (r *roster) tallies(matches []league.Match) map[string]*tally {
	out := make(map[string]*tally)
	for _, m := range matches {
		for _, id := range participants(m) {
			if _, ok := r.lookup(id); !ok {
				continue
			}
			t, ok := out[id]
			if !ok {
				t = &tally{}
				out[id] = t
			}
			t.played++
			if id == m.WinnerID {
				t.wins++
			}
		}
	}
	return out
}

// warnUnknown logs unresolved references once for the whole computation.
func (r *roster) warnUnknown(computation string) {
	if len(r.unknown) == 0 {
		return
	}
	ids := make([]string, 0, len(r.unknown))
	for id := range r.unknown {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	log.Warn("Matches reference unregistered players, excluding them", "computation", computation, "player_ids", ids)
}

// participants lists the distinct players of a match, winner included.
func participants(m league.Match) []string {
	seen := make(map[string]struct{}, len(m.ParticipantIDs)+1)
	out := make([]string, 0, len(m.ParticipantIDs)+1)
	for _, id := range m.ParticipantIDs {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if _, ok := seen[m.WinnerID]; !ok && m.WinnerID != "" {
		out = append(out, m.WinnerID)
	}
	return out
}

// nicknameLess orders players by nickname ignoring case, falling back to the
// raw nickname and then the id so that no two players compare equal.
func nicknameLess(a, b league.Player) bool {
	la, lb := strings.ToLower(a.Nickname), strings.ToLower(b.Nickname)
	if la != lb {
		return la < lb
	}
	if a.Nickname != b.Nickname {
		return a.Nickname < b.Nickname
	}
	return a.ID < b.ID
}
