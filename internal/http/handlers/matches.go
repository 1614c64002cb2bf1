package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/cache"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/pubsub"
)

// ListMatchesHandler lists matches, optionally within ?from= and ?to= (YYYY-MM-DD, inclusive).
func ListMatchesHandler(store league.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter league.MatchFilter
		for key, dst := range map[string]*time.Time{"from": &filter.DateFrom, "to": &filter.DateTo} {
			raw := r.URL.Query().Get(key)
			if raw == "" {
				continue
			}
			d, err := time.Parse(league.DateLayout, raw)
			if err != nil {
				writeError(w, "Invalid date filter", fmt.Errorf("%w: %s=%q is not YYYY-MM-DD", league.ErrInvalidMatch, key, raw))
				return
			}
			*dst = d
		}
		matches, err := store.ListMatches(r.Context(), filter)
		if err != nil {
			writeError(w, "Failed to get matches", err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

// RecordMatchHandler appends a match, drops cached rankings and publishes the event.
func RecordMatchHandler(store league.Store, c cache.Cache, m metrics.Metrics, ps pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input league.NewMatch
		if err := decodeJSON(r, &input); err != nil {
			writeError(w, "Invalid match payload", fmt.Errorf("%w: %v", league.ErrInvalidMatch, err))
			return
		}
		match, err := store.RecordMatch(r.Context(), input)
		if err != nil {
			writeError(w, "Failed to record match", err)
			return
		}
		m.IncMatchesRecorded()
		invalidate(r.Context(), c)
		log.Info("Match recorded", "id", match.ID, "date", match.Date.Format(league.DateLayout), "winner", match.WinnerID)

		if !IsDryRunFromContext(r) {
			publishMatchRecorded(r.Context(), ps, match)
		}
		writeJSON(w, http.StatusCreated, match)
	}
}

// ImportMatchesHandler migrates legacy matches that may reference players by
// nickname. Unresolved matches are reported, never guessed.
func ImportMatchesHandler(store league.Store, c cache.Cache, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input []league.LegacyMatch
		if err := decodeJSON(r, &input); err != nil {
			writeError(w, "Invalid import payload", fmt.Errorf("%w: %v", league.ErrInvalidMatch, err))
			return
		}
		report, err := store.ImportLegacyMatches(r.Context(), input)
		if err != nil {
			writeError(w, "Failed to import matches", err)
			return
		}
		for i := 0; i < report.Imported; i++ {
			m.IncMatchesRecorded()
		}
		if report.Imported > 0 {
			invalidate(r.Context(), c)
		}
		log.Info("Legacy import finished", "imported", report.Imported, "skipped", len(report.Skipped))
		writeJSON(w, http.StatusOK, report)
	}
}

func publishMatchRecorded(ctx context.Context, ps pubsub.PubSubClient, match *league.Match) {
	event := pubsub.MatchRecorded{
		MatchID:        match.ID,
		Date:           match.Date.Format(league.DateLayout),
		Type:           string(match.Type),
		WinnerID:       match.WinnerID,
		ParticipantIDs: match.ParticipantIDs,
	}
	if err := ps.SendMessage(ctx, pubsub.EventMatchRecorded, event); err != nil {
		log.Warn("Failed to publish match event", "match_id", match.ID, "error", err)
	}
}
