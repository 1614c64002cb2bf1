package league

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// ImportLegacyMatches migrates historical matches whose player references are a mix of
// ids and nicknames. A reference is resolved by exact id first, then by nickname
// (case-insensitive). Matches with any unresolved reference are skipped and reported;
// nothing is guessed.
func (s *store) ImportLegacyMatches(ctx context.Context, legacy []LegacyMatch) (*ImportReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	report := &ImportReport{Skipped: []SkippedImport{}}
	for i, lm := range legacy {
		var unresolved []string
		resolve := func(ref string) string {
			id, ok := resolver.resolve(ref)
			if !ok {
				unresolved = append(unresolved, ref)
			}
			return id
		}

		winnerID := resolve(lm.Winner)
		participants := make([]string, 0, len(lm.Participants))
		for _, ref := range lm.Participants {
			participants = append(participants, resolve(ref))
		}
		if len(unresolved) > 0 {
			log.Warn("Skipping legacy match with unresolved player references", "index", i, "unresolved", unresolved)
			report.Skipped = append(report.Skipped, SkippedImport{Index: i, Reason: "unresolved player reference", Unresolved: unresolved})
			continue
		}

		m, err := s.validateMatch(ctx, tx, NewMatch{
			Date:           lm.Date,
			Type:           lm.Type,
			WinnerID:       winnerID,
			ParticipantIDs: participants,
			Notes:          lm.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidMatch) {
				report.Skipped = append(report.Skipped, SkippedImport{Index: i, Reason: err.Error()})
				continue
			}
			return nil, err
		}
		if err := insertMatch(ctx, tx, m); err != nil {
			return nil, err
		}
		report.Imported++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit legacy import: %w", err)
	}
	log.Info("Imported legacy matches", "imported", report.Imported, "skipped", len(report.Skipped))
	return report, nil
}

type refResolver struct {
	ids       map[string]bool
	nicknames map[string]string
}

func (r refResolver) resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if r.ids[ref] {
		return ref, true
	}
	id, ok := r.nicknames[strings.ToLower(ref)]
	return id, ok
}

func (s *store) loadResolver(ctx context.Context) (refResolver, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, nickname FROM players`)
	if err != nil {
		return refResolver{}, err
	}
	defer rows.Close()

	r := refResolver{ids: map[string]bool{}, nicknames: map[string]string{}}
	for rows.Next() {
		var id, nickname string
		if err := rows.Scan(&id, &nickname); err != nil {
			return refResolver{}, err
		}
		r.ids[id] = true
		r.nicknames[strings.ToLower(nickname)] = id
	}
	return r, rows.Err()
}
