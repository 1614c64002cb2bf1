package league

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new league Store.
func New(db *sql.DB) Store {
	return &store{
		db:  db,
		now: time.Now,
	}
}

const playerColumns = `id, name, nickname, rank, active, registered_at, notes`

func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var rank string
	var registeredAt int64
	if err := scanner.Scan(&p.ID, &p.Name, &p.Nickname, &rank, &p.Active, &registeredAt, &p.Notes); err != nil {
		return nil, err
	}
	p.Rank = Rank(rank)
	p.RegisteredAt = time.Unix(registeredAt, 0).UTC()
	return &p, nil
}

// ListPlayers returns players ordered by nickname.
func (s *store) ListPlayers(ctx context.Context, filter PlayerFilter) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + playerColumns + ` FROM players`
	if filter.ActiveOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY nickname COLLATE NOCASE`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) GetPlayer(ctx context.Context, id string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayer(ctx, s.db, `WHERE id = ?`, id)
}

// GetPlayerByNickname looks a player up by nickname, ignoring case.
func (s *store) GetPlayerByNickname(ctx context.Context, nickname string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayer(ctx, s.db, `WHERE nickname = ? COLLATE NOCASE`, strings.TrimSpace(nickname))
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *store) getPlayer(ctx context.Context, q queryRower, where string, arg string) (*Player, error) {
	p, err := scanPlayer(q.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return p, nil
}

// RegisterPlayer creates an active player at the lowest rank.
func (s *store) RegisterPlayer(ctx context.Context, np NewPlayer) (*Player, error) {
	name := strings.TrimSpace(np.Name)
	nickname := strings.TrimSpace(np.Nickname)
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", ErrInvalidPlayer)
	}
	if name == "" {
		name = nickname
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM players WHERE nickname = ? COLLATE NOCASE)", nickname).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check nickname: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrNicknameTaken, nickname)
	}

	p := &Player{
		ID:           uuid.New().String(),
		Name:         name,
		Nickname:     nickname,
		Rank:         LowestRank,
		Active:       true,
		RegisteredAt: s.now().UTC().Truncate(time.Second),
		Notes:        strings.TrimSpace(np.Notes),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Nickname, string(p.Rank), p.Active, p.RegisteredAt.Unix(), p.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	log.Info("Registered new player", "playerID", p.ID, "nickname", p.Nickname)
	return p, nil
}

// UpdatePlayer edits name, notes and rank. The nickname is immutable.
func (s *store) UpdatePlayer(ctx context.Context, id string, update PlayerUpdate) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := s.getPlayer(ctx, tx, `WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidPlayer)
		}
		p.Name = name
	}
	if update.Rank != nil {
		rank, ok := ParseRank(string(*update.Rank))
		if !ok {
			return nil, fmt.Errorf("%w: unknown rank %q", ErrInvalidPlayer, *update.Rank)
		}
		if rank != p.Rank {
			log.Info("Changing player rank", "playerID", p.ID, "from", p.Rank, "to", rank)
		}
		p.Rank = rank
	}
	if update.Notes != nil {
		p.Notes = strings.TrimSpace(*update.Notes)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE players SET name = ?, rank = ?, notes = ? WHERE id = ?`, p.Name, string(p.Rank), p.Notes, p.ID); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// SetPlayerActive toggles the soft status flag. Players are never deleted.
func (s *store) SetPlayerActive(ctx context.Context, id string, active bool) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE players SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update player status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	log.Info("Updated player status", "playerID", id, "active", active)
	return s.getPlayer(ctx, s.db, `WHERE id = ?`, id)
}

// ListMatches returns matches in chronological order: date, then recording time.
func (s *store) ListMatches(ctx context.Context, filter MatchFilter) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		where []string
		args  []any
	)
	if !filter.DateFrom.IsZero() {
		where = append(where, "m.match_date >= ?")
		args = append(args, filter.DateFrom.Format(DateLayout))
	}
	if !filter.DateTo.IsZero() {
		where = append(where, "m.match_date <= ?")
		args = append(args, filter.DateTo.Format(DateLayout))
	}
	query := `
		SELECT m.id, m.match_date, m.match_type, m.winner_id, m.notes, m.created_at, p.player_id
		FROM matches m
		LEFT JOIN match_participants p ON p.match_id = m.id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY m.match_date, m.created_at, m.id, p.position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []Match{}
	var current string
	skip := false
	for rows.Next() {
		var (
			m           Match
			date        string
			createdAt   int64
			participant sql.NullString
		)
		if err := rows.Scan(&m.ID, &date, &m.Type, &m.WinnerID, &m.Notes, &createdAt, &participant); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		// One row per participant; rows of a match are contiguous.
		if m.ID != current {
			current = m.ID
			m.Date, err = time.Parse(DateLayout, date)
			skip = err != nil
			if skip {
				log.Error("Failed to parse match date", "error", err, "matchID", m.ID, "date", date)
				continue
			}
			m.CreatedAt = time.Unix(createdAt, 0).UTC()
			m.ParticipantIDs = []string{}
			matches = append(matches, m)
		}
		if participant.Valid && !skip {
			last := &matches[len(matches)-1]
			last.ParticipantIDs = append(last.ParticipantIDs, participant.String)
		}
	}
	return matches, rows.Err()
}

// RecordMatch validates and appends a match to the log.
func (s *store) RecordMatch(ctx context.Context, nm NewMatch) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := s.validateMatch(ctx, tx, nm)
	if err != nil {
		return nil, err
	}
	if err := insertMatch(ctx, tx, m); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}
	log.Info("Recorded match", "matchID", m.ID, "date", m.Date.Format(DateLayout), "winnerID", m.WinnerID, "participants", len(m.ParticipantIDs))
	return m, nil
}

func (s *store) validateMatch(ctx context.Context, q queryRower, nm NewMatch) (*Match, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(nm.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as %s", ErrInvalidMatch, DateLayout)
	}
	matchType := nm.Type
	if matchType == "" {
		matchType = MatchTypeGlobal
	}
	if !matchType.Valid() {
		return nil, fmt.Errorf("%w: unknown match type %q", ErrInvalidMatch, nm.Type)
	}

	participants := dedupe(nm.ParticipantIDs)
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", ErrInvalidMatch)
	}
	winnerIn := false
	for _, id := range participants {
		if id == nm.WinnerID {
			winnerIn = true
			break
		}
	}
	if !winnerIn {
		return nil, fmt.Errorf("%w: winner must be one of the participants", ErrInvalidMatch)
	}
	for _, id := range participants {
		var exists bool
		if err := q.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check participant: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidMatch, ErrPlayerNotFound, id)
		}
	}

	return &Match{
		ID:             uuid.New().String(),
		Date:           date,
		Type:           matchType,
		WinnerID:       nm.WinnerID,
		ParticipantIDs: participants,
		Notes:          strings.TrimSpace(nm.Notes),
		CreatedAt:      s.now().UTC().Truncate(time.Second),
	}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertMatch(ctx context.Context, tx execer, m *Match) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO matches (id, match_date, match_type, winner_id, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Date.Format(DateLayout), string(m.Type), m.WinnerID, m.Notes, m.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	for i, id := range m.ParticipantIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO match_participants (match_id, player_id, position) VALUES (?, ?, ?)`, m.ID, id, i); err != nil {
			return fmt.Errorf("failed to insert participant %s: %w", id, err)
		}
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
