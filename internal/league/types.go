package league

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"
)

// DateLayout is the wire and storage format of a match date.
const DateLayout = "2006-01-02"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrNicknameTaken  = errors.New("nickname already taken")
	ErrInvalidPlayer  = errors.New("invalid player")
	ErrInvalidMatch   = errors.New("invalid match")
)

// store handles all database operations for the league.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Rank is the in-game "patente" of a player. Display only.
type Rank string

const (
	RankRecruta  Rank = "recruta"
	RankSoldado  Rank = "soldado"
	RankCabo     Rank = "cabo"
	RankSargento Rank = "sargento"
	RankTenente  Rank = "tenente"
	RankCapitao  Rank = "capitao"
	RankCoronel  Rank = "coronel"
	RankMarechal Rank = "marechal"
)

// Ranks lists every rank from lowest to highest.
var Ranks = []Rank{
	RankRecruta,
	RankSoldado,
	RankCabo,
	RankSargento,
	RankTenente,
	RankCapitao,
	RankCoronel,
	RankMarechal,
}

// LowestRank is assigned to every newly registered player.
const LowestRank = RankRecruta

// Level returns the 1-based position of the rank, or 0 if unknown.
func (r Rank) Level() int {
	for i, rank := range Ranks {
		if rank == r {
			return i + 1
		}
	}
	return 0
}

func (r Rank) Valid() bool { return r.Level() > 0 }

// ParseRank accepts a rank name in any case.
func ParseRank(s string) (Rank, bool) {
	r := Rank(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// MatchType classifies a match.
type MatchType string

const (
	MatchTypeGlobal       MatchType = "global"
	MatchTypeChampionship MatchType = "championship"
	MatchTypeFriendly     MatchType = "friendly"
	MatchTypeElimination  MatchType = "elimination"
)

var MatchTypes = []MatchType{MatchTypeGlobal, MatchTypeChampionship, MatchTypeFriendly, MatchTypeElimination}

func (t MatchType) Valid() bool {
	for _, mt := range MatchTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// Player is a registered league member.
type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Nickname     string    `json:"nickname"`
	Rank         Rank      `json:"rank"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
	Notes        string    `json:"notes"`
}

// NewPlayer is the input for registering a player.
type NewPlayer struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Notes    string `json:"notes"`
}

// PlayerUpdate holds the editable fields of a player. Nil fields are left untouched.
type PlayerUpdate struct {
	Name  *string `json:"name,omitempty"`
	Rank  *Rank   `json:"rank,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// Match is a recorded, immutable match result. Players are referenced by id.
type Match struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Type           MatchType `json:"type"`
	WinnerID       string    `json:"winner_id"`
	ParticipantIDs []string  `json:"participant_ids"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// Involves reports whether the player took part in the match. The winner always does.
func (m Match) Involves(playerID string) bool {
	if m.WinnerID == playerID {
		return true
	}
	for _, id := range m.ParticipantIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// NewMatch is the input for recording a match. Date uses DateLayout.
type NewMatch struct {
	Date           string    `json:"date"`
	Type           MatchType `json:"type"`
	WinnerID       string    `json:"winner_id"`
	ParticipantIDs []string  `json:"participant_ids"`
	Notes          string    `json:"notes"`
}

// PlayerFilter narrows ListPlayers.
type PlayerFilter struct {
	ActiveOnly bool
}

// MatchFilter narrows ListMatches to an inclusive date window. Zero values are open ends.
type MatchFilter struct {
	DateFrom time.Time
	DateTo   time.Time
}

// AnnualSummaryMonth is the month sentinel of a yearly MonthlyWinner row.
const AnnualSummaryMonth = 0

// MonthlyWinner is a materialized snapshot of a month's (or year's) top player.
type MonthlyWinner struct {
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	PlayerID       string    `json:"player_id"`
	PlayerNickname string    `json:"player_nickname"`
	Wins           int       `json:"wins"`
	MatchesPlayed  int       `json:"matches_played"`
	Rank           Rank      `json:"rank"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// StatisticConsecutiveWins is the statistic type of the all-time win streak record.
const StatisticConsecutiveWins = "consecutive-win-record"

// Statistic is a materialized, free-form league record.
type Statistic struct {
	Type      string          `json:"type"`
	Value     json.RawMessage `json:"value"`
	PlayerID  string          `json:"player_id,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LegacyMatch is a historical match whose players may be referenced by nickname or id.
type LegacyMatch struct {
	Date         string    `json:"date"`
	Type         MatchType `json:"type"`
	Winner       string    `json:"winner"`
	Participants []string  `json:"participants"`
	Notes        string    `json:"notes"`
}

// ImportReport is the audit trail of ImportLegacyMatches.
type ImportReport struct {
	Imported int             `json:"imported"`
	Skipped  []SkippedImport `json:"skipped"`
}

// SkippedImport explains why a legacy match was not imported.
type SkippedImport struct {
	Index      int      `json:"index"`
	Reason     string   `json:"reason"`
	Unresolved []string `json:"unresolved,omitempty"`
}
