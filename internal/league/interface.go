package league

import "context"

// Reader is the read-only snapshot the ranking views are computed from.
type Reader interface {
	ListPlayers(ctx context.Context, filter PlayerFilter) ([]Player, error)
	ListMatches(ctx context.Context, filter MatchFilter) ([]Match, error)
}

// Store defines the interface for interacting with the league's data.
type Store interface {
	Reader
	GetPlayer(ctx context.Context, id string) (*Player, error)
	GetPlayerByNickname(ctx context.Context, nickname string) (*Player, error)
	RegisterPlayer(ctx context.Context, p NewPlayer) (*Player, error)
	UpdatePlayer(ctx context.Context, id string, update PlayerUpdate) (*Player, error)
	SetPlayerActive(ctx context.Context, id string, active bool) (*Player, error)
	RecordMatch(ctx context.Context, m NewMatch) (*Match, error)
	ImportLegacyMatches(ctx context.Context, matches []LegacyMatch) (*ImportReport, error)

	UpsertMonthlyWinner(ctx context.Context, w MonthlyWinner) error
	ListMonthlyWinners(ctx context.Context, year int) ([]MonthlyWinner, error)
	UpsertStatistic(ctx context.Context, s Statistic) error
	GetStatistic(ctx context.Context, statType string) (*Statistic, error)
}
