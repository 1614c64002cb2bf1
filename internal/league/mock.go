package league

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ListPlayersFunc         func(filter PlayerFilter) ([]Player, error)
	ListMatchesFunc         func(filter MatchFilter) ([]Match, error)
	GetPlayerFunc           func(id string) (*Player, error)
	GetPlayerByNicknameFunc func(nickname string) (*Player, error)
	RegisterPlayerFunc      func(p NewPlayer) (*Player, error)
	UpdatePlayerFunc        func(id string, update PlayerUpdate) (*Player, error)
	SetPlayerActiveFunc     func(id string, active bool) (*Player, error)
	RecordMatchFunc         func(m NewMatch) (*Match, error)
	ImportLegacyMatchesFunc func(matches []LegacyMatch) (*ImportReport, error)
	UpsertMonthlyWinnerFunc func(w MonthlyWinner) error
	ListMonthlyWinnersFunc  func(year int) ([]MonthlyWinner, error)
	UpsertStatisticFunc     func(s Statistic) error
	GetStatisticFunc        func(statType string) (*Statistic, error)

	// Call records
	ListMatchesCalls         []MatchFilter
	RecordMatchCalls         []NewMatch
	RegisterPlayerCalls      []NewPlayer
	UpsertMonthlyWinnerCalls []MonthlyWinner
	UpsertStatisticCalls     []Statistic
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

var _ Store = (*MockStore)(nil)

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListMatchesCalls = nil
	m.RecordMatchCalls = nil
	m.RegisterPlayerCalls = nil
	m.UpsertMonthlyWinnerCalls = nil
	m.UpsertStatisticCalls = nil
}

func (m *MockStore) ListPlayers(ctx context.Context, filter PlayerFilter) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(filter)
	}
	return []Player{}, nil
}

func (m *MockStore) ListMatches(ctx context.Context, filter MatchFilter) ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListMatchesCalls = append(m.ListMatchesCalls, filter)
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(filter)
	}
	return []Match{}, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, id string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(id)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) GetPlayerByNickname(ctx context.Context, nickname string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerByNicknameFunc != nil {
		return m.GetPlayerByNicknameFunc(nickname)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) RegisterPlayer(ctx context.Context, p NewPlayer) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterPlayerCalls = append(m.RegisterPlayerCalls, p)
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(p)
	}
	return &Player{Nickname: p.Nickname, Name: p.Name, Rank: LowestRank, Active: true}, nil
}

func (m *MockStore) UpdatePlayer(ctx context.Context, id string, update PlayerUpdate) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(id, update)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) SetPlayerActive(ctx context.Context, id string, active bool) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetPlayerActiveFunc != nil {
		return m.SetPlayerActiveFunc(id, active)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) RecordMatch(ctx context.Context, nm NewMatch) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordMatchCalls = append(m.RecordMatchCalls, nm)
	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(nm)
	}
	return &Match{WinnerID: nm.WinnerID, ParticipantIDs: nm.ParticipantIDs, Type: nm.Type}, nil
}

func (m *MockStore) ImportLegacyMatches(ctx context.Context, matches []LegacyMatch) (*ImportReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ImportLegacyMatchesFunc != nil {
		return m.ImportLegacyMatchesFunc(matches)
	}
	return &ImportReport{Imported: len(matches), Skipped: []SkippedImport{}}, nil
}

func (m *MockStore) UpsertMonthlyWinner(ctx context.Context, w MonthlyWinner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMonthlyWinnerCalls = append(m.UpsertMonthlyWinnerCalls, w)
	if m.UpsertMonthlyWinnerFunc != nil {
		return m.UpsertMonthlyWinnerFunc(w)
	}
	return nil
}

func (m *MockStore) ListMonthlyWinners(ctx context.Context, year int) ([]MonthlyWinner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListMonthlyWinnersFunc != nil {
		return m.ListMonthlyWinnersFunc(year)
	}
	return []MonthlyWinner{}, nil
}

func (m *MockStore) UpsertStatistic(ctx context.Context, s Statistic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertStatisticCalls = append(m.UpsertStatisticCalls, s)
	if m.UpsertStatisticFunc != nil {
		return m.UpsertStatisticFunc(s)
	}
	return nil
}

func (m *MockStore) GetStatistic(ctx context.Context, statType string) (*Statistic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetStatisticFunc != nil {
		return m.GetStatisticFunc(statType)
	}
	return nil, nil
}
