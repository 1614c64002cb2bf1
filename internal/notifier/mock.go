package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMonthlyWinnerCalls []league.MonthlyWinner
	SendStreakRecordCalls  []ranking.StreakHolder
	SendRankingCalls       []struct {
		Title   string
		Entries []ranking.Entry
	}

	// Spies
	SendMonthlyWinnerFunc         func(winner league.MonthlyWinner, dryRun bool) error
	SendStreakRecordFunc          func(holder ranking.StreakHolder, dryRun bool) error
	FormatRankingResponseFunc     func(title string, entries []ranking.Entry) (any, error)
	FormatPerformanceResponseFunc func(entries []ranking.PerformanceEntry) (any, error)

	// Call records for format functions
	LastRankingResponse     any
	LastPerformanceResponse any
	LastUsageResponse       any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMonthlyWinnerCalls = nil
	m.SendStreakRecordCalls = nil
	m.SendRankingCalls = nil
	m.LastRankingResponse = nil
	m.LastPerformanceResponse = nil
	m.LastUsageResponse = nil
}

func (m *Mock) SendMonthlyWinner(_ context.Context, winner league.MonthlyWinner, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMonthlyWinnerCalls = append(m.SendMonthlyWinnerCalls, winner)
	if m.SendMonthlyWinnerFunc != nil {
		return m.SendMonthlyWinnerFunc(winner, dryRun)
	}
	return nil
}

func (m *Mock) SendStreakRecord(_ context.Context, holder ranking.StreakHolder, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStreakRecordCalls = append(m.SendStreakRecordCalls, holder)
	if m.SendStreakRecordFunc != nil {
		return m.SendStreakRecordFunc(holder, dryRun)
	}
	return nil
}

func (m *Mock) SendRanking(_ context.Context, title string, entries []ranking.Entry, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRankingCalls = append(m.SendRankingCalls, struct {
		Title   string
		Entries []ranking.Entry
	}{title, entries})
	return nil
}

func (m *Mock) FormatRankingResponse(title string, entries []ranking.Entry) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatRankingResponseFunc != nil {
		resp, err := m.FormatRankingResponseFunc(title, entries)
		m.LastRankingResponse = resp
		return resp, err
	}
	m.LastRankingResponse = "formatted_ranking"
	return "formatted_ranking", nil
}

func (m *Mock) FormatPerformanceResponse(entries []ranking.PerformanceEntry) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPerformanceResponseFunc != nil {
		resp, err := m.FormatPerformanceResponseFunc(entries)
		m.LastPerformanceResponse = resp
		return resp, err
	}
	m.LastPerformanceResponse = "formatted_performance"
	return "formatted_performance", nil
}

func (m *Mock) FormatUsageResponse(text string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastUsageResponse = text
	return text, nil
}
