package cache

import (
	"context"
	"sync"
)

var _ Cache = (*Mock)(nil)

// Mock is an in-memory Cache for testing. It is safe for concurrent use.
type Mock struct {
	mu         sync.Mutex
	entries    map[string][]byte
	generation int64

	// Spies
	GetFunc        func(key string) ([]byte, bool, error)
	InvalidateFunc func() error

	// Call records
	SetCalls        []string
	InvalidateCalls int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{entries: make(map[string][]byte)}
}

// Reset clears entries and call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]byte)
	m.generation = 0
	m.SetCalls = nil
	m.InvalidateCalls = 0
}

func (m *Mock) Generation(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation, nil
}

func (m *Mock) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(key)
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *Mock) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, key)
	m.entries[key] = value
	return nil
}

func (m *Mock) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidateCalls++
	if m.InvalidateFunc != nil {
		if err := m.InvalidateFunc(); err != nil {
			return err
		}
	}
	m.generation++
	m.entries = make(map[string][]byte)
	return nil
}

// Len returns the number of cached entries.
func (m *Mock) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
