package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	maintenanceRuns      int
	maintenanceFailures  int
	maintenanceDurations []float64
	matchesRecorded      int
	rankingRequests      map[string]int
	requestDurations     map[string][]float64
	cacheHits            int
	cacheMisses          int
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		maintenanceDurations: make([]float64, 0),
		rankingRequests:      make(map[string]int),
		requestDurations:     make(map[string][]float64),
	}
}

func (m *Mock) IncMaintenanceRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maintenanceRuns++
}

func (m *Mock) IncMaintenanceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maintenanceFailures++
}

func (m *Mock) ObserveMaintenanceDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maintenanceDurations = append(m.maintenanceDurations, duration)
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncRankingRequests(view string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingRequests[view]++
}

func (m *Mock) ObserveRequestDuration(route string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestDurations[route] = append(m.requestDurations[route], duration)
}

func (m *Mock) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *Mock) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MaintenanceRuns returns the number of times IncMaintenanceRuns was called.
func (m *Mock) MaintenanceRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maintenanceRuns
}

// MaintenanceFailures returns the number of times IncMaintenanceFailures was called.
func (m *Mock) MaintenanceFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maintenanceFailures
}

// MaintenanceDurations returns every observed maintenance duration.
func (m *Mock) MaintenanceDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.maintenanceDurations...)
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// RankingRequests returns how often the view was counted.
func (m *Mock) RankingRequests(view string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rankingRequests[view]
}

// RequestDurations returns the durations observed for the route.
func (m *Mock) RequestDurations(route string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.requestDurations[route]...)
}

// CacheHits returns the number of times IncCacheHits was called.
func (m *Mock) CacheHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits
}

// CacheMisses returns the number of times IncCacheMisses was called.
func (m *Mock) CacheMisses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheMisses
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
