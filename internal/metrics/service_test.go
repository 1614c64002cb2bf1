package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncMaintenanceRuns()
	s.IncMatchesRecorded()
	s.IncMatchesRecorded()
	s.IncRankingRequests("global")
	s.ObserveRequestDuration("GET /api/ranking/global", 0.01)

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "war_matches_recorded_total 2")
	assert.Contains(t, body, "war_maintenance_runs_total 1")
	assert.Contains(t, body, `war_ranking_requests_total{view="global"} 1`)
}

func TestMockRecords(t *testing.T) {
	m := NewMock()
	m.IncRankingRequests("monthly")
	m.IncRankingRequests("monthly")
	m.ObserveMaintenanceDuration(1.5)
	m.IncCacheHits()

	assert.Equal(t, 2, m.RankingRequests("monthly"))
	assert.Equal(t, []float64{1.5}, m.MaintenanceDurations())
	assert.Equal(t, 1, m.CacheHits())
	assert.Zero(t, m.CacheMisses())
}
