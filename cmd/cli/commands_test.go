package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/maintenance"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ranking/global", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]ranking.Entry{
			{Player: league.Player{Nickname: "Ana", Rank: league.RankCabo}, Wins: 2, MatchesPlayed: 3, WinRate: 66.7},
			{Player: league.Player{Nickname: "Bia", Rank: league.RankRecruta}, Wins: 1, MatchesPlayed: 3, WinRate: 33.3},
		})
	})
	mux.HandleFunc("GET /api/ranking/mensal/{year}/{month}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid period: month 13 is outside 1..12"}`))
	})
	mux.HandleFunc("GET /api/ranking/streak", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null\n"))
	})
	mux.HandleFunc("POST /api/maintenance/run", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("dry_run"))
		json.NewEncoder(w).Encode(maintenance.Report{
			Period:        "2024-03",
			DryRun:        true,
			MonthlyWinner: &league.MonthlyWinner{PlayerNickname: "Ana", Wins: 2, MatchesPlayed: 3},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--host", srv.URL))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRankingGlobalCommand(t *testing.T) {
	out, err := run(t, fakeServer(t), "ranking", "global")
	require.NoError(t, err)
	assert.Contains(t, out, "Global Ranking")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "66.7%")
}

func TestRankingMonthlyCommand_SurfacesAPIError(t *testing.T) {
	_, err := run(t, fakeServer(t), "ranking", "monthly", "2024", "13")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "month 13")
}

func TestRankingStreakCommand_NoHolder(t *testing.T) {
	out, err := run(t, fakeServer(t), "ranking", "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "Nobody has won a match yet.")
}

func TestMaintenanceRunCommand(t *testing.T) {
	out, err := run(t, fakeServer(t), "maintenance", "run", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Maintenance 2024-03 (dry run)")
	assert.Contains(t, out, "Monthly winner: Ana with 2 wins in 3 matches")
}

func TestRenderRanking_Empty(t *testing.T) {
	out := renderRanking("Ranking 05/2024", []ranking.Entry{})
	assert.Contains(t, out, "No matches in this period.")
}
