package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/maintenance"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
	"github.com/spf13/cobra"
)

var (
	minMatches    int
	attendanceTop int
	activeOnly    bool
	dryRun        bool
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(maintenanceCmd)

	rankingCmd.AddCommand(rankingGlobalCmd, rankingMonthlyCmd, rankingPerformanceCmd, rankingAttendanceCmd, rankingStreakCmd)
	rankingPerformanceCmd.Flags().IntVar(&minMatches, "min", ranking.DefaultMinMatches, "Minimum matches played to be ranked")
	rankingAttendanceCmd.Flags().IntVar(&attendanceTop, "top", ranking.DefaultAttendanceTop, "Number of players to list")
	playersCmd.Flags().BoolVar(&activeOnly, "active", false, "Only list active players")

	maintenanceCmd.AddCommand(maintenanceRunCmd)
	maintenanceRunCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the snapshots without storing or announcing them")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/metrics")
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show league rankings",
}

var rankingGlobalCmd = &cobra.Command{
	Use:   "global",
	Short: "All-time ranking by wins",
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []ranking.Entry
		if err := getJSON("/api/ranking/global", &entries); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderRanking("Global Ranking", entries))
		return nil
	},
}

var rankingMonthlyCmd = &cobra.Command{
	Use:   "monthly YEAR MONTH",
	Short: "Ranking of one calendar month",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid month %q", args[1])
		}
		var entries []ranking.Entry
		if err := getJSON(fmt.Sprintf("/api/ranking/mensal/%d/%d", year, month), &entries); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderRanking(fmt.Sprintf("Ranking %02d/%d", month, year), entries))
		return nil
	},
}

var rankingPerformanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Ranking by win rate among regular players",
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []ranking.PerformanceEntry
		if err := getJSON(fmt.Sprintf("/api/ranking/performance?min=%d", minMatches), &entries); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderPerformance(entries))
		return nil
	},
}

var rankingAttendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Most active players",
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []ranking.AttendanceEntry
		if err := getJSON(fmt.Sprintf("/api/ranking/attendance?top=%d", attendanceTop), &entries); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderAttendance(entries))
		return nil
	},
}

var rankingStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Holder of the consecutive win record",
	RunE: func(cmd *cobra.Command, args []string) error {
		var holder *ranking.StreakHolder
		if err := getJSON("/api/ranking/streak", &holder); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderStreak(holder))
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/players"
		if activeOnly {
			endpoint += "?active=true"
		}
		var players []league.Player
		if err := getJSON(endpoint, &players); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderPlayers(players))
		return nil
	},
}

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Materialize monthly winners and records",
}

var maintenanceRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Snapshot the previous month, the year when it closed, and the streak record",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/maintenance/run"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		resp, err := httpClient.Post(host+endpoint, "application/json", nil)
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()

		var report maintenance.Report
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			return fmt.Errorf("failed to decode report (status %d): %w", resp.StatusCode, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("maintenance finished with %d error(s)", len(report.Errors))
		}
		return nil
	},
}

func performRequest(cmd *cobra.Command, method, endpoint string) error {
	url := host + endpoint
	fmt.Fprintf(cmd.OutOrStdout(), "Making request to %s\n", url)

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(cmd.OutOrStdout(), "Response Body:")
	fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return nil
}

// getJSON decodes a 200 response into out. Other statuses surface the API error message.
func getJSON(endpoint string, out any) error {
	resp, err := httpClient.Get(host + endpoint)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s returned %d: %s", endpoint, resp.StatusCode, apiErr.Error)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
