package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/maintenance"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8A33D"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func withTitle(title, body string) string {
	return titleStyle.Render(title) + "\n" + body
}

func renderRanking(title string, entries []ranking.Entry) string {
	if len(entries) == 0 {
		return withTitle(title, dimStyle.Render("No matches in this period."))
	}
	t := newTable("#", "Player", "Rank", "Wins", "Matches", "Win rate")
	for i, e := range entries {
		t.Row(strconv.Itoa(i+1), e.Player.Nickname, string(e.Player.Rank), strconv.Itoa(e.Wins), strconv.Itoa(e.MatchesPlayed), percent(e.WinRate))
	}
	return withTitle(title, t.String())
}

func renderPerformance(entries []ranking.PerformanceEntry) string {
	const title = "Performance"
	if len(entries) == 0 {
		return withTitle(title, dimStyle.Render("Nobody has played enough matches yet."))
	}
	t := newTable("#", "Player", "Level", "Wins", "Matches", "Performance")
	for i, e := range entries {
		t.Row(strconv.Itoa(i+1), e.Player.Nickname, string(e.Level), strconv.Itoa(e.Wins), strconv.Itoa(e.MatchesPlayed), percent(e.PerformancePercent))
	}
	return withTitle(title, t.String())
}

func renderAttendance(entries []ranking.AttendanceEntry) string {
	const title = "Attendance"
	if len(entries) == 0 {
		return withTitle(title, dimStyle.Render("No matches recorded."))
	}
	t := newTable("#", "Player", "Matches")
	for i, e := range entries {
		t.Row(strconv.Itoa(i+1), e.Player.Nickname, strconv.Itoa(e.MatchesPlayed))
	}
	return withTitle(title, t.String())
}

func renderStreak(holder *ranking.StreakHolder) string {
	const title = "Consecutive win record"
	if holder == nil {
		return withTitle(title, dimStyle.Render("Nobody has won a match yet."))
	}
	return withTitle(title, fmt.Sprintf("%s with %d wins in a row", holder.Player.Nickname, holder.Streak))
}

func renderPlayers(players []league.Player) string {
	t := newTable("Nickname", "Name", "Rank", "Active", "Registered")
	for _, p := range players {
		active := "yes"
		if !p.Active {
			active = "no"
		}
		t.Row(p.Nickname, p.Name, string(p.Rank), active, p.RegisteredAt.Format(league.DateLayout))
	}
	return withTitle(fmt.Sprintf("Players (%d)", len(players)), t.String())
}

func renderReport(report maintenance.Report) string {
	var b strings.Builder
	title := "Maintenance " + report.Period
	if report.DryRun {
		title += " (dry run)"
	}
	if w := report.MonthlyWinner; w != nil {
		fmt.Fprintf(&b, "Monthly winner: %s with %d wins in %d matches\n", w.PlayerNickname, w.Wins, w.MatchesPlayed)
	} else {
		b.WriteString(dimStyle.Render("No matches last month.") + "\n")
	}
	if w := report.AnnualWinner; w != nil {
		fmt.Fprintf(&b, "Champion of %d: %s with %d wins\n", w.Year, w.PlayerNickname, w.Wins)
	}
	if r := report.StreakRecord; r != nil {
		fmt.Fprintf(&b, "Streak record: %s, %d in a row", r.Nickname, r.Streak)
		if report.NewStreakRecord {
			b.WriteString(" (new)")
		}
		b.WriteString("\n")
	}
	for _, e := range report.Errors {
		fmt.Fprintf(&b, "error: %s\n", e)
	}
	return withTitle(title, strings.TrimRight(b.String(), "\n"))
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
