package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/notifier"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// maxRankingRows caps how many rows a ranking message shows.
const maxRankingRows = 10

var monthNames = [...]string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMonthlyWinner(ctx context.Context, winner league.MonthlyWinner, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatMonthlyWinner(winner), dryRun)
	return err
}

func (s *Notifier) SendStreakRecord(ctx context.Context, holder ranking.StreakHolder, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatStreakRecord(holder), dryRun)
	return err
}

func (s *Notifier) SendRanking(ctx context.Context, title string, entries []ranking.Entry, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatRanking(title, entries), dryRun)
	return err
}

// FormatRankingResponse formats a ranking message for a slash command response.
func (s *Notifier) FormatRankingResponse(title string, entries []ranking.Entry) (any, error) {
	return s.formatRanking(title, entries), nil
}

// FormatPerformanceResponse formats the performance ranking for a slash command response.
func (s *Notifier) FormatPerformanceResponse(entries []ranking.PerformanceEntry) (any, error) {
	return s.formatPerformance(entries), nil
}

// FormatUsageResponse wraps a help or error text for a slash command response.
func (s *Notifier) FormatUsageResponse(text string) (any, error) {
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	), nil
}

// formatMonthlyWinner announces a materialized monthly (or annual) winner.
func (s *Notifier) formatMonthlyWinner(winner league.MonthlyWinner) slack.Message {
	title := fmt.Sprintf(":trophy: Winner of %s %d :trophy:", monthName(winner.Month), winner.Year)
	if winner.Month == league.AnnualSummaryMonth {
		title = fmt.Sprintf(":crown: Champion of %d :crown:", winner.Year)
	}

	text := fmt.Sprintf("*%s* (%s) conquered the world with *%d* wins in %d matches (%.1f%%).",
		winner.PlayerNickname,
		winner.Rank,
		winner.Wins,
		winner.MatchesPlayed,
		ranking.Rate(winner.Wins, winner.MatchesPlayed),
	)

	return slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

// formatStreakRecord announces the consecutive win record holder.
func (s *Notifier) formatStreakRecord(holder ranking.StreakHolder) slack.Message {
	text := fmt.Sprintf(":fire: *%s* holds the record with *%d* consecutive wins.", holder.Player.Nickname, holder.Streak)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

// formatRanking creates the Slack message for a wins-based ranking using Block Kit.
func (s *Notifier) formatRanking(title string, entries []ranking.Entry) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf(":trophy: %s :trophy:", title), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches recorded yet. Go conquer some territories!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, entry := range entries {
		if i == maxRankingRows {
			break
		}
		playerText := fmt.Sprintf("%d. %s *%s* _%s_\n> Wins: %d | Matches: %d | Win rate: %.1f%%",
			i+1,
			medal(i+1),
			entry.Player.Nickname,
			entry.Player.Rank,
			entry.Wins,
			entry.MatchesPlayed,
			entry.WinRate,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPerformance creates the Slack message for the performance ranking.
func (s *Notifier) formatPerformance(entries []ranking.PerformanceEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", ":chart_with_upwards_trend: Performance Ranking", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Nobody has played enough matches yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, entry := range entries {
		if i == maxRankingRows {
			break
		}
		playerText := fmt.Sprintf("%d. %s *%s*\n> *%s* | %.1f%% (%d/%d)",
			i+1,
			medal(i+1),
			entry.Player.Nickname,
			entry.Level,
			entry.PerformancePercent,
			entry.Wins,
			entry.MatchesPlayed,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func medal(position int) string {
	switch position {
	case 1:
		return ":first_place_medal:"
	case 2:
		return ":second_place_medal:"
	case 3:
		return ":third_place_medal:"
	}
	return ""
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return "the year"
	}
	return monthNames[month]
}
