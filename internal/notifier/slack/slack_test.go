package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func entry(nickname string, wins, played int) ranking.Entry {
	return ranking.Entry{
		Player:        league.Player{ID: nickname, Nickname: nickname, Rank: league.RankCabo},
		Wins:          wins,
		MatchesPlayed: played,
		WinRate:       ranking.Rate(wins, played),
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(context.Background(), message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "posting is bounded by a timeout")
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendRanking(context.Background(), "Global Ranking", nil, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendMonthlyWinner_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := notifier.SendMonthlyWinner(context.Background(), league.MonthlyWinner{Year: 2024, Month: 3, PlayerNickname: "general"}, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendMonthlyWinner")
}

func TestFormatMonthlyWinner(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	msg := client.formatMonthlyWinner(league.MonthlyWinner{
		Year: 2024, Month: 3, PlayerNickname: "general", Rank: league.RankCapitao, Wins: 4, MatchesPlayed: 6,
	})
	require.Len(t, msg.Blocks.BlockSet, 2)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, ":trophy: Winner of March 2024 :trophy:", header.Text.Text)
	assert.True(t, *header.Text.Emoji)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*general* (capitao) conquered the world with *4* wins in 6 matches (66.7%).", section.Text.Text)

	t.Run("annual summary", func(t *testing.T) {
		msg := client.formatMonthlyWinner(league.MonthlyWinner{Year: 2024, Month: league.AnnualSummaryMonth, PlayerNickname: "general"})
		header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		assert.Equal(t, ":crown: Champion of 2024 :crown:", header.Text.Text)
	})
}

func TestFormatRanking(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("displays ranking rows with medals", func(t *testing.T) {
		msg := client.formatRanking("Global Ranking", []ranking.Entry{entry("ana", 3, 4), entry("bia", 1, 3)})
		require.Len(t, msg.Blocks.BlockSet, 3)

		header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		assert.Equal(t, ":trophy: Global Ranking :trophy:", header.Text.Text)

		first := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "1. :first_place_medal: *ana* _cabo_\n> Wins: 3 | Matches: 4 | Win rate: 75.0%", first.Text.Text)
		second := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		assert.Contains(t, second.Text.Text, ":second_place_medal: *bia*")
	})

	t.Run("empty ranking", func(t *testing.T) {
		msg := client.formatRanking("Global Ranking", nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Contains(t, section.Text.Text, "No matches recorded yet")
	})

	t.Run("long rankings are capped", func(t *testing.T) {
		entries := make([]ranking.Entry, 15)
		for i := range entries {
			entries[i] = entry("p", 1, 1)
		}
		msg := client.formatRanking("Global Ranking", entries)
		assert.Len(t, msg.Blocks.BlockSet, maxRankingRows+1)
	})
}

func TestFormatPerformance(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatPerformance([]ranking.PerformanceEntry{{
		Player:             league.Player{Nickname: "ana"},
		Wins:               4,
		MatchesPlayed:      5,
		PerformancePercent: 80,
		Level:              ranking.LevelElite,
	}})
	require.Len(t, msg.Blocks.BlockSet, 2)
	row := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "1. :first_place_medal: *ana*\n> *Elite* | 80.0% (4/5)", row.Text.Text)
}
