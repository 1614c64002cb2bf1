package main

import (
	"testing"
	"time"

	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomMatch(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		m := randomMatch(ids, now)

		assert.GreaterOrEqual(t, len(m.ParticipantIDs), 3)
		assert.LessOrEqual(t, len(m.ParticipantIDs), len(ids))
		assert.Contains(t, m.ParticipantIDs, m.WinnerID)
		assert.True(t, m.Type.Valid())

		d, err := time.Parse(league.DateLayout, m.Date)
		require.NoError(t, err)
		assert.False(t, d.After(now))
		assert.True(t, d.After(now.AddDate(-1, 0, -1)))
	}
}
