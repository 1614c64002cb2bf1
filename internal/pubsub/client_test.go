package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutProjectIsNoop(t *testing.T) {
	c, err := New(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, noop{}, c)
	assert.NoError(t, c.SendMessage(context.Background(), EventMatchRecorded, MatchRecorded{MatchID: "m1"}))
	assert.NoError(t, c.Close())
}

func TestProcessMessage_DecodesMsgpack(t *testing.T) {
	data, err := Encode(MaintenanceRequest{Year: 2024, Month: 12, DryRun: true})
	require.NoError(t, err)

	var req MaintenanceRequest
	require.NoError(t, noop{}.ProcessMessage(data, &req))
	assert.Equal(t, MaintenanceRequest{Year: 2024, Month: 12, DryRun: true}, req)

	assert.Error(t, noop{}.ProcessMessage([]byte{0xc1}, &req), "0xc1 is never a valid msgpack byte")
}
