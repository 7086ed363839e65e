package commands_test

import (
	"testing"
	"time"

	"scantrack/internal/core/application/usecases/commands"
	"scantrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSessions_OneDecisionPerClient(t *testing.T) {
	sessions := commands.NewScanSessions(time.Minute, fixedClock(t0))

	first, err := sessions.Begin("tablet-1")
	require.NoError(t, err)
	assert.False(t, first.Awaiting())

	_, err = sessions.Begin("tablet-1")
	require.ErrorIs(t, err, commands.ErrScanInProgress)

	_, err = sessions.Begin("tablet-2")
	require.NoError(t, err)
	assert.Equal(t, 2, sessions.Open())

	sessions.Finish(first)
	_, err = sessions.Begin("tablet-1")
	require.NoError(t, err)
}

func TestScanSessions_StaleScanLeavesNewerSessionOpen(t *testing.T) {
	now := t0
	sessions := commands.NewScanSessions(time.Minute, func() time.Time { return now })

	stale, err := sessions.Begin("tablet-1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	fresh, err := sessions.Begin("tablet-1")
	require.NoError(t, err)
	require.False(t, stale.ID.IsEqual(fresh.ID))

	_, err = sessions.Await(stale, ord1, services.NewOrderDetected)
	require.ErrorIs(t, err, commands.ErrNoPendingScan)

	sessions.Finish(stale)
	assert.Equal(t, 1, sessions.Open())
	_, err = sessions.Begin("tablet-1")
	require.ErrorIs(t, err, commands.ErrScanInProgress)

	_, err = sessions.Await(fresh, ord1, services.AwaitingAssignment)
	require.NoError(t, err)
	sessions.Finish(fresh)
	assert.Zero(t, sessions.Open())
}

func TestScanSessions_Expiry(t *testing.T) {
	now := t0
	sessions := commands.NewScanSessions(time.Minute, func() time.Time { return now })

	session, err := sessions.Begin("tablet-1")
	require.NoError(t, err)
	_, err = sessions.Await(session, ord1, services.NewOrderDetected)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = sessions.Pending("tablet-1", services.NewOrderDetected)
	require.ErrorIs(t, err, commands.ErrNoPendingScan)

	_, err = sessions.Begin("tablet-1")
	require.NoError(t, err, "an expired session must not block new scans")

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, sessions.PurgeExpired())
	assert.Zero(t, sessions.Open())
}

func TestScanSessions_PendingMatchesDecision(t *testing.T) {
	sessions := commands.NewScanSessions(0, fixedClock(t0))
	begun, err := sessions.Begin("tablet-1")
	require.NoError(t, err)

	_, err = sessions.Pending("tablet-1", services.NewOrderDetected)
	require.ErrorIs(t, err, commands.ErrNoPendingScan)

	_, err = sessions.Await(begun, ord1, services.AwaitingAssignment)
	require.NoError(t, err)

	session, err := sessions.Pending(" tablet-1 ", services.AwaitingAssignment)
	require.NoError(t, err)
	assert.True(t, session.Awaiting())
	assert.Equal(t, ord1, session.OrderID)

	_, err = sessions.Begin("")
	require.ErrorIs(t, err, commands.ErrClientIDIsRequired)
}
