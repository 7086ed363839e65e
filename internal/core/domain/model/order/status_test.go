package order_test

import (
	"testing"

	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.AllStatuses() {
		require.NoError(t, s.Validate(), s.String())
	}

	for _, s := range []order.Status{order.Unknown, order.Status(99), order.Status(-1)} {
		err := s.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "status is invalid")
	}
}

func TestStatus_String(t *testing.T) {
	tests := map[order.Status]string{
		order.ToBePrepared: "to_be_prepared",
		order.PendingIssue: "pending_issue",
		order.InProgress:   "in_progress",
		order.Completed:    "completed",
		order.Unknown:      "unknown",
		order.Status(42):   "unknown",
	}
	for s, want := range tests {
		assert.Equal(t, want, s.String())
	}
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("start allowed only before start", func(t *testing.T) {
		require.NoError(t, order.ToBePrepared.ValidateStart())
		require.NoError(t, order.PendingIssue.ValidateStart())
		require.ErrorIs(t, order.InProgress.ValidateStart(), errs.ErrConflict)
		require.ErrorIs(t, order.Completed.ValidateStart(), errs.ErrConflict)
	})

	t.Run("complete allowed only in progress", func(t *testing.T) {
		require.NoError(t, order.InProgress.ValidateComplete())
		require.ErrorIs(t, order.ToBePrepared.ValidateComplete(), errs.ErrConflict)
		require.ErrorIs(t, order.PendingIssue.ValidateComplete(), errs.ErrConflict)

		err := order.Completed.ValidateComplete()
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "completed is not a valid status to complete")
	})
}

func TestStatus_Display(t *testing.T) {
	assert.Equal(t, order.Display{Label: "Por Preparar", Tone: "blue"}, order.ToBePrepared.Display(false))
	assert.Equal(t, order.Display{Label: "Pendiente", Tone: "gray"}, order.PendingIssue.Display(false))
	assert.Equal(t, order.Display{Label: "Por Preparar (Retrasado)", Tone: "red"}, order.ToBePrepared.Display(true))
	assert.Equal(t, order.Display{Label: "Pendiente (Retrasado)", Tone: "red"}, order.PendingIssue.Display(true))
	assert.Equal(t, order.Display{Label: "En Proceso", Tone: "yellow"}, order.InProgress.Display(true))
	assert.Equal(t, order.Display{Label: "Completado", Tone: "green"}, order.Completed.Display(true))
}

func TestParseHold(t *testing.T) {
	h, err := order.ParseHold("por_preparar")
	require.NoError(t, err)
	assert.Equal(t, order.HoldToBePrepared, h)

	h, err = order.ParseHold("pendiente")
	require.NoError(t, err)
	assert.Equal(t, order.HoldPending, h)

	h, err = order.ParseHold("")
	require.NoError(t, err)
	assert.Equal(t, order.HoldNone, h)

	_, err = order.ParseHold("later")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, "pendiente", order.HoldPending.String())
	assert.Empty(t, order.HoldNone.String())
}
