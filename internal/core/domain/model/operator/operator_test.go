package operator_test

import (
	"testing"

	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperator(t *testing.T) {
	t.Run("should trim and keep both fields", func(t *testing.T) {
		op, err := operator.NewOperator(" 12345678Z ", "  Ana Ruiz ")

		require.NoError(t, err)
		require.NoError(t, op.Validate())
		assert.Equal(t, "12345678Z", op.ID())
		assert.Equal(t, "Ana Ruiz", op.Name())
	})

	t.Run("should require id", func(t *testing.T) {
		_, err := operator.NewOperator("  ", "Ana")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "operator id")
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := operator.NewOperator("", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "operator id")
		assert.Contains(t, err.Error(), "operator name")
	})
}

func TestOperator_Validate(t *testing.T) {
	var zero operator.Operator

	assert.Equal(t, operator.ErrOperatorIsNotConstructed, zero.Validate())
}

func TestOperator_Rename(t *testing.T) {
	op := operator.MustNewOperator("X1", "Luis")

	renamed, err := op.Rename("Luis Gómez")

	require.NoError(t, err)
	assert.Equal(t, "Luis Gómez", renamed.Name())
	assert.Equal(t, "Luis", op.Name())
	assert.True(t, op.IsEqual(renamed))

	_, err = op.Rename(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
