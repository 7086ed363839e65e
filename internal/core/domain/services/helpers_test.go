package services_test

import (
	"testing"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var (
	day0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	ana  = operator.MustNewOperator("A1", "Ana")
	bea  = operator.MustNewOperator("B2", "Bea")
	carl = operator.MustNewOperator("C3", "Carl")
)

func parked(t *testing.T, id string, created time.Time, hold order.Hold) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.MustParseOrderID(id), created, hold)
	require.NoError(t, err)
	return o
}

func started(t *testing.T, id string, created, start time.Time, op operator.Operator) *order.Order {
	t.Helper()
	o := parked(t, id, created, order.HoldToBePrepared)
	require.NoError(t, o.Start(op, start))
	return o
}

func completed(t *testing.T, id string, created, start, end time.Time, op operator.Operator) *order.Order {
	t.Helper()
	o := started(t, id, created, start, op)
	require.NoError(t, o.Complete(end))
	return o
}

func ids(orders []*order.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID().String())
	}
	return out
}
