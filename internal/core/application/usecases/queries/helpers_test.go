package queries_test

import (
	"time"

	"scantrack/internal/core/application/snapshot"
	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"
)

var (
	day0 = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	ana  = operator.MustNewOperator("A1", "Ana")
	bea  = operator.MustNewOperator("B2", "Bea")
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func parked(id string, created time.Time, hold order.Hold) *order.Order {
	o, err := order.NewOrder(kernel.MustParseOrderID(id), created, hold)
	if err != nil {
		panic(err)
	}
	return o
}

func started(id string, op operator.Operator, created, start time.Time) *order.Order {
	o := parked(id, created, order.HoldToBePrepared)
	if err := o.Start(op, start); err != nil {
		panic(err)
	}
	return o
}

func completed(id string, op operator.Operator, created, start, end time.Time) *order.Order {
	o := started(id, op, created, start)
	if err := o.Complete(end); err != nil {
		panic(err)
	}
	return o
}

func newStore(orders []*order.Order, operators ...operator.Operator) *snapshot.Store {
	s := snapshot.NewStore()
	s.Replace(orders, operators, day0)
	return s
}
