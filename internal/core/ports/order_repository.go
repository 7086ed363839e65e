// Package ports defines the contracts between the order tracker's core and
// its adapters: storage, change notification, event publishing and the
// vision service that reads order ids off photos.
package ports

import (
	"context"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates keyed by their ticket id.
type OrderRepository interface {
	// Upsert writes the whole aggregate; the latest write wins.
	Upsert(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when no order has the id.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	ListAll(ctx context.Context) ([]*order.Order, error)

	Delete(ctx context.Context, id kernel.OrderID) error

	// DeleteCompleted removes every order with an end time and reports how many.
	DeleteCompleted(ctx context.Context) (int64, error)
}
