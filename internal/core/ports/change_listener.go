package ports

import (
	"context"
	"time"
)

// Collection names a persisted collection.
type Collection string

const (
	OrdersCollection    Collection = "orders"
	OperatorsCollection Collection = "operators"
)

// ChangeListener reports that a collection changed. Notifications carry no
// payload: receivers reload the full collection.
type ChangeListener interface {
	// Listen blocks until ctx is done or the listener fails, calling
	// onChange for every notification.
	Listen(ctx context.Context, onChange func(Collection)) error
}

// ChangeKind is what happened to an entity.
type ChangeKind string

const (
	ChangeUpserted ChangeKind = "upserted"
	ChangeDeleted  ChangeKind = "deleted"
)

// ChangeEvent is published to the message broker after a commit.
type ChangeEvent struct {
	ID         string     `json:"id"`
	Collection Collection `json:"collection"`
	Kind       ChangeKind `json:"kind"`
	EntityID   string     `json:"entityId"`
	Status     string     `json:"status,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// EventPublisher forwards committed changes to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, events ...ChangeEvent) error
}
