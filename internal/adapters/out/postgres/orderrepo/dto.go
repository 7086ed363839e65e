// Package orderrepo persists order aggregates with GORM. An order is stored
// as one row; the operator assigned to it is copied into operator_* columns
// so later roster changes never rewrite history.
package orderrepo

import (
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"
)

// OrderDTO is the row of the orders table. Status is derived from the
// timestamps and never stored.
type OrderDTO struct {
	ID            string              `gorm:"primaryKey;size:64"`
	CreationTime  time.Time           `gorm:"not null"`
	StartTime     *time.Time
	EndTime       *time.Time          `gorm:"index"`
	Operator      OperatorSnapshotDTO `gorm:"embedded;embeddedPrefix:operator_"`
	PendingStatus string              `gorm:"size:16"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OperatorSnapshotDTO is the operator copied into an order at start.
type OperatorSnapshotDTO struct {
	ID   *string `gorm:"size:64;index"`
	Name *string `gorm:"size:255"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            aggregate.ID().String(),
		CreationTime:  aggregate.CreationTime(),
		StartTime:     aggregate.StartTime(),
		EndTime:       aggregate.EndTime(),
		PendingStatus: aggregate.Hold().String(),
	}

	if op := aggregate.Operator(); op != nil {
		id, name := op.ID(), op.Name()
		dto.Operator = OperatorSnapshotDTO{ID: &id, Name: &name}
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	hold, err := order.ParseHold(dto.PendingStatus)
	if err != nil {
		return nil, err
	}

	var op *operator.Operator
	if dto.Operator.ID != nil {
		name := ""
		if dto.Operator.Name != nil {
			name = *dto.Operator.Name
		}
		restored, opErr := operator.NewOperator(*dto.Operator.ID, name)
		if opErr != nil {
			return nil, opErr
		}
		op = &restored
	}

	return order.RestoreOrder(id, dto.CreationTime, dto.StartTime, dto.EndTime, op, hold)
}
