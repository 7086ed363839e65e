package commands

import (
	"errors"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/pkg/guard"
)

var ErrFinalizeOrderCommandIsNotConstructed = errors.New(
	"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
)

// FinalizeOrderCommand completes an in-progress order without a scan.
type FinalizeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewFinalizeOrderCommand(orderID kernel.OrderID) (FinalizeOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FinalizeOrderCommand{}, err
	}
	return FinalizeOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

func (c FinalizeOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}
