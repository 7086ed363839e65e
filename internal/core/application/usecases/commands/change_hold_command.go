package commands

import (
	"errors"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/guard"
)

var ErrChangeHoldCommandIsNotConstructed = errors.New(
	"ChangeHoldCommand must be created via NewToggleHoldCommand or NewSetHoldCommand constructor",
)

// ChangeHoldCommand moves a parked order between to-be-prepared and
// pending. It either toggles or targets a given hold.
type ChangeHoldCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	hold    order.Hold
	toggle  bool

	guard guard.ConstructorGuard
}

func NewToggleHoldCommand(orderID kernel.OrderID) (ChangeHoldCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeHoldCommand{}, err
	}
	return ChangeHoldCommand{orderID: orderID, toggle: true, guard: guard.NewConstructorGuard()}, nil
}

func NewSetHoldCommand(orderID kernel.OrderID, hold order.Hold) (ChangeHoldCommand, error) {
	var errHold error
	if !hold.IsChoice() {
		errHold = errs.NewValueIsRequiredError("pending status")
	}
	if err := errors.Join(orderID.Validate(), errHold); err != nil {
		return ChangeHoldCommand{}, err
	}
	return ChangeHoldCommand{orderID: orderID, hold: hold, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeHoldCommand) Validate() error {
	return c.guard.Validate(ErrChangeHoldCommandIsNotConstructed)
}

func (c ChangeHoldCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Hold is the target hold; meaningless when Toggle is true.
func (c ChangeHoldCommand) Hold() order.Hold {
	return c.hold
}

func (c ChangeHoldCommand) Toggle() bool {
	return c.toggle
}
