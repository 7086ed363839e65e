package commands

import (
	"errors"
	"fmt"
	"strings"

	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/guard"
)

var (
	ErrDecideNewOrderCommandIsNotConstructed = errors.New(
		"DecideNewOrderCommand must be created via NewDecideNewOrderCommand constructor",
	)

	// ErrOperatorIsRequired rejects an assignment confirmed with no operator.
	ErrOperatorIsRequired = order.ErrOperatorIsRequired
)

// NewOrderAction is the answer to a NewOrderDetected scan.
type NewOrderAction string

const (
	ActionToBePrepared NewOrderAction = "to_be_prepared"
	ActionPending      NewOrderAction = "pending"
	ActionAssign       NewOrderAction = "assign"
)

func ParseNewOrderAction(s string) (NewOrderAction, error) {
	switch a := NewOrderAction(strings.TrimSpace(s)); a {
	case ActionToBePrepared, ActionPending, ActionAssign:
		return a, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", s))
	}
}

// Hold returns the pre-start state the action parks the order in.
func (a NewOrderAction) Hold() order.Hold {
	switch a {
	case ActionToBePrepared:
		return order.HoldToBePrepared
	case ActionPending:
		return order.HoldPending
	default:
		return order.HoldNone
	}
}

// DecideNewOrderCommand answers the prompt shown after an unknown order
// was scanned: park it as to-be-prepared, park it as pending, or start it
// right away with an operator.
type DecideNewOrderCommand struct { //nolint:recvcheck //using for validation
	clientID   string
	action     NewOrderAction
	operatorID string

	guard guard.ConstructorGuard
}

// NewDecideNewOrderCommand requires operatorID when action is ActionAssign
// and ignores it otherwise.
func NewDecideNewOrderCommand(clientID string, action NewOrderAction, operatorID string) (DecideNewOrderCommand, error) {
	cmd := DecideNewOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientID(clientID),
		cmd.setAction(action, operatorID),
	); err != nil {
		return DecideNewOrderCommand{}, err
	}

	return cmd, nil
}

func (c DecideNewOrderCommand) Validate() error {
	return c.guard.Validate(ErrDecideNewOrderCommandIsNotConstructed)
}

func (c DecideNewOrderCommand) ClientID() string {
	return c.clientID
}

func (c DecideNewOrderCommand) Action() NewOrderAction {
	return c.action
}

func (c DecideNewOrderCommand) OperatorID() string {
	return c.operatorID
}

func (c *DecideNewOrderCommand) setClientID(clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return ErrClientIDIsRequired
	}
	c.clientID = clientID
	return nil
}

func (c *DecideNewOrderCommand) setAction(action NewOrderAction, operatorID string) error {
	action, err := ParseNewOrderAction(string(action))
	if err != nil {
		return err
	}

	operatorID = strings.TrimSpace(operatorID)
	if action == ActionAssign && operatorID == "" {
		return ErrOperatorIsRequired
	}

	c.action = action
	if action == ActionAssign {
		c.operatorID = operatorID
	}
	return nil
}
