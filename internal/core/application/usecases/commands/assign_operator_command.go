package commands

import (
	"errors"
	"strings"

	"scantrack/internal/pkg/guard"
)

var ErrAssignOperatorCommandIsNotConstructed = errors.New(
	"AssignOperatorCommand must be created via NewAssignOperatorCommand constructor",
)

// AssignOperatorCommand confirms the operator for a parked order that was
// just scanned, starting its preparation.
type AssignOperatorCommand struct { //nolint:recvcheck //using for validation
	clientID   string
	operatorID string

	guard guard.ConstructorGuard
}

func NewAssignOperatorCommand(clientID, operatorID string) (AssignOperatorCommand, error) {
	cmd := AssignOperatorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientID(clientID),
		cmd.setOperatorID(operatorID),
	); err != nil {
		return AssignOperatorCommand{}, err
	}

	return cmd, nil
}

func (c AssignOperatorCommand) Validate() error {
	return c.guard.Validate(ErrAssignOperatorCommandIsNotConstructed)
}

func (c AssignOperatorCommand) ClientID() string {
	return c.clientID
}

func (c AssignOperatorCommand) OperatorID() string {
	return c.operatorID
}

func (c *AssignOperatorCommand) setClientID(clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return ErrClientIDIsRequired
	}
	c.clientID = clientID
	return nil
}

func (c *AssignOperatorCommand) setOperatorID(operatorID string) error {
	operatorID = strings.TrimSpace(operatorID)
	if operatorID == "" {
		return ErrOperatorIsRequired
	}
	c.operatorID = operatorID
	return nil
}
