package commands

import (
	"errors"
	"strings"

	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/guard"
)

var (
	ErrSaveOperatorCommandIsNotConstructed = errors.New(
		"SaveOperatorCommand must be created via NewAddOperatorCommand or NewUpdateOperatorCommand constructor",
	)
	ErrRemoveOperatorCommandIsNotConstructed = errors.New(
		"RemoveOperatorCommand must be created via NewRemoveOperatorCommand constructor",
	)
)

// SaveOperatorCommand registers a new operator or renames an existing one.
//
// Example:
//
//	cmd, err := NewAddOperatorCommand("12345678", "Ana Díaz")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to add operator: %w", err)
//	}
type SaveOperatorCommand struct { //nolint:recvcheck //using for validation
	operator operator.Operator
	update   bool

	guard guard.ConstructorGuard
}

func NewAddOperatorCommand(id, name string) (SaveOperatorCommand, error) {
	return newSaveOperatorCommand(id, name, false)
}

func NewUpdateOperatorCommand(id, name string) (SaveOperatorCommand, error) {
	return newSaveOperatorCommand(id, name, true)
}

func newSaveOperatorCommand(id, name string, update bool) (SaveOperatorCommand, error) {
	op, err := operator.NewOperator(id, name)
	if err != nil {
		return SaveOperatorCommand{}, err
	}
	return SaveOperatorCommand{operator: op, update: update, guard: guard.NewConstructorGuard()}, nil
}

func (c SaveOperatorCommand) Validate() error {
	return c.guard.Validate(ErrSaveOperatorCommandIsNotConstructed)
}

func (c SaveOperatorCommand) Operator() operator.Operator {
	return c.operator
}

// IsUpdate is false for additions.
func (c SaveOperatorCommand) IsUpdate() bool {
	return c.update
}

// RemoveOperatorCommand deletes an operator from the roster. Orders keep
// their copy of the operator.
type RemoveOperatorCommand struct { //nolint:recvcheck //using for validation
	operatorID string

	guard guard.ConstructorGuard
}

func NewRemoveOperatorCommand(operatorID string) (RemoveOperatorCommand, error) {
	operatorID = strings.TrimSpace(operatorID)
	if operatorID == "" {
		return RemoveOperatorCommand{}, errs.NewValueIsRequiredError("operator id")
	}
	return RemoveOperatorCommand{operatorID: operatorID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveOperatorCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOperatorCommandIsNotConstructed)
}

func (c RemoveOperatorCommand) OperatorID() string {
	return c.operatorID
}
