package operator

import (
	"errors"
	"strings"

	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/guard"
)

var ErrOperatorIsNotConstructed = errors.New("Operator must be created via NewOperator constructor")

// Operator is a preparer identified by an external id such as a national id.
type Operator struct {
	id    string
	name  string
	guard guard.ConstructorGuard
}

// NewOperator trims both fields; each must be non-empty afterwards.
func NewOperator(id, name string) (Operator, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)

	var errID, errName error
	if id == "" {
		errID = errs.NewValueIsRequiredError("operator id")
	}
	if name == "" {
		errName = errs.NewValueIsRequiredError("operator name")
	}
	if err := errors.Join(errID, errName); err != nil {
		return Operator{}, err
	}

	return Operator{id: id, name: name, guard: guard.NewConstructorGuard()}, nil
}

func MustNewOperator(id, name string) Operator {
	op, err := NewOperator(id, name)
	if err != nil {
		panic(err)
	}
	return op
}

func (o Operator) ID() string {
	return o.id
}

func (o Operator) Name() string {
	return o.name
}

func (o Operator) Validate() error {
	return o.guard.Validate(ErrOperatorIsNotConstructed)
}

// IsEqual compares identity only; two snapshots of the same person with
// different names are equal.
func (o Operator) IsEqual(other Operator) bool {
	return o.id == other.id
}

// Rename returns a copy carrying the new name.
func (o Operator) Rename(name string) (Operator, error) {
	if err := o.Validate(); err != nil {
		return Operator{}, err
	}
	return NewOperator(o.id, name)
}
