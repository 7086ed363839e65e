package queries

import (
	"context"
	"errors"

	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/pkg/guard"
)

var ErrListOperatorsQueryIsNotConstructed = errors.New(
	"ListOperatorsQuery must be created via NewListOperatorsQuery constructor",
)

type ListOperatorsQuery struct {
	guard guard.ConstructorGuard
}

func NewListOperatorsQuery() ListOperatorsQuery {
	return ListOperatorsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListOperatorsQuery) Validate() error {
	return q.guard.Validate(ErrListOperatorsQueryIsNotConstructed)
}

// ListOperatorsQueryHandler returns the roster in storage order, which is
// by name.
type ListOperatorsQueryHandler struct {
	snapshots SnapshotSource
}

func NewListOperatorsQueryHandler(snapshots SnapshotSource) ListOperatorsQueryHandler {
	return ListOperatorsQueryHandler{snapshots: snapshots}
}

func (h ListOperatorsQueryHandler) Handle(_ context.Context, query ListOperatorsQuery) ([]operator.Operator, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.snapshots.Current().Operators, nil
}
