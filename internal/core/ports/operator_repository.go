package ports

import (
	"context"

	"scantrack/internal/core/domain/model/operator"
)

// OperatorRepository persists the operator roster.
type OperatorRepository interface {
	// Add fails with errs.ConflictError when the id is already taken.
	Add(ctx context.Context, op operator.Operator) error

	// Update fails with errs.ObjectNotFoundError for unknown ids.
	Update(ctx context.Context, op operator.Operator) error

	Get(ctx context.Context, id string) (operator.Operator, error)

	// ListAll returns the roster sorted by name.
	ListAll(ctx context.Context) ([]operator.Operator, error)

	// Delete fails with errs.ObjectNotFoundError for unknown ids.
	Delete(ctx context.Context, id string) error
}
