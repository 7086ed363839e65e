package commands

import (
	"context"

	"scantrack/internal/pkg/metrics"
)

// ClearHistoryCommandHandler deletes every completed order. Parked and
// in-progress orders are kept. It takes no command: there is nothing to
// validate.
type ClearHistoryCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewClearHistoryCommandHandler(uowFactory OrderUoWFactory) ClearHistoryCommandHandler {
	return ClearHistoryCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of deleted orders.
func (h *ClearHistoryCommandHandler) Handle(ctx context.Context) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OrderRepository().DeleteCompleted(ctx)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("clear_history").Inc()
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("clear_history").Inc()
		return 0, err
	}

	return deleted, nil
}
