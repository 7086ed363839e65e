package commands

import (
	"context"
	"time"

	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/pkg/metrics"
)

type FinalizeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewFinalizeOrderCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) FinalizeOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return FinalizeOrderCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle stamps endTime. Orders that are not in progress yield a conflict.
func (h *FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Complete(h.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Upsert(ctx, aggregate); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("finalize_order").Inc()
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("finalize_order").Inc()
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues(order.Completed.String()).Inc()
	return aggregate, nil
}
