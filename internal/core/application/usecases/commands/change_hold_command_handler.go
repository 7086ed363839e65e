package commands

import (
	"context"

	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/pkg/metrics"
)

// ChangeHoldCommandHandler applies a ChangeHoldCommand. Started orders are
// returned unchanged and nothing is written.
type ChangeHoldCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeHoldCommandHandler(uowFactory OrderUoWFactory) ChangeHoldCommandHandler {
	return ChangeHoldCommandHandler{uowFactory: uowFactory}
}

func (h *ChangeHoldCommandHandler) Handle(ctx context.Context, cmd ChangeHoldCommand) (*order.Order, error) {
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

	var changed bool
	if cmd.Toggle() {
		changed = aggregate.TogglePendingHold()
	} else if changed, err = aggregate.SetHold(cmd.Hold()); err != nil {
		return nil, err
	}
	if !changed {
		return aggregate, nil
	}

	if err = orderRepo.Upsert(ctx, aggregate); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("change_hold").Inc()
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("change_hold").Inc()
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues(aggregate.Status().String()).Inc()
	return aggregate, nil
}
