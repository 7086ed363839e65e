package commands

import (
	"context"
	"errors"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/domain/services"
	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/metrics"
)

// DecideNewOrderCommandHandler creates the order a client scanned for the
// first time, using the id kept in the client's scan session.
type DecideNewOrderCommandHandler struct {
	uowFactory UoWFactory
	sessions   *ScanSessions
	now        func() time.Time
}

func NewDecideNewOrderCommandHandler(uowFactory UoWFactory, sessions *ScanSessions, now func() time.Time) DecideNewOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return DecideNewOrderCommandHandler{uowFactory: uowFactory, sessions: sessions, now: now}
}

func (h *DecideNewOrderCommandHandler) Handle(ctx context.Context, cmd DecideNewOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	session, err := h.sessions.Pending(cmd.ClientID(), services.NewOrderDetected)
	if err != nil {
		return nil, err
	}

	created, err := h.create(ctx, cmd, session.OrderID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("decide_new_order").Inc()
		return nil, err
	}

	h.sessions.Finish(session)
	metrics.TransitionsTotal.WithLabelValues(created.Status().String()).Inc()
	return created, nil
}

func (h *DecideNewOrderCommandHandler) create(ctx context.Context, cmd DecideNewOrderCommand, id kernel.OrderID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if _, err := orderRepo.Get(ctx, id); err == nil {
		return nil, errs.NewConflictError("create order "+id.String(), "it was registered by another client")
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	var (
		created *order.Order
		err     error
	)
	now := h.now()
	if cmd.Action() == ActionAssign {
		op, getErr := uow.OperatorRepository().Get(ctx, cmd.OperatorID())
		if getErr != nil {
			return nil, getErr
		}
		created, err = order.NewStartedOrder(id, op, now)
	} else {
		created, err = order.NewOrder(id, now, cmd.Action().Hold())
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Upsert(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
