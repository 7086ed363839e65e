package commands

import (
	"context"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/domain/services"
	"scantrack/internal/pkg/metrics"
)

// AssignOperatorCommandHandler starts the order held in the client's
// AwaitingAssignment session.
type AssignOperatorCommandHandler struct {
	uowFactory UoWFactory
	sessions   *ScanSessions
	now        func() time.Time
}

func NewAssignOperatorCommandHandler(uowFactory UoWFactory, sessions *ScanSessions, now func() time.Time) AssignOperatorCommandHandler {
	if now == nil {
		now = time.Now
	}
	return AssignOperatorCommandHandler{uowFactory: uowFactory, sessions: sessions, now: now}
}

func (h *AssignOperatorCommandHandler) Handle(ctx context.Context, cmd AssignOperatorCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	session, err := h.sessions.Pending(cmd.ClientID(), services.AwaitingAssignment)
	if err != nil {
		return nil, err
	}

	started, err := h.start(ctx, session.OrderID, cmd.OperatorID())
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("assign_operator").Inc()
		return nil, err
	}

	h.sessions.Finish(session)
	metrics.TransitionsTotal.WithLabelValues(order.InProgress.String()).Inc()
	return started, nil
}

func (h *AssignOperatorCommandHandler) start(ctx context.Context, id kernel.OrderID, operatorID string) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	op, err := uow.OperatorRepository().Get(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	if err = aggregate.Start(op, h.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Upsert(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
