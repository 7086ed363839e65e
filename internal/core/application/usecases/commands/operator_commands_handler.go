package commands

import (
	"context"

	"scantrack/internal/pkg/metrics"
)

// SaveOperatorCommandHandler adds or renames operators.
type SaveOperatorCommandHandler struct {
	uowFactory OperatorUoWFactory
}

func NewSaveOperatorCommandHandler(uowFactory OperatorUoWFactory) SaveOperatorCommandHandler {
	return SaveOperatorCommandHandler{uowFactory: uowFactory}
}

// Handle fails with a conflict when adding a taken id and with not found
// when updating an unknown one.
func (h *SaveOperatorCommandHandler) Handle(ctx context.Context, cmd SaveOperatorCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OperatorRepository()
	var err error
	if cmd.IsUpdate() {
		err = repo.Update(ctx, cmd.Operator())
	} else {
		err = repo.Add(ctx, cmd.Operator())
	}
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("save_operator").Inc()
		return err
	}

	return uow.Commit(ctx)
}

type RemoveOperatorCommandHandler struct {
	uowFactory OperatorUoWFactory
}

func NewRemoveOperatorCommandHandler(uowFactory OperatorUoWFactory) RemoveOperatorCommandHandler {
	return RemoveOperatorCommandHandler{uowFactory: uowFactory}
}

func (h *RemoveOperatorCommandHandler) Handle(ctx context.Context, cmd RemoveOperatorCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OperatorRepository().Delete(ctx, cmd.OperatorID()); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("remove_operator").Inc()
		return err
	}

	return uow.Commit(ctx)
}
