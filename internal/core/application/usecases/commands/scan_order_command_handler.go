package commands

import (
	"context"
	"errors"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/domain/services"
	"scantrack/internal/core/ports"
	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/metrics"

	"go.uber.org/zap"
)

const AlreadyCompletedNotice = "order already finalized"

var ErrNoOperators = errs.NewConflictError("scan order", "no operators registered")

// ScanResult is the outcome of a scan. Order is nil for NewOrderDetected.
type ScanResult struct {
	SessionID kernel.UUID
	OrderID   kernel.OrderID
	Decision  services.Decision
	Order     *order.Order
	Notice    string
}

// ScanOrderCommandHandler turns a photo into a lifecycle decision.
//
// Unknown and parked orders open a scan session that waits for
// DecideNewOrder or AssignOperator. In-progress orders are completed
// immediately. Completed orders are reported with a notice and left
// untouched.
type ScanOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	extractor  ports.OrderIDExtractor
	snapshots  SnapshotSource
	sessions   *ScanSessions
	resolver   services.ScanResolver
	now        func() time.Time
	logger     *zap.Logger
}

func NewScanOrderCommandHandler(
	uowFactory OrderUoWFactory,
	extractor ports.OrderIDExtractor,
	snapshots SnapshotSource,
	sessions *ScanSessions,
	now func() time.Time,
	logger *zap.Logger,
) ScanOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return ScanOrderCommandHandler{
		uowFactory: uowFactory,
		extractor:  extractor,
		snapshots:  snapshots,
		sessions:   sessions,
		resolver:   services.NewScanResolver(),
		now:        now,
		logger:     logger,
	}
}

func (h *ScanOrderCommandHandler) Handle(ctx context.Context, cmd ScanOrderCommand) (ScanResult, error) {
	if err := cmd.Validate(); err != nil {
		return ScanResult{}, err
	}

	if len(h.snapshots.Current().Operators) == 0 {
		metrics.ScansTotal.WithLabelValues("rejected").Inc()
		return ScanResult{}, ErrNoOperators
	}

	session, err := h.sessions.Begin(cmd.ClientID())
	if err != nil {
		metrics.ScansTotal.WithLabelValues("rejected").Inc()
		return ScanResult{}, err
	}

	result, err := h.scan(ctx, cmd, session)
	if err != nil || !result.Decision.NeedsUserInput() {
		h.sessions.Finish(session)
	}
	if err != nil {
		metrics.ScansTotal.WithLabelValues(failureOutcome(err)).Inc()
		metrics.OperationErrorsTotal.WithLabelValues("scan_order").Inc()
		return ScanResult{}, err
	}

	metrics.ScansTotal.WithLabelValues(result.Decision.String()).Inc()
	h.logger.Info("scan resolved",
		zap.String("client", cmd.ClientID()),
		zap.String("order", result.OrderID.String()),
		zap.Stringer("decision", result.Decision),
	)
	return result, nil
}

func (h *ScanOrderCommandHandler) scan(ctx context.Context, cmd ScanOrderCommand, session ScanSession) (ScanResult, error) {
	raw, err := h.extractor.ExtractOrderID(ctx, cmd.Image(), cmd.MimeType())
	if err != nil {
		return ScanResult{}, err
	}

	id, err := kernel.ParseOrderID(raw)
	if err != nil {
		return ScanResult{}, err
	}

	// Resolve against the snapshot taken after extraction, which may have
	// taken seconds.
	resolution := h.resolver.Resolve(id, h.snapshots.Current().Orders)
	result := ScanResult{
		SessionID: session.ID,
		OrderID:   id,
		Decision:  resolution.Decision,
		Order:     resolution.Order,
	}

	switch resolution.Decision {
	case services.NewOrderDetected, services.AwaitingAssignment:
		if _, err = h.sessions.Await(session, id, resolution.Decision); err != nil {
			return ScanResult{}, err
		}
	case services.AutoComplete:
		completed, err := h.complete(ctx, id)
		if err != nil {
			return ScanResult{}, err
		}
		result.Order = completed
	case services.AlreadyCompleted:
		result.Notice = AlreadyCompletedNotice
	}

	return result, nil
}

func (h *ScanOrderCommandHandler) complete(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
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

	if err = aggregate.Complete(h.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Upsert(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues(order.Completed.String()).Inc()
	return aggregate, nil
}

func failureOutcome(err error) string {
	if kind, ok := ports.VisionErrorKindOf(err); ok {
		return "vision_" + kind.String()
	}
	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return "invalid_identifier"
	case errors.Is(err, errs.ErrConflict):
		return "rejected"
	default:
		return "failed"
	}
}
