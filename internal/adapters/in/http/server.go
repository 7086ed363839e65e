// Package http exposes the tracker over REST, a websocket feed, metrics and
// swagger, on top of the generated servers.ServerInterface.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"scantrack/internal/core/application/usecases/commands"
	"scantrack/internal/core/application/usecases/queries"
	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// MaxImageSize caps uploaded ticket photos.
const MaxImageSize = commands.MaxImageSize

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	ScanOrder      commands.ScanOrderCommandHandler
	DecideNewOrder commands.DecideNewOrderCommandHandler
	AssignOperator commands.AssignOperatorCommandHandler
	CancelScan     commands.CancelScanCommandHandler
	ChangeHold     commands.ChangeHoldCommandHandler
	FinalizeOrder  commands.FinalizeOrderCommandHandler
	ClearHistory   commands.ClearHistoryCommandHandler
	SaveOperator   commands.SaveOperatorCommandHandler
	RemoveOperator commands.RemoveOperatorCommandHandler
	SetVisionKey   commands.SetVisionKeyCommandHandler

	ListOrders      queries.ListOrdersQueryHandler
	GetDashboard    queries.GetDashboardQueryHandler
	GetHistory      queries.GetHistoryQueryHandler
	ListOperators   queries.ListOperatorsQueryHandler
	GetVisionStatus queries.GetVisionStatusQueryHandler
}

// Server implements servers.ServerInterface.
type Server struct {
	h   Handlers
	now func() time.Time
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(h Handlers, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{h: h, now: now}
}

// ScanOrder handles POST /api/v1/scans.
func (s *Server) ScanOrder(ctx echo.Context) error {
	file, err := ctx.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	// One byte past the cap lets the command report the oversize.
	image, err := io.ReadAll(io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		return err
	}

	cmd, err := commands.NewScanOrderCommand(ctx.FormValue("clientId"), image, file.Header.Get(echo.HeaderContentType))
	if err != nil {
		return err
	}

	result, err := s.h.ScanOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toScanOutcome(result, s.now()))
}

// DecideNewOrder handles POST /api/v1/scans/{clientId}/decision.
func (s *Server) DecideNewOrder(ctx echo.Context, clientID servers.ClientId) error {
	var body servers.NewOrderDecision
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	action, err := commands.ParseNewOrderAction(body.Action)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDecideNewOrderCommand(clientID, action, deref(body.OperatorId))
	if err != nil {
		return err
	}

	o, err := s.h.DecideNewOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toOrderAt(o, s.now()))
}

// AssignOperator handles POST /api/v1/scans/{clientId}/assignment.
func (s *Server) AssignOperator(ctx echo.Context, clientID servers.ClientId) error {
	var body servers.Assignment
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewAssignOperatorCommand(clientID, body.OperatorId)
	if err != nil {
		return err
	}

	o, err := s.h.AssignOperator.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderAt(o, s.now()))
}

// CancelScan handles DELETE /api/v1/scans/{clientId}.
func (s *Server) CancelScan(ctx echo.Context, clientID servers.ClientId) error {
	cmd, err := commands.NewCancelScanCommand(clientID)
	if err != nil {
		return err
	}
	if err := s.h.CancelScan.Handle(cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	filter := ""
	if params.Status != nil {
		filter = string(*params.Status)
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return err
	}
	resp, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderList(resp))
}

// SetOrderHold handles POST /api/v1/orders/{orderId}/hold.
func (s *Server) SetOrderHold(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.HoldChange
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	id, err := kernel.OrderIDFromString(orderID)
	if err != nil {
		return err
	}
	hold, err := order.ParseHold(body.PendingStatus)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetHoldCommand(id, hold)
	if err != nil {
		return err
	}
	return s.changeHold(ctx, cmd)
}

// ToggleOrderHold handles POST /api/v1/orders/{orderId}/hold/toggle.
func (s *Server) ToggleOrderHold(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.OrderIDFromString(orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewToggleHoldCommand(id)
	if err != nil {
		return err
	}
	return s.changeHold(ctx, cmd)
}

func (s *Server) changeHold(ctx echo.Context, cmd commands.ChangeHoldCommand) error {
	o, err := s.h.ChangeHold.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderAt(o, s.now()))
}

// FinalizeOrder handles POST /api/v1/orders/{orderId}/finalize.
func (s *Server) FinalizeOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.OrderIDFromString(orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewFinalizeOrderCommand(id)
	if err != nil {
		return err
	}

	o, err := s.h.FinalizeOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderAt(o, s.now()))
}

// GetDashboard handles GET /api/v1/dashboard.
func (s *Server) GetDashboard(ctx echo.Context, params servers.GetDashboardParams) error {
	query := queries.NewGetDashboardQuery(fromDate(params.From), fromDate(params.To))
	if params.Range != nil {
		if *params.Range != servers.Last7Days {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown range %q", *params.Range))
		}
		if params.From != nil || params.To != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "range cannot be combined with from or to")
		}
		query = queries.NewDefaultRangeDashboardQuery()
	}

	dashboard, err := s.h.GetDashboard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toDashboard(dashboard))
}

// GetHistory handles GET /api/v1/history.
func (s *Server) GetHistory(ctx echo.Context, params servers.GetHistoryParams) error {
	query, err := historyQuery(params.From, params.To, params.OperatorId, params.Sort)
	if err != nil {
		return err
	}

	resp, err := s.h.GetHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toHistory(resp))
}

// ExportHistory handles GET /api/v1/history/export.
func (s *Server) ExportHistory(ctx echo.Context, params servers.ExportHistoryParams) error {
	query, err := historyQuery(params.From, params.To, params.OperatorId, params.Sort)
	if err != nil {
		return err
	}

	name, data, err := s.h.GetHistory.Export(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return ctx.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

func historyQuery(from, to *servers.From, operatorID *servers.OperatorFilter, sort *servers.Sort) (queries.GetHistoryQuery, error) {
	sortValue := ""
	if sort != nil {
		sortValue = string(*sort)
	}
	return queries.NewGetHistoryQuery(fromDate(from), fromDate(to), deref(operatorID), sortValue)
}

// ClearHistory handles DELETE /api/v1/history.
func (s *Server) ClearHistory(ctx echo.Context) error {
	deleted, err := s.h.ClearHistory.Handle(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, servers.ClearedHistory{Deleted: deleted})
}

// GetOperators handles GET /api/v1/operators.
func (s *Server) GetOperators(ctx echo.Context) error {
	ops, err := s.h.ListOperators.Handle(ctx.Request().Context(), queries.NewListOperatorsQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOperators(ops))
}

// CreateOperator handles POST /api/v1/operators.
func (s *Server) CreateOperator(ctx echo.Context) error {
	var body servers.Operator
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewAddOperatorCommand(body.Id, body.Name)
	if err != nil {
		return err
	}
	if err := s.h.SaveOperator.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusCreated)
}

// UpdateOperator handles PUT /api/v1/operators/{operatorId}.
func (s *Server) UpdateOperator(ctx echo.Context, operatorID servers.OperatorId) error {
	var body servers.OperatorUpdate
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOperatorCommand(operatorID, body.Name)
	if err != nil {
		return err
	}
	if err := s.h.SaveOperator.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOperator handles DELETE /api/v1/operators/{operatorId}.
func (s *Server) DeleteOperator(ctx echo.Context, operatorID servers.OperatorId) error {
	cmd, err := commands.NewRemoveOperatorCommand(operatorID)
	if err != nil {
		return err
	}
	if err := s.h.RemoveOperator.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetVisionStatus handles GET /api/v1/vision/status.
func (s *Server) GetVisionStatus(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toVisionStatus(s.h.GetVisionStatus.Handle(ctx.Request().Context())))
}

// SetVisionKey handles PUT /api/v1/vision/key.
func (s *Server) SetVisionKey(ctx echo.Context) error {
	var body servers.VisionKey
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewSetVisionKeyCommand(body.ApiKey)
	if err != nil {
		return err
	}
	status, err := s.h.SetVisionKey.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toVisionStatus(status))
}

// Board renders the unfiltered order list, as pushed on the live feed.
func (s *Server) Board(ctx context.Context) ([]byte, error) {
	query, err := queries.NewListOrdersQuery(string(servers.GetOrdersParamsStatusAll))
	if err != nil {
		return nil, err
	}
	resp, err := s.h.ListOrders.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return json.Marshal(toOrderList(resp))
}
