// Package servers holds the models and echo bindings of the HTTP API
// described by openapi.yml. The layout follows oapi-codegen's echo server
// output so the file can be swapped for a generated one.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for GetDashboardParamsRange.
const (
	Last7Days GetDashboardParamsRange = "last_7_days"
)

// Defines values for GetOrdersParamsStatus.
const (
	GetOrdersParamsStatusAll          GetOrdersParamsStatus = "all"
	GetOrdersParamsStatusCompleted    GetOrdersParamsStatus = "completed"
	GetOrdersParamsStatusOngoing      GetOrdersParamsStatus = "ongoing"
	GetOrdersParamsStatusPending      GetOrdersParamsStatus = "pending"
	GetOrdersParamsStatusToBePrepared GetOrdersParamsStatus = "to_be_prepared"
)

// Defines values for Sort.
const (
	Asc  Sort = "asc"
	Desc Sort = "desc"
)

// Assignment defines model for Assignment.
type Assignment struct {
	OperatorId string `json:"operatorId"`
}

// ClearedHistory defines model for ClearedHistory.
type ClearedHistory struct {
	Deleted int64 `json:"deleted"`
}

// Dashboard defines model for Dashboard.
type Dashboard struct {
	AvgPrepTime         string                `json:"avgPrepTime"`
	AvgWaitTime         string                `json:"avgWaitTime"`
	CompletedByDay      []DayCount            `json:"completedByDay"`
	CompletedByOperator []NamedCount          `json:"completedByOperator"`
	From                *openapi_types.Date   `json:"from,omitempty"`
	OperatorPerformance []OperatorPerformance `json:"operatorPerformance"`
	StatusDistribution  []StatusCount         `json:"statusDistribution"`
	To                  *openapi_types.Date   `json:"to,omitempty"`
	TotalCompleted      int                   `json:"totalCompleted"`
	TotalOrders         int                   `json:"totalOrders"`
}

// DayCount defines model for DayCount.
type DayCount struct {
	Count int                `json:"count"`
	Day   openapi_types.Date `json:"day"`
	Label string             `json:"label"`
}

// Error defines model for Error.
type Error struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Reason  *string `json:"reason,omitempty"`
}

// History defines model for History.
type History struct {
	From *openapi_types.Date `json:"from,omitempty"`
	Rows []HistoryRow        `json:"rows"`
	To   *openapi_types.Date `json:"to,omitempty"`
}

// HistoryRow defines model for HistoryRow.
type HistoryRow struct {
	Creation     string `json:"creation"`
	End          string `json:"end"`
	OperatorId   string `json:"operatorId"`
	OperatorName string `json:"operatorName"`
	OrderId      string `json:"orderId"`
	PrepTime     string `json:"prepTime"`
	Start        string `json:"start"`
	WaitTime     string `json:"waitTime"`
}

// HoldChange defines model for HoldChange.
type HoldChange struct {
	PendingStatus string `json:"pendingStatus"`
}

// NamedCount defines model for NamedCount.
type NamedCount struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

// NewOrderDecision defines model for NewOrderDecision.
type NewOrderDecision struct {
	Action     string  `json:"action"`
	OperatorId *string `json:"operatorId,omitempty"`
}

// Operator defines model for Operator.
type Operator struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// OperatorPerformance defines model for OperatorPerformance.
type OperatorPerformance struct {
	AvgPrepTime string `json:"avgPrepTime"`
	Completed   int    `json:"completed"`
	Name        string `json:"name"`
	OperatorId  string `json:"operatorId"`
}

// OperatorUpdate defines model for OperatorUpdate.
type OperatorUpdate struct {
	Name string `json:"name"`
}

// Order defines model for Order.
type Order struct {
	CreationTime  time.Time  `json:"creationTime"`
	Elapsed       string     `json:"elapsed"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	Id            string     `json:"id"`
	Label         string     `json:"label"`
	OperatorId    *string    `json:"operatorId,omitempty"`
	OperatorName  *string    `json:"operatorName,omitempty"`
	Overdue       bool       `json:"overdue"`
	PendingStatus *string    `json:"pendingStatus,omitempty"`
	PrepTime      string     `json:"prepTime"`
	StartTime     *time.Time `json:"startTime,omitempty"`
	Status        string     `json:"status"`
	Tone          string     `json:"tone"`
	WaitTime      string     `json:"waitTime"`
}

// OrderList defines model for OrderList.
type OrderList struct {
	Counts  map[string]int `json:"counts"`
	Orders  []Order        `json:"orders"`
	Overdue int            `json:"overdue"`
	Version int64          `json:"version"`
}

// ScanOutcome defines model for ScanOutcome.
type ScanOutcome struct {
	Decision  string              `json:"decision"`
	Notice    *string             `json:"notice,omitempty"`
	Order     *Order              `json:"order,omitempty"`
	OrderId   string              `json:"orderId"`
	SessionId *openapi_types.UUID `json:"sessionId,omitempty"`
}

// StatusCount defines model for StatusCount.
type StatusCount struct {
	Count      int     `json:"count"`
	Label      string  `json:"label"`
	Proportion float64 `json:"proportion"`
	Status     string  `json:"status"`
}

// VisionKey defines model for VisionKey.
type VisionKey struct {
	ApiKey string `json:"apiKey"`
}

// VisionStatus defines model for VisionStatus.
type VisionStatus struct {
	Blocked    bool    `json:"blocked"`
	Configured bool    `json:"configured"`
	Model      string  `json:"model"`
	Reason     *string `json:"reason,omitempty"`
}

// ClientId defines model for ClientId.
type ClientId = string

// From defines model for From.
type From = openapi_types.Date

// OperatorFilter defines model for OperatorFilter.
type OperatorFilter = string

// OperatorId defines model for OperatorId.
type OperatorId = string

// OrderId defines model for OrderId.
type OrderId = string

// Sort defines model for Sort.
type Sort string

// To defines model for To.
type To = openapi_types.Date

// GetDashboardParams defines parameters for GetDashboard.
type GetDashboardParams struct {
	From *From `form:"from,omitempty" json:"from,omitempty"`
	To   *To   `form:"to,omitempty" json:"to,omitempty"`

	// Range Preset range replacing from and to.
	Range *GetDashboardParamsRange `form:"range,omitempty" json:"range,omitempty"`
}

// GetDashboardParamsRange defines parameters for GetDashboard.
type GetDashboardParamsRange string

// GetHistoryParams defines parameters for GetHistory.
type GetHistoryParams struct {
	From       *From           `form:"from,omitempty" json:"from,omitempty"`
	To         *To             `form:"to,omitempty" json:"to,omitempty"`
	OperatorId *OperatorFilter `form:"operatorId,omitempty" json:"operatorId,omitempty"`
	Sort       *Sort           `form:"sort,omitempty" json:"sort,omitempty"`
}

// ExportHistoryParams defines parameters for ExportHistory.
type ExportHistoryParams struct {
	From       *From           `form:"from,omitempty" json:"from,omitempty"`
	To         *To             `form:"to,omitempty" json:"to,omitempty"`
	OperatorId *OperatorFilter `form:"operatorId,omitempty" json:"operatorId,omitempty"`
	Sort       *Sort           `form:"sort,omitempty" json:"sort,omitempty"`
}

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	Status *GetOrdersParamsStatus `form:"status,omitempty" json:"status,omitempty"`
}

// GetOrdersParamsStatus defines parameters for GetOrders.
type GetOrdersParamsStatus string

// ServerInterface represents all server handlers.
type ServerInterface interface {

	// (GET /api/v1/dashboard)
	GetDashboard(ctx echo.Context, params GetDashboardParams) error

	// (DELETE /api/v1/history)
	ClearHistory(ctx echo.Context) error

	// (GET /api/v1/history)
	GetHistory(ctx echo.Context, params GetHistoryParams) error

	// (GET /api/v1/history/export)
	ExportHistory(ctx echo.Context, params ExportHistoryParams) error

	// (GET /api/v1/operators)
	GetOperators(ctx echo.Context) error

	// (POST /api/v1/operators)
	CreateOperator(ctx echo.Context) error

	// (DELETE /api/v1/operators/{operatorId})
	DeleteOperator(ctx echo.Context, operatorId OperatorId) error

	// (PUT /api/v1/operators/{operatorId})
	UpdateOperator(ctx echo.Context, operatorId OperatorId) error

	// (GET /api/v1/orders)
	GetOrders(ctx echo.Context, params GetOrdersParams) error

	// (POST /api/v1/orders/{orderId}/finalize)
	FinalizeOrder(ctx echo.Context, orderId OrderId) error

	// (POST /api/v1/orders/{orderId}/hold)
	SetOrderHold(ctx echo.Context, orderId OrderId) error

	// (POST /api/v1/orders/{orderId}/hold/toggle)
	ToggleOrderHold(ctx echo.Context, orderId OrderId) error

	// (POST /api/v1/scans)
	ScanOrder(ctx echo.Context) error

	// (DELETE /api/v1/scans/{clientId})
	CancelScan(ctx echo.Context, clientId ClientId) error

	// (POST /api/v1/scans/{clientId}/assignment)
	AssignOperator(ctx echo.Context, clientId ClientId) error

	// (POST /api/v1/scans/{clientId}/decision)
	DecideNewOrder(ctx echo.Context, clientId ClientId) error

	// (PUT /api/v1/vision/key)
	SetVisionKey(ctx echo.Context) error

	// (GET /api/v1/vision/status)
	GetVisionStatus(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetDashboard converts echo context to params.
func (w *ServerInterfaceWrapper) GetDashboard(ctx echo.Context) error {
	var err error

	var params GetDashboardParams

	err = runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "range", ctx.QueryParams(), &params.Range)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter range: %s", err))
	}

	err = w.Handler.GetDashboard(ctx, params)
	return err
}

// ClearHistory converts echo context to params.
func (w *ServerInterfaceWrapper) ClearHistory(ctx echo.Context) error {
	var err error

	err = w.Handler.ClearHistory(ctx)
	return err
}

// GetHistory converts echo context to params.
func (w *ServerInterfaceWrapper) GetHistory(ctx echo.Context) error {
	var err error

	var params GetHistoryParams

	err = runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "operatorId", ctx.QueryParams(), &params.OperatorId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter operatorId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "sort", ctx.QueryParams(), &params.Sort)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sort: %s", err))
	}

	err = w.Handler.GetHistory(ctx, params)
	return err
}

// ExportHistory converts echo context to params.
func (w *ServerInterfaceWrapper) ExportHistory(ctx echo.Context) error {
	var err error

	var params ExportHistoryParams

	err = runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "operatorId", ctx.QueryParams(), &params.OperatorId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter operatorId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "sort", ctx.QueryParams(), &params.Sort)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sort: %s", err))
	}

	err = w.Handler.ExportHistory(ctx, params)
	return err
}

// GetOperators converts echo context to params.
func (w *ServerInterfaceWrapper) GetOperators(ctx echo.Context) error {
	var err error

	err = w.Handler.GetOperators(ctx)
	return err
}

// CreateOperator converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOperator(ctx echo.Context) error {
	var err error

	err = w.Handler.CreateOperator(ctx)
	return err
}

// DeleteOperator converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOperator(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "operatorId" -------------
	var operatorId OperatorId

	err = runtime.BindStyledParameterWithOptions("simple", "operatorId", ctx.Param("operatorId"), &operatorId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter operatorId: %s", err))
	}

	err = w.Handler.DeleteOperator(ctx, operatorId)
	return err
}

// UpdateOperator converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOperator(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "operatorId" -------------
	var operatorId OperatorId

	err = runtime.BindStyledParameterWithOptions("simple", "operatorId", ctx.Param("operatorId"), &operatorId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter operatorId: %s", err))
	}

	err = w.Handler.UpdateOperator(ctx, operatorId)
	return err
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var err error

	var params GetOrdersParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = w.Handler.GetOrders(ctx, params)
	return err
}

// FinalizeOrder converts echo context to params.
func (w *ServerInterfaceWrapper) FinalizeOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	err = w.Handler.FinalizeOrder(ctx, orderId)
	return err
}

// SetOrderHold converts echo context to params.
func (w *ServerInterfaceWrapper) SetOrderHold(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	err = w.Handler.SetOrderHold(ctx, orderId)
	return err
}

// ToggleOrderHold converts echo context to params.
func (w *ServerInterfaceWrapper) ToggleOrderHold(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	err = w.Handler.ToggleOrderHold(ctx, orderId)
	return err
}

// ScanOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ScanOrder(ctx echo.Context) error {
	var err error

	err = w.Handler.ScanOrder(ctx)
	return err
}

// CancelScan converts echo context to params.
func (w *ServerInterfaceWrapper) CancelScan(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "clientId" -------------
	var clientId ClientId

	err = runtime.BindStyledParameterWithOptions("simple", "clientId", ctx.Param("clientId"), &clientId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter clientId: %s", err))
	}

	err = w.Handler.CancelScan(ctx, clientId)
	return err
}

// AssignOperator converts echo context to params.
func (w *ServerInterfaceWrapper) AssignOperator(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "clientId" -------------
	var clientId ClientId

	err = runtime.BindStyledParameterWithOptions("simple", "clientId", ctx.Param("clientId"), &clientId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter clientId: %s", err))
	}

	err = w.Handler.AssignOperator(ctx, clientId)
	return err
}

// DecideNewOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DecideNewOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "clientId" -------------
	var clientId ClientId

	err = runtime.BindStyledParameterWithOptions("simple", "clientId", ctx.Param("clientId"), &clientId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter clientId: %s", err))
	}

	err = w.Handler.DecideNewOrder(ctx, clientId)
	return err
}

// SetVisionKey converts echo context to params.
func (w *ServerInterfaceWrapper) SetVisionKey(ctx echo.Context) error {
	var err error

	err = w.Handler.SetVisionKey(ctx)
	return err
}

// GetVisionStatus converts echo context to params.
func (w *ServerInterfaceWrapper) GetVisionStatus(ctx echo.Context) error {
	var err error

	err = w.Handler.GetVisionStatus(ctx)
	return err
}

// This is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {

	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/dashboard", wrapper.GetDashboard)
	router.DELETE(baseURL+"/api/v1/history", wrapper.ClearHistory)
	router.GET(baseURL+"/api/v1/history", wrapper.GetHistory)
	router.GET(baseURL+"/api/v1/history/export", wrapper.ExportHistory)
	router.GET(baseURL+"/api/v1/operators", wrapper.GetOperators)
	router.POST(baseURL+"/api/v1/operators", wrapper.CreateOperator)
	router.DELETE(baseURL+"/api/v1/operators/:operatorId", wrapper.DeleteOperator)
	router.PUT(baseURL+"/api/v1/operators/:operatorId", wrapper.UpdateOperator)
	router.GET(baseURL+"/api/v1/orders", wrapper.GetOrders)
	router.POST(baseURL+"/api/v1/orders/:orderId/finalize", wrapper.FinalizeOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/hold", wrapper.SetOrderHold)
	router.POST(baseURL+"/api/v1/orders/:orderId/hold/toggle", wrapper.ToggleOrderHold)
	router.POST(baseURL+"/api/v1/scans", wrapper.ScanOrder)
	router.DELETE(baseURL+"/api/v1/scans/:clientId", wrapper.CancelScan)
	router.POST(baseURL+"/api/v1/scans/:clientId/assignment", wrapper.AssignOperator)
	router.POST(baseURL+"/api/v1/scans/:clientId/decision", wrapper.DecideNewOrder)
	router.PUT(baseURL+"/api/v1/vision/key", wrapper.SetVisionKey)
	router.GET(baseURL+"/api/v1/vision/status", wrapper.GetVisionStatus)

}

//go:embed openapi.yml
var swaggerSpec []byte

var (
	loadSwaggerOnce sync.Once
	loadedSwagger   *openapi3.T
	loadSwaggerErr  error
)

// GetSwagger returns the parsed OpenAPI document of this API.
func GetSwagger() (*openapi3.T, error) {
	loadSwaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		loadedSwagger, loadSwaggerErr = loader.LoadFromData(swaggerSpec)
		if loadSwaggerErr != nil {
			loadSwaggerErr = fmt.Errorf("error loading Swagger: %w", loadSwaggerErr)
		}
	})
	return loadedSwagger, loadSwaggerErr
}
