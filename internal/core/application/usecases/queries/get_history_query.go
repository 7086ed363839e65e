package queries

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"scantrack/internal/core/domain/services"
	"scantrack/internal/pkg/guard"
)

var ErrGetHistoryQueryIsNotConstructed = errors.New(
	"GetHistoryQuery must be created via NewGetHistoryQuery constructor",
)

// GetHistoryQuery filters completed orders by day range and operator.
//
// Example:
//
//	query, err := NewGetHistoryQuery(&from, &to, "all", "desc")
//	if err != nil {
//	    return err
//	}
//	name, data, err := handler.Export(ctx, query)
type GetHistoryQuery struct {
	from       *time.Time
	to         *time.Time
	operatorID string
	sort       services.SortDirection

	guard guard.ConstructorGuard
}

// NewGetHistoryQuery treats an empty operatorID as services.AllOperators
// and an empty sort as descending.
func NewGetHistoryQuery(from, to *time.Time, operatorID, sort string) (GetHistoryQuery, error) {
	direction, err := services.ParseSortDirection(sort)
	if err != nil {
		return GetHistoryQuery{}, err
	}

	operatorID = strings.TrimSpace(operatorID)
	if operatorID == "" {
		operatorID = services.AllOperators
	}

	return GetHistoryQuery{
		from:       from,
		to:         to,
		operatorID: operatorID,
		sort:       direction,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetHistoryQueryIsNotConstructed)
}

func (q GetHistoryQuery) OperatorID() string {
	return q.operatorID
}

func (q GetHistoryQuery) Sort() services.SortDirection {
	return q.sort
}

type GetHistoryQueryResponse struct {
	Range services.DateRange
	Rows  []services.HistoryRow
}

// GetHistoryQueryHandler serves the history table and its CSV export.
// Unlike the dashboard, an unbounded query covers every completed order.
type GetHistoryQueryHandler struct {
	snapshots  SnapshotSource
	aggregator services.AnalyticsAggregator
	now        func() time.Time
}

func NewGetHistoryQueryHandler(snapshots SnapshotSource, aggregator services.AnalyticsAggregator, now func() time.Time) GetHistoryQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetHistoryQueryHandler{snapshots: snapshots, aggregator: aggregator, now: now}
}

func (h GetHistoryQueryHandler) Handle(_ context.Context, query GetHistoryQuery) (GetHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetHistoryQueryResponse{}, err
	}

	r, err := services.NewDateRange(query.from, query.to, h.aggregator.Location())
	if err != nil {
		return GetHistoryQueryResponse{}, err
	}

	history := h.aggregator.History(h.snapshots.Current().Orders, services.HistoryFilter{
		Range:      r,
		OperatorID: query.operatorID,
		Sort:       query.sort,
	})

	return GetHistoryQueryResponse{Range: r, Rows: h.aggregator.HistoryRows(history)}, nil
}

// Export renders the same rows as Handle into a CSV document and names the
// file after today's date.
func (h GetHistoryQueryHandler) Export(ctx context.Context, query GetHistoryQuery) (string, []byte, error) {
	resp, err := h.Handle(ctx, query)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	if err = services.WriteCSV(&buf, resp.Rows); err != nil {
		return "", nil, err
	}

	return h.aggregator.CSVFileName(h.now()), buf.Bytes(), nil
}
