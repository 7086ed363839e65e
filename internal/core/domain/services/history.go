package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/pkg/errs"
)

// AllOperators disables the operator filter of the history view.
const AllOperators = "all"

// SortDirection orders the history by endTime.
type SortDirection int

const (
	SortDesc SortDirection = iota
	SortAsc
)

// ParseSortDirection accepts "asc" and "desc"; "" means SortDesc.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(s) {
	case "", "desc":
		return SortDesc, nil
	case "asc":
		return SortAsc, nil
	default:
		return SortDesc, errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("%q is not asc or desc", s))
	}
}

func (d SortDirection) String() string {
	if d == SortAsc {
		return "asc"
	}
	return "desc"
}

// HistoryFilter selects completed orders for the history view.
type HistoryFilter struct {
	Range      DateRange
	OperatorID string
	Sort       SortDirection
}

func (f HistoryFilter) matchesOperator(o *order.Order) bool {
	if f.OperatorID == "" || f.OperatorID == AllOperators {
		return true
	}
	op := o.Operator()
	return op != nil && op.ID() == f.OperatorID
}

// History returns completed orders matching f, sorted by endTime.
func (a AnalyticsAggregator) History(orders []*order.Order, f HistoryFilter) []*order.Order {
	out := make([]*order.Order, 0, len(orders))
	for _, o := range completedOnly(orders) {
		if f.Range.Contains(o.ReferenceTime(), a.loc) && f.matchesOperator(o) {
			out = append(out, o)
		}
	}

	slices.SortStableFunc(out, func(x, y *order.Order) int {
		c := x.EndTime().Compare(*y.EndTime())
		if f.Sort == SortDesc {
			return -c
		}
		return c
	})
	return out
}

// HistoryRow is the flat projection of one history order.
type HistoryRow struct {
	OrderID      string
	Creation     string
	Start        string
	End          string
	WaitTime     string
	PrepTime     string
	OperatorID   string
	OperatorName string
}

// CSVHeader is the header row of the history export.
var CSVHeader = []string{
	"ID Pedido",
	"Creación",
	"Inicio Preparación",
	"Fin Preparación",
	"T. Espera",
	"T. Preparación",
	"ID Preparador",
	"Nombre Preparador",
}

func (a AnalyticsAggregator) HistoryRows(orders []*order.Order) []HistoryRow {
	rows := make([]HistoryRow, 0, len(orders))
	for _, o := range orders {
		creation := o.CreationTime()
		row := HistoryRow{
			OrderID:      o.ID().String(),
			Creation:     kernel.FormatTimestamp(&creation, a.loc),
			Start:        kernel.FormatTimestamp(o.StartTime(), a.loc),
			End:          kernel.FormatTimestamp(o.EndTime(), a.loc),
			WaitTime:     o.WaitTime(),
			PrepTime:     o.PrepTime(),
			OperatorID:   kernel.NotApplicable,
			OperatorName: kernel.NotApplicable,
		}
		if op := o.Operator(); op != nil {
			row.OperatorID = op.ID()
			row.OperatorName = op.Name()
		}
		rows = append(rows, row)
	}
	return rows
}

func (r HistoryRow) record() []string {
	return []string{r.OrderID, r.Creation, r.Start, r.End, r.WaitTime, r.PrepTime, r.OperatorID, r.OperatorName}
}

// WriteCSV writes CSVHeader followed by one record per row.
func WriteCSV(w io.Writer, rows []HistoryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFileName is the download name of an export made at now.
func (a AnalyticsAggregator) CSVFileName(now time.Time) string {
	return fmt.Sprintf("historial_pedidos_%s.csv", now.In(a.loc).Format(time.DateOnly))
}
