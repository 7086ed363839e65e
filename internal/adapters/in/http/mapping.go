package http

import (
	"time"

	"scantrack/internal/core/application/usecases/commands"
	"scantrack/internal/core/application/usecases/queries"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/domain/services"
	"scantrack/internal/core/ports"
	"scantrack/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toOrder(v queries.OrderView) servers.Order {
	return servers.Order{
		Id:            v.ID,
		Status:        v.Status.String(),
		Label:         v.Display.Label,
		Tone:          v.Display.Tone,
		Overdue:       v.Overdue,
		PendingStatus: optional(v.PendingStatus),
		CreationTime:  v.CreationTime,
		StartTime:     v.StartTime,
		EndTime:       v.EndTime,
		OperatorId:    optional(v.OperatorID),
		OperatorName:  optional(v.OperatorName),
		Elapsed:       v.Elapsed,
		WaitTime:      v.WaitTime,
		PrepTime:      v.PrepTime,
	}
}

func toOrderAt(o *order.Order, now time.Time) servers.Order {
	return toOrder(queries.NewOrderView(o, now))
}

func toOrderList(resp queries.ListOrdersResponse) servers.OrderList {
	list := servers.OrderList{
		Orders:  make([]servers.Order, 0, len(resp.Orders)),
		Counts:  make(map[string]int, len(resp.Counts)),
		Overdue: resp.Overdue,
		Version: int64(resp.Version), //nolint:gosec // versions never reach MaxInt64
	}
	for _, v := range resp.Orders {
		list.Orders = append(list.Orders, toOrder(v))
	}
	for f, n := range resp.Counts {
		list.Counts[string(f)] = n
	}
	return list
}

func toScanOutcome(res commands.ScanResult, now time.Time) servers.ScanOutcome {
	out := servers.ScanOutcome{
		OrderId:  res.OrderID.String(),
		Decision: res.Decision.String(),
		Notice:   optional(res.Notice),
	}
	if res.Decision.NeedsUserInput() {
		id := res.SessionID.Bytes()
		out.SessionId = &id
	}
	if res.Order != nil {
		o := toOrderAt(res.Order, now)
		out.Order = &o
	}
	return out
}

func toOperators(ops []operator.Operator) []servers.Operator {
	out := make([]servers.Operator, 0, len(ops))
	for _, op := range ops {
		out = append(out, servers.Operator{Id: op.ID(), Name: op.Name()})
	}
	return out
}

func toDashboard(d services.Dashboard) servers.Dashboard {
	out := servers.Dashboard{
		From:                toDate(d.Range.From),
		To:                  toDate(d.Range.To),
		TotalOrders:         d.TotalOrders,
		TotalCompleted:      d.TotalCompleted,
		AvgWaitTime:         d.AvgWaitTime,
		AvgPrepTime:         d.AvgPrepTime,
		StatusDistribution:  make([]servers.StatusCount, 0, len(d.StatusDistribution)),
		CompletedByDay:      make([]servers.DayCount, 0, len(d.CompletedByDay)),
		CompletedByOperator: make([]servers.NamedCount, 0, len(d.CompletedByOperatorName)),
		OperatorPerformance: make([]servers.OperatorPerformance, 0, len(d.OperatorPerformance)),
	}
	for _, s := range d.StatusDistribution {
		out.StatusDistribution = append(out.StatusDistribution, servers.StatusCount{
			Status:     s.Status.String(),
			Label:      s.Status.Display(false).Label,
			Count:      s.Count,
			Proportion: s.Proportion,
		})
	}
	for _, day := range d.CompletedByDay {
		out.CompletedByDay = append(out.CompletedByDay, servers.DayCount{
			Day:   openapi_types.Date{Time: day.Day},
			Label: day.Label,
			Count: day.Count,
		})
	}
	for _, n := range d.CompletedByOperatorName {
		out.CompletedByOperator = append(out.CompletedByOperator, servers.NamedCount{Name: n.Name, Count: n.Count})
	}
	for _, p := range d.OperatorPerformance {
		out.OperatorPerformance = append(out.OperatorPerformance, servers.OperatorPerformance{
			OperatorId:  p.Operator.ID(),
			Name:        p.Operator.Name(),
			Completed:   p.Completed,
			AvgPrepTime: p.AvgPrepTime,
		})
	}
	return out
}

func toHistory(resp queries.GetHistoryQueryResponse) servers.History {
	out := servers.History{
		From: toDate(resp.Range.From),
		To:   toDate(resp.Range.To),
		Rows: make([]servers.HistoryRow, 0, len(resp.Rows)),
	}
	for _, r := range resp.Rows {
		out.Rows = append(out.Rows, servers.HistoryRow{
			OrderId:      r.OrderID,
			Creation:     r.Creation,
			Start:        r.Start,
			End:          r.End,
			WaitTime:     r.WaitTime,
			PrepTime:     r.PrepTime,
			OperatorId:   r.OperatorID,
			OperatorName: r.OperatorName,
		})
	}
	return out
}

func toVisionStatus(s ports.VisionStatus) servers.VisionStatus {
	out := servers.VisionStatus{
		Configured: s.Configured,
		Blocked:    s.Blocked,
		Model:      s.Model,
	}
	if s.Blocked {
		reason := s.Reason.String()
		out.Reason = &reason
	}
	return out
}

func fromDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
