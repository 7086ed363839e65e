package services

import (
	"cmp"
	"slices"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"
)

// UnassignedOperatorName labels completed orders without an operator snapshot.
const UnassignedOperatorName = "No asignado"

// DefaultDashboardDays is the span of the preset dashboard range.
const DefaultDashboardDays = 7

const dayLabelLayout = "02/01"

type StatusCount struct {
	Status     order.Status
	Count      int
	Proportion float64
}

type DayCount struct {
	Day   time.Time
	Label string
	Count int
}

type NamedCount struct {
	Name  string
	Count int
}

type OperatorPerformance struct {
	Operator    operator.Operator
	Completed   int
	AvgPrepTime string
}

// Dashboard is the statistics view over one date range.
type Dashboard struct {
	Range                   DateRange
	TotalOrders             int
	TotalCompleted          int
	AvgWaitTime             string
	AvgPrepTime             string
	StatusDistribution      []StatusCount
	CompletedByDay          []DayCount
	CompletedByOperatorName []NamedCount
	OperatorPerformance     []OperatorPerformance
}

// AnalyticsAggregator derives dashboard and history views from a snapshot.
// Calendar days are evaluated in loc.
type AnalyticsAggregator struct {
	loc *time.Location
}

func NewAnalyticsAggregator(loc *time.Location) AnalyticsAggregator {
	if loc == nil {
		loc = time.UTC
	}
	return AnalyticsAggregator{loc: loc}
}

func (a AnalyticsAggregator) Location() *time.Location {
	return a.loc
}

// DefaultRange is the last DefaultDashboardDays days ending today.
func (a AnalyticsAggregator) DefaultRange(now time.Time) DateRange {
	return LastDays(now, DefaultDashboardDays, a.loc)
}

// FilterByRange keeps orders whose reference time (endTime, else
// creationTime) falls within r.
func (a AnalyticsAggregator) FilterByRange(orders []*order.Order, r DateRange) []*order.Order {
	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if r.Contains(o.ReferenceTime(), a.loc) {
			out = append(out, o)
		}
	}
	return out
}

// Dashboard computes every dashboard statistic over the orders in r.
// Averages and rollups only consider completed orders; the status
// distribution covers the whole filtered set.
func (a AnalyticsAggregator) Dashboard(orders []*order.Order, operators []operator.Operator, r DateRange) Dashboard {
	filtered := a.FilterByRange(orders, r)
	completed := completedOnly(filtered)

	return Dashboard{
		Range:                   r,
		TotalOrders:             len(filtered),
		TotalCompleted:          len(completed),
		AvgWaitTime:             formatMean(collect(completed, (*order.Order).WaitDuration)),
		AvgPrepTime:             formatMean(collect(completed, (*order.Order).PrepDuration)),
		StatusDistribution:      statusDistribution(filtered),
		CompletedByDay:          a.completedByDay(completed),
		CompletedByOperatorName: completedByOperatorName(completed),
		OperatorPerformance:     operatorPerformance(completed, operators),
	}
}

func completedOnly(orders []*order.Order) []*order.Order {
	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status() == order.Completed {
			out = append(out, o)
		}
	}
	return out
}

func collect(orders []*order.Order, measure func(*order.Order) (time.Duration, bool)) []time.Duration {
	out := make([]time.Duration, 0, len(orders))
	for _, o := range orders {
		if d, ok := measure(o); ok {
			out = append(out, d)
		}
	}
	return out
}

func formatMean(ds []time.Duration) string {
	mean, ok := kernel.MeanDuration(ds)
	if !ok {
		return kernel.NotApplicable
	}
	return kernel.FormatDuration(mean)
}

func statusDistribution(orders []*order.Order) []StatusCount {
	counts := make(map[order.Status]int, 4)
	for _, o := range orders {
		counts[o.Status()]++
	}

	out := make([]StatusCount, 0, 4)
	for _, s := range []order.Status{order.Completed, order.InProgress, order.ToBePrepared, order.PendingIssue} {
		sc := StatusCount{Status: s, Count: counts[s]}
		if len(orders) > 0 {
			sc.Proportion = float64(sc.Count) / float64(len(orders))
		}
		out = append(out, sc)
	}
	return out
}

func (a AnalyticsAggregator) completedByDay(completed []*order.Order) []DayCount {
	byDay := make(map[time.Time]int)
	for _, o := range completed {
		byDay[kernel.StartOfDay(*o.EndTime(), a.loc)]++
	}

	out := make([]DayCount, 0, len(byDay))
	for day, n := range byDay {
		out = append(out, DayCount{Day: day, Label: day.Format(dayLabelLayout), Count: n})
	}
	slices.SortFunc(out, func(x, y DayCount) int { return x.Day.Compare(y.Day) })
	return out
}

func completedByOperatorName(completed []*order.Order) []NamedCount {
	byName := make(map[string]int)
	for _, o := range completed {
		name := UnassignedOperatorName
		if op := o.Operator(); op != nil {
			name = op.Name()
		}
		byName[name]++
	}

	out := make([]NamedCount, 0, len(byName))
	for name, n := range byName {
		out = append(out, NamedCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(x, y NamedCount) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})
	return out
}

// operatorPerformance rolls completed orders up per known operator, matched
// by operator id. Operators without completed orders are omitted.
func operatorPerformance(completed []*order.Order, operators []operator.Operator) []OperatorPerformance {
	out := make([]OperatorPerformance, 0, len(operators))
	for _, op := range operators {
		var mine []*order.Order
		for _, o := range completed {
			if assigned := o.Operator(); assigned != nil && assigned.ID() == op.ID() {
				mine = append(mine, o)
			}
		}
		if len(mine) == 0 {
			continue
		}
		out = append(out, OperatorPerformance{
			Operator:    op,
			Completed:   len(mine),
			AvgPrepTime: formatMean(collect(mine, (*order.Order).PrepDuration)),
		})
	}

	slices.SortStableFunc(out, func(x, y OperatorPerformance) int {
		if c := cmp.Compare(y.Completed, x.Completed); c != 0 {
			return c
		}
		return cmp.Compare(x.Operator.Name(), y.Operator.Name())
	})
	return out
}
