package services_test

import (
	"testing"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/domain/services"
	"scantrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateRange(from, to time.Time) services.DateRange {
	return services.DateRange{From: &from, To: &to}
}

func TestAnalyticsAggregator_EmptySet(t *testing.T) {
	agg := services.NewAnalyticsAggregator(time.UTC)

	d := agg.Dashboard(nil, []operator.Operator{ana}, dateRange(day0, day0))

	assert.Equal(t, "N/A", d.AvgWaitTime)
	assert.Equal(t, "N/A", d.AvgPrepTime)
	assert.Empty(t, d.OperatorPerformance)
	assert.Empty(t, d.CompletedByDay)
	assert.Empty(t, d.CompletedByOperatorName)
	assert.Zero(t, d.TotalOrders)
	require.Len(t, d.StatusDistribution, 4)
	for _, sc := range d.StatusDistribution {
		assert.Zero(t, sc.Count)
		assert.Zero(t, sc.Proportion)
	}
}

func TestAnalyticsAggregator_AveragesOnlyOverCompleted(t *testing.T) {
	agg := services.NewAnalyticsAggregator(time.UTC)
	orders := []*order.Order{
		completed(t, "C1", day0, day0.Add(2*time.Minute), day0.Add(12*time.Minute), ana),
		completed(t, "C2", day0, day0.Add(4*time.Minute), day0.Add(34*time.Minute), bea),
		started(t, "S1", day0, day0.Add(3*time.Hour), ana),
		parked(t, "P1", day0, order.HoldPending),
	}

	d := agg.Dashboard(orders, []operator.Operator{ana, bea, carl}, dateRange(day0, day0))

	assert.Equal(t, 4, d.TotalOrders)
	assert.Equal(t, 2, d.TotalCompleted)
	assert.Equal(t, "3m 0s", d.AvgWaitTime)
	assert.Equal(t, "20m 0s", d.AvgPrepTime)
}

func TestAnalyticsAggregator_SkewedOrderCountsAsZeroPrep(t *testing.T) {
	agg := services.NewAnalyticsAggregator(time.UTC)
	start := day0.Add(4 * time.Minute)
	end := day0.Add(3 * time.Minute)
	skewed, err := order.RestoreOrder(kernel.MustParseOrderID("SK-1"), day0, &start, &end, &bea, order.HoldNone)
	require.NoError(t, err)
	orders := []*order.Order{
		completed(t, "C1", day0, day0.Add(2*time.Minute), day0.Add(22*time.Minute), ana),
		skewed,
	}

	d := agg.Dashboard(orders, []operator.Operator{ana, bea}, dateRange(day0, day0))

	assert.Equal(t, 2, d.TotalCompleted)
	assert.Equal(t, "3m 0s", d.AvgWaitTime)
	assert.Equal(t, "10m 0s", d.AvgPrepTime)
}

func TestAnalyticsAggregator_RangeUsesReferenceTime(t *testing.T) {
	agg := services.NewAnalyticsAggregator(time.UTC)
	prev := day0.AddDate(0, 0, -1)
	next := day0.AddDate(0, 0, 1)

	orders := []*order.Order{
		// created yesterday, completed today: counted today
		completed(t, "X", prev, prev.Add(time.Hour), day0.Add(time.Hour), ana),
		// created today, completed tomorrow: out of today's range
		completed(t, "Y", day0, day0.Add(time.Hour), next.Add(time.Hour), ana),
		parked(t, "Z", kernel.EndOfDay(day0, time.UTC), order.HoldToBePrepared),
		parked(t, "W", kernel.StartOfDay(day0, time.UTC), order.HoldToBePrepared),
		parked(t, "V", next, order.HoldToBePrepared),
	}

	got := agg.FilterByRange(orders, dateRange(day0, day0))
	assert.Equal(t, []string{"X", "Z", "W"}, ids(got))

	open := agg.FilterByRange(orders, services.DateRange{})
	assert.Len(t, open, 5)

	fromOnly := day0
	assert.Equal(t, []string{"X", "Y", "Z", "W", "V"}, ids(agg.FilterByRange(orders, services.DateRange{From: &fromOnly})))

	toOnly := prev
	assert.Empty(t, agg.FilterByRange(orders, services.DateRange{To: &toOnly}))
}

func TestAnalyticsAggregator_RangeInConfiguredZone(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 23:30 UTC on the 10th is already the 11th in Madrid.
	late := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	o := parked(t, "TZ", late, order.HoldToBePrepared)

	day10 := time.Date(2025, 3, 10, 0, 0, 0, 0, madrid)
	day11 := time.Date(2025, 3, 11, 0, 0, 0, 0, madrid)

	agg := services.NewAnalyticsAggregator(madrid)
	assert.Empty(t, agg.FilterByRange([]*order.Order{o}, dateRange(day10, day10)))
	assert.Len(t, agg.FilterByRange([]*order.Order{o}, dateRange(day11, day11)), 1)
}

func TestAnalyticsAggregator_StatusDistribution(t *testing.T) {
	agg := services.NewAnalyticsAggregator(time.UTC)
	orders := []*order.Order{
		completed(t, "C1", day0, day0, day0.Add(time.Minute), ana),
		started(t, "S1", day0, day0, ana),
		parked(t, "T1", day0, order.HoldToBePrepared),
		parked(t, "T2", day0, order.HoldToBePrepared),
	}

	d := agg.Dashboard(orders, nil, dateRange(day0, day0))

	want := []services.StatusCount{
		{Status: order.Completed, Count: 1, Proportion: 0.25},
		{Status: order.InProgress, Count: 1, Proportion: 0.25},
		{Status: order.ToBePrepared, Count: 2, Proportion: 0.5},
		{Status: order.PendingIssue, Count: 0, Proportion: 0},
	}
	assert.Equal(t, want, d.StatusDistribution)
}

func TestAnalyticsAggregator_CompletedByDay(t *testing.T) {
	agg := services.NewAnalyticsAggregator(time.UTC)
	dec31 := time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC)
	jan2 := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	orders := []*order.Order{
		completed(t, "J1", jan2, jan2, jan2.Add(time.Minute), ana),
		completed(t, "D1", dec31, dec31, dec31.Add(time.Minute), ana),
		completed(t, "J2", jan2, jan2, jan2.Add(time.Hour), bea),
		parked(t, "T1", jan2, order.HoldToBePrepared),
	}

	d := agg.Dashboard(orders, nil, services.DateRange{})

	require.Len(t, d.CompletedByDay, 2)
	assert.Equal(t, "31/12", d.CompletedByDay[0].Label)
	assert.Equal(t, 1, d.CompletedByDay[0].Count)
	assert.Equal(t, "02/01", d.CompletedByDay[1].Label)
	assert.Equal(t, 2, d.CompletedByDay[1].Count)
}

func TestAnalyticsAggregator_OperatorRollups(t *testing.T) {
	agg := services.NewAnalyticsAggregator(time.UTC)
	ghost := operator.MustNewOperator("G9", "Ghost")
	orders := []*order.Order{
		completed(t, "A1", day0, day0, day0.Add(10*time.Minute), ana),
		completed(t, "B1", day0, day0, day0.Add(2*time.Minute), bea),
		completed(t, "B2", day0, day0, day0.Add(4*time.Minute), bea),
		completed(t, "G1", day0, day0, day0.Add(time.Minute), ghost),
		started(t, "A2", day0, day0, ana),
	}

	d := agg.Dashboard(orders, []operator.Operator{ana, bea, carl}, dateRange(day0, day0))

	require.Len(t, d.OperatorPerformance, 2)
	assert.Equal(t, "Bea", d.OperatorPerformance[0].Operator.Name())
	assert.Equal(t, 2, d.OperatorPerformance[0].Completed)
	assert.Equal(t, "3m 0s", d.OperatorPerformance[0].AvgPrepTime)
	assert.Equal(t, "Ana", d.OperatorPerformance[1].Operator.Name())
	assert.Equal(t, "10m 0s", d.OperatorPerformance[1].AvgPrepTime)

	assert.Equal(t, []services.NamedCount{
		{Name: "Bea", Count: 2},
		{Name: "Ana", Count: 1},
		{Name: "Ghost", Count: 1},
	}, d.CompletedByOperatorName)
}

func TestAnalyticsAggregator_OperatorSnapshotSurvivesRename(t *testing.T) {
	o := completed(t, "R-1", day0, day0, day0.Add(time.Minute), ana)
	renamed, err := ana.Rename("Ana María")
	require.NoError(t, err)

	d := services.NewAnalyticsAggregator(time.UTC).Dashboard([]*order.Order{o}, []operator.Operator{renamed}, services.DateRange{})

	assert.Equal(t, []services.NamedCount{{Name: "Ana", Count: 1}}, d.CompletedByOperatorName)
	require.Len(t, d.OperatorPerformance, 1)
	assert.Equal(t, "Ana María", d.OperatorPerformance[0].Operator.Name())
	assert.Equal(t, "1m 0s", d.OperatorPerformance[0].AvgPrepTime)
}

func TestAnalyticsAggregator_DefaultRange(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	r := services.NewAnalyticsAggregator(nil).DefaultRange(now)

	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), *r.From)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *r.To)
}

func TestNewDateRange(t *testing.T) {
	from := day0.AddDate(0, 0, 1)
	to := day0

	_, err := services.NewDateRange(&from, &to, time.UTC)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	r, err := services.NewDateRange(&to, &from, time.UTC)
	require.NoError(t, err)
	assert.True(t, r.Contains(day0, time.UTC))

	_, err = services.NewDateRange(nil, &to, time.UTC)
	require.NoError(t, err)
}
