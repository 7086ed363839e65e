package services

import (
	"fmt"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/pkg/errs"
)

// DateRange is an inclusive range of calendar days. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// NewDateRange rejects a From day after the To day.
func NewDateRange(from, to *time.Time, loc *time.Location) (DateRange, error) {
	if from != nil && to != nil && kernel.StartOfDay(*from, loc).After(kernel.StartOfDay(*to, loc)) {
		return DateRange{}, errs.NewValueIsInvalidErrorWithCause(
			"date range",
			fmt.Errorf("from %s is after to %s", from.Format(time.DateOnly), to.Format(time.DateOnly)),
		)
	}
	return DateRange{From: from, To: to}, nil
}

// LastDays is the range ending today and spanning n calendar days.
func LastDays(now time.Time, n int, loc *time.Location) DateRange {
	to := kernel.StartOfDay(now, loc)
	from := to.AddDate(0, 0, -(n - 1))
	return DateRange{From: &from, To: &to}
}

// Contains checks t against [startOfDay(From), endOfDay(To)] in loc.
func (r DateRange) Contains(t time.Time, loc *time.Location) bool {
	if r.From != nil && t.Before(kernel.StartOfDay(*r.From, loc)) {
		return false
	}
	if r.To != nil && t.After(kernel.EndOfDay(*r.To, loc)) {
		return false
	}
	return true
}
