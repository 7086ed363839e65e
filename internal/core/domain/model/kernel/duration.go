package kernel

import (
	"fmt"
	"time"
)

// NotApplicable is rendered wherever a duration or timestamp cannot be computed.
const NotApplicable = "N/A"

// OverdueThreshold is how long an order may wait before it is flagged.
const OverdueThreshold = 24 * time.Hour

// TimestampLayout renders timestamps as "dd/mm, hh:mm:ss".
const TimestampLayout = "02/01, 15:04:05"

// DurationBetween formats end-start. A missing endpoint or an end that
// precedes start yields NotApplicable.
func DurationBetween(start, end *time.Time) string {
	if start == nil || end == nil || end.Before(*start) {
		return NotApplicable
	}
	return FormatDuration(end.Sub(*start))
}

// FormatDuration renders d with the two most significant units:
//
//	>= 1h  "1h 1m"  (seconds dropped)
//	>= 1m  "5m 30s"
//	else   "42s"
//
// Sub-second remainders are truncated. Negative durations yield NotApplicable.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return NotApplicable
	}
	totalSeconds := int64(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// MeanDuration returns the arithmetic mean of ds, or false when ds is empty.
func MeanDuration(ds []time.Duration) (time.Duration, bool) {
	if len(ds) == 0 {
		return 0, false
	}
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total / time.Duration(len(ds)), true
}

// FormatTimestamp renders t in loc using TimestampLayout. nil yields NotApplicable.
func FormatTimestamp(t *time.Time, loc *time.Location) string {
	if t == nil {
		return NotApplicable
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay returns the last representable instant of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
