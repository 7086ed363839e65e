// Package kernel holds the value objects shared by the order tracker's domain.
//
//   - OrderID: the sanitized identifier read off an order ticket
//   - UUID: generated identifiers for scan sessions and change events
//   - duration helpers: the single formatter used for wait, prep and live
//     elapsed times, plus calendar-day bounds for range filters
package kernel
