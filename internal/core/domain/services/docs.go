// Package services holds the pure domain services of the order tracker.
//
//   - ScanResolver: decides what a scan of an order id triggers
//   - OrderSorter: the display order of the order list
//   - AnalyticsAggregator: dashboard statistics, history and CSV projection
//
// Every service works on a snapshot passed in by the caller and takes the
// current time as an argument. None of them keeps state between calls.
package services
