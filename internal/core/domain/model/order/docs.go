// Package order implements the Order aggregate and its lifecycle.
//
// An order is created by the first scan of an unseen ticket, either parked
// (to be prepared, or pending with an issue) or started straight away by an
// operator. A later scan of a started order completes it. Status is derived,
// never stored, and every time-dependent method takes now explicitly.
package order
