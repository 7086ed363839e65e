// Package operator models the people who prepare orders.
//
// An Operator is a value: assigning one to an order copies its id and name
// into the order, so renaming or removing an operator never rewrites history.
package operator
