package order

import (
	"errors"
	"fmt"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned for orders that bypassed NewOrder,
	// NewStartedOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOperatorIsRequired rejects starting an order with no operator selected.
	ErrOperatorIsRequired = errs.NewConflictError("start order", "no operator selected")
)

// Order is the aggregate root tracking one ticket from its first scan to
// completion.
//
// Invariants:
//   - startTime == nil implies endTime == nil
//   - startTime != nil implies operator != nil
//   - the id never changes
//
// endTime >= startTime is not enforced: timestamps may come from writers
// with skewed clocks, and durations render "N/A" in that case.
type Order struct {
	id           kernel.OrderID
	creationTime time.Time
	startTime    *time.Time
	endTime      *time.Time
	operator     *operator.Operator
	hold         Hold
	guard        guard.ConstructorGuard
}

// NewOrder creates an order parked in one of the pre-start states.
func NewOrder(id kernel.OrderID, now time.Time, hold Hold) (*Order, error) {
	var errHold error
	if !hold.IsChoice() {
		errHold = errs.NewValueIsInvalidErrorWithCause("pending status", fmt.Errorf("%d is not a valid initial pending status", hold))
	}
	if err := errors.Join(id.Validate(), errHold); err != nil {
		return nil, err
	}

	return &Order{
		id:           id,
		creationTime: now,
		hold:         hold,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NewStartedOrder creates an order that an operator starts on first scan;
// creationTime equals startTime.
func NewStartedOrder(id kernel.OrderID, op operator.Operator, now time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := op.Validate(); err != nil {
		return nil, ErrOperatorIsRequired
	}

	start := now
	return &Order{
		id:           id,
		creationTime: now,
		startTime:    &start,
		operator:     &op,
		hold:         HoldNone,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder rebuilds an order from storage, checking the structural invariants.
func RestoreOrder(
	id kernel.OrderID,
	creationTime time.Time,
	startTime, endTime *time.Time,
	op *operator.Operator,
	hold Hold,
) (*Order, error) {
	var errEnd, errOperator, errCreation error
	if creationTime.IsZero() {
		errCreation = errs.NewValueIsRequiredError("creation time")
	}
	if startTime == nil && endTime != nil {
		errEnd = errs.NewValueIsInvalidErrorWithCause("end time", errors.New("order cannot end before it starts"))
	}
	if startTime != nil && (op == nil || op.Validate() != nil) {
		errOperator = errs.NewValueIsInvalidErrorWithCause("operator", errors.New("started order must have an operator"))
	}
	if err := errors.Join(id.Validate(), errCreation, errEnd, errOperator); err != nil {
		return nil, err
	}

	o := &Order{
		id:           id,
		creationTime: creationTime,
		startTime:    copyTime(startTime),
		endTime:      copyTime(endTime),
		hold:         hold,
		guard:        guard.NewConstructorGuard(),
	}
	if op != nil {
		opCopy := *op
		o.operator = &opCopy
	}
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) CreationTime() time.Time {
	return o.creationTime
}

func (o *Order) StartTime() *time.Time {
	return copyTime(o.startTime)
}

func (o *Order) EndTime() *time.Time {
	return copyTime(o.endTime)
}

// Operator returns a copy of the assigned operator snapshot, or nil.
func (o *Order) Operator() *operator.Operator {
	if o.operator == nil {
		return nil
	}
	op := *o.operator
	return &op
}

func (o *Order) Hold() Hold {
	return o.hold
}

// Status derives the lifecycle state from (startTime, endTime, hold).
func (o *Order) Status() Status {
	switch {
	case o.endTime != nil:
		return Completed
	case o.startTime != nil:
		return InProgress
	case o.hold == HoldPending:
		return PendingIssue
	default:
		return ToBePrepared
	}
}

// ReferenceTime is the instant used by date range filters: endTime when
// present, creationTime otherwise.
func (o *Order) ReferenceTime() time.Time {
	if o.endTime != nil {
		return *o.endTime
	}
	return o.creationTime
}

// Start assigns the operator and moves a pre-start order to InProgress.
func (o *Order) Start(op operator.Operator, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := op.Validate(); err != nil {
		return ErrOperatorIsRequired
	}
	if err := o.Status().ValidateStart(); err != nil {
		return err
	}

	start := now
	o.startTime = &start
	o.operator = &op
	return nil
}

// Complete stamps endTime on an InProgress order.
func (o *Order) Complete(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.Status().ValidateComplete(); err != nil {
		return err
	}

	end := now
	o.endTime = &end
	return nil
}

// TogglePendingHold flips ToBePrepared and PendingIssue. It reports whether
// anything changed; started orders are left untouched.
func (o *Order) TogglePendingHold() bool {
	if !o.Status().IsPreStart() {
		return false
	}
	o.hold = o.hold.toggled()
	return true
}

// SetHold moves a pre-start order to the given hold. Started orders are
// left untouched and false is returned.
func (o *Order) SetHold(hold Hold) (bool, error) {
	if !hold.IsChoice() {
		return false, errs.NewValueIsInvalidErrorWithCause("pending status", fmt.Errorf("%d is not a valid pending status", hold))
	}
	if !o.Status().IsPreStart() || o.hold == hold {
		return false, nil
	}
	o.hold = hold
	return true, nil
}

// IsOverdue reports a pre-start order waiting longer than kernel.OverdueThreshold.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.Status().IsPreStart() && now.Sub(o.creationTime) > kernel.OverdueThreshold
}

// Elapsed is the live preparation time of an InProgress order.
func (o *Order) Elapsed(now time.Time) string {
	if o.Status() != InProgress {
		return kernel.NotApplicable
	}
	return kernel.DurationBetween(o.startTime, &now)
}

// WaitTime formats startTime - creationTime.
func (o *Order) WaitTime() string {
	return kernel.DurationBetween(&o.creationTime, o.startTime)
}

// PrepTime formats endTime - startTime.
func (o *Order) PrepTime() string {
	return kernel.DurationBetween(o.startTime, o.endTime)
}

// WaitDuration is startTime - creationTime, clamped at zero for skewed
// timestamps; false when not started.
func (o *Order) WaitDuration() (time.Duration, bool) {
	if o.startTime == nil {
		return 0, false
	}
	return max(o.startTime.Sub(o.creationTime), 0), true
}

// PrepDuration is endTime - startTime, clamped at zero for skewed
// timestamps; false when not completed.
func (o *Order) PrepDuration() (time.Duration, bool) {
	if o.startTime == nil || o.endTime == nil {
		return 0, false
	}
	return max(o.endTime.Sub(*o.startTime), 0), true
}

// Clone returns an independent copy, so snapshot readers cannot mutate shared state.
func (o *Order) Clone() *Order {
	c := *o
	c.startTime = copyTime(o.startTime)
	c.endTime = copyTime(o.endTime)
	c.operator = o.Operator()
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
