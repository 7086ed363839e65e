package order

import (
	"fmt"

	"scantrack/internal/pkg/errs"
)

// Hold is the pre-start flag chosen when an unseen order is first scanned.
// It is kept in storage after the order starts but no longer affects status.
type Hold int

const (
	// HoldNone is stored for orders created and started in the same step.
	HoldNone Hold = iota
	HoldToBePrepared
	HoldPending
)

const (
	holdToBePreparedValue = "por_preparar"
	holdPendingValue      = "pendiente"
)

// ParseHold accepts the persisted values "por_preparar" and "pendiente".
// The empty string maps to HoldNone.
func ParseHold(s string) (Hold, error) {
	switch s {
	case "":
		return HoldNone, nil
	case holdToBePreparedValue:
		return HoldToBePrepared, nil
	case holdPendingValue:
		return HoldPending, nil
	default:
		return HoldNone, errs.NewValueIsInvalidErrorWithCause("pending status", fmt.Errorf("%q is not a valid pending status", s))
	}
}

func (h Hold) String() string {
	switch h {
	case HoldToBePrepared:
		return holdToBePreparedValue
	case HoldPending:
		return holdPendingValue
	default:
		return ""
	}
}

// IsChoice reports whether h is one of the two values a user can pick.
func (h Hold) IsChoice() bool {
	return h == HoldToBePrepared || h == HoldPending
}

func (h Hold) toggled() Hold {
	if h == HoldPending {
		return HoldToBePrepared
	}
	return HoldPending
}
