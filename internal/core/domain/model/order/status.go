package order

import (
	"fmt"

	"scantrack/internal/pkg/errs"
)

// Status is the derived lifecycle state of an order. It is never stored:
// Order.Status computes it from the timestamps and the hold flag.
//
// State transitions:
//
//	ToBePrepared <──> PendingIssue      (manual, pre-start only)
//	      │                │
//	      └──────┬─────────┘
//	             v
//	         InProgress ──> Completed   (second scan or finalize)
//
// Completed is terminal.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// ToBePrepared is a scanned order waiting for an operator.
	ToBePrepared

	// PendingIssue is a scanned order put on hold because of an incident.
	PendingIssue

	// InProgress means an operator started preparing the order.
	InProgress

	// Completed means preparation finished.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "unknown",
		ToBePrepared: "to_be_prepared",
		PendingIssue: "pending_issue",
		InProgress:   "in_progress",
		Completed:    "completed",
	}
}

// AllStatuses lists the valid statuses in declaration order.
func AllStatuses() []Status {
	return []Status{ToBePrepared, PendingIssue, InProgress, Completed}
}

func (s Status) Validate() error {
	if s < ToBePrepared || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsPreStart reports whether no operator has started the order yet.
func (s Status) IsPreStart() bool {
	return s == ToBePrepared || s == PendingIssue
}

// ValidateStart checks that an operator may start an order in this status.
func (s Status) ValidateStart() error {
	if !s.IsPreStart() {
		return errs.NewConflictErrorWithCause(
			"start order",
			"order was already started",
			fmt.Errorf("%s is not a valid status to start", s),
		)
	}
	return nil
}

// ValidateComplete checks that an order in this status may be completed.
func (s Status) ValidateComplete() error {
	if s != InProgress {
		return errs.NewConflictErrorWithCause(
			"complete order",
			"order is not in progress",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return nil
}

// Display is presentation metadata for a status badge.
type Display struct {
	Label string
	Tone  string
}

// Display maps the status to its badge. Overdue pre-start orders get the
// "(Retrasado)" suffix and a red tone.
func (s Status) Display(overdue bool) Display {
	var d Display
	switch s {
	case ToBePrepared:
		d = Display{Label: "Por Preparar", Tone: "blue"}
	case PendingIssue:
		d = Display{Label: "Pendiente", Tone: "gray"}
	case InProgress:
		return Display{Label: "En Proceso", Tone: "yellow"}
	case Completed:
		return Display{Label: "Completado", Tone: "green"}
	default:
		return Display{Label: "Desconocido", Tone: "gray"}
	}
	if overdue {
		d.Label += " (Retrasado)"
		d.Tone = "red"
	}
	return d
}
