package order

import (
	"fmt"

	"pressing/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// Orders move through a state machine shared by three actors (client,
// partner, washer) plus the payment reconciler and background sweeps:
//
//	pending ──> confirmed ──> assigned ──> in_progress ──> ready ──> completed
//	   │            │             │
//	   └── failed_payment         └──────────── cancelled (from any non-terminal state)
//
// Completed and Cancelled are terminal. The full authority over which actor
// may take which edge lives in the transition table (transitions.go), not in
// this type.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the order exists but has not been paid.
	StatusPending

	// StatusConfirmed means payment completed; the order is visible to claimants.
	StatusConfirmed

	// StatusAssigned means exactly one washer or partner owns the order.
	StatusAssigned

	// StatusInProgress means the fulfiller has weighed the laundry and started work.
	StatusInProgress

	// StatusReady means the laundry is processed and awaiting handover.
	StatusReady

	// StatusCompleted means the order was delivered back to the client. Terminal.
	StatusCompleted

	// StatusCancelled is the terminal state for abandoned or rejected orders.
	// Cancellation is a status, never a row deletion.
	StatusCancelled

	// StatusFailedPayment marks an order whose payment attempt failed.
	// The client may retry payment (back to confirmed) or cancel.
	StatusFailedPayment
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:       "unknown",
		StatusPending:       "pending",
		StatusConfirmed:     "confirmed",
		StatusAssigned:      "assigned",
		StatusInProgress:    "in_progress",
		StatusReady:         "ready",
		StatusCompleted:     "completed",
		StatusCancelled:     "cancelled",
		StatusFailedPayment: "failed_payment",
	}
}

// Validate checks that the Status value is one of the defined lifecycle states.
// StatusUnknown and out-of-range values are invalid. Used when reconstructing
// orders from persistence or parsing statuses from external input.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the wire name of the status, e.g. "in_progress".
// Safe to call on any value; invalid statuses format as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire status name into a Status value.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transitions are defined from the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
