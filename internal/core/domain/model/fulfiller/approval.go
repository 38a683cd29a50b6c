package fulfiller

import (
	"fmt"

	"pressing/internal/pkg/errs"
)

// ApprovalStatus is the onboarding state of a washer or partner account.
// Only approved accounts may claim or fulfil orders.
type ApprovalStatus int

const (
	// ApprovalUnknown represents an invalid or undefined approval status.
	ApprovalUnknown ApprovalStatus = iota

	// ApprovalPending means the account is awaiting back-office review.
	ApprovalPending

	// ApprovalApproved means the account may participate in the marketplace.
	ApprovalApproved

	// ApprovalRejected means the account was denied.
	ApprovalRejected
)

func getApprovalStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		ApprovalUnknown:  "unknown",
		ApprovalPending:  "pending",
		ApprovalApproved: "approved",
		ApprovalRejected: "rejected",
	}
}

// Validate checks that the ApprovalStatus is one of the defined states.
func (a ApprovalStatus) Validate() error {
	if a == ApprovalUnknown {
		return errs.NewValueIsInvalidErrorWithCause("approval status", fmt.Errorf("%d is not a valid approval status", int(a)))
	}
	if _, ok := getApprovalStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("approval status", fmt.Errorf("%d is not a valid approval status", int(a)))
	}
	return nil
}

// String returns the wire name of the approval status, e.g. "approved".
func (a ApprovalStatus) String() string {
	if str, ok := getApprovalStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// ApprovalFromString parses a wire name back into an ApprovalStatus.
func ApprovalFromString(s string) (ApprovalStatus, error) {
	for status, name := range getApprovalStrings() {
		if name == s && status != ApprovalUnknown {
			return status, nil
		}
	}
	return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause("approval status", fmt.Errorf("%q is not a valid approval status", s))
}
