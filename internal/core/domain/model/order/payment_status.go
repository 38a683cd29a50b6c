package order

import (
	"fmt"

	"pressing/internal/pkg/errs"
)

// PaymentStatus tracks the provider-side payment state of an order.
// It is mutated only by the payment reconciler, never by order actors.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentUnpaid is the initial state: no completed checkout session exists.
	PaymentUnpaid

	// PaymentPaid means the provider reported a completed checkout.
	PaymentPaid

	// PaymentFailed means the provider reported a failed or expired payment.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		PaymentUnpaid:  "unpaid",
		PaymentPaid:    "paid",
		PaymentFailed:  "failed",
	}
}

// Validate checks that the PaymentStatus value is one of the defined states.
func (p PaymentStatus) Validate() error {
	if p == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", int(p)))
	}
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", int(p)))
	}
	return nil
}

// String returns the wire name of the payment status, e.g. "unpaid".
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatusFromString parses a wire name back into a PaymentStatus.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if name == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid payment status", s))
}
