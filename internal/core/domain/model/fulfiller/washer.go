package fulfiller

import (
	"errors"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
)

// ErrWasherIsNotConstructed is returned when a Washer instance was not created
// through NewWasher or RestoreWasher.
var ErrWasherIsNotConstructed = errors.New("Washer must be created via NewWasher or RestoreWasher")

// Washer is an individual fulfiller who claims orders without a storefront.
//
// A washer is eligible to claim when approved and available. Availability is
// self-managed (the washer toggles it); approval is back-office managed.
// The payout account reference points at the washer's account with the
// external payment provider and is required before completion payouts.
type Washer struct {
	id               kernel.UUID
	name             string
	approval         ApprovalStatus
	isAvailable      bool
	payoutAccountRef string

	isConstructed bool
}

// NewWasher creates a washer awaiting back-office approval, unavailable
// until they opt in.
func NewWasher(id kernel.UUID, name string, payoutAccountRef string) (*Washer, error) {
	w := &Washer{
		approval:         ApprovalPending,
		payoutAccountRef: payoutAccountRef,
		isConstructed:    true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWasher reconstructs a Washer from persistence.
func RestoreWasher(
	id kernel.UUID,
	name string,
	approval ApprovalStatus,
	isAvailable bool,
	payoutAccountRef string,
) (*Washer, error) {
	w := &Washer{
		isAvailable:      isAvailable,
		payoutAccountRef: payoutAccountRef,
		isConstructed:    true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		approval.Validate(),
	); err != nil {
		return nil, err
	}

	w.approval = approval
	return w, nil
}

// Validate ensures the Washer instance was created through a constructor.
func (w *Washer) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWasherIsNotConstructed
	}
	return nil
}

// ID returns the washer's unique identifier.
func (w *Washer) ID() kernel.UUID {
	return w.id
}

// Name returns the washer's display name.
func (w *Washer) Name() string {
	return w.name
}

// Approval returns the onboarding state.
func (w *Washer) Approval() ApprovalStatus {
	return w.approval
}

// IsAvailable reports whether the washer is accepting new orders.
func (w *Washer) IsAvailable() bool {
	return w.isAvailable
}

// PayoutAccountRef returns the external payment-provider account id.
func (w *Washer) PayoutAccountRef() string {
	return w.payoutAccountRef
}

// CanClaim reports whether the washer may claim orders right now.
func (w *Washer) CanClaim() bool {
	return w.approval == ApprovalApproved && w.isAvailable
}

// Approve marks the washer as approved for the marketplace.
func (w *Washer) Approve() {
	w.approval = ApprovalApproved
}

// Reject denies the washer's onboarding and withdraws availability.
func (w *Washer) Reject() {
	w.approval = ApprovalRejected
	w.isAvailable = false
}

// SetAvailable toggles whether the washer is accepting new orders.
func (w *Washer) SetAvailable(available bool) {
	w.isAvailable = available
}

func (w *Washer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Washer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}
