package fulfiller

import (
	"errors"
	"fmt"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
)

// ErrPartnerIsNotConstructed is returned when a Partner instance was not
// created through NewPartner or RestorePartner.
var ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner or RestorePartner")

// Partner is a storefront pressing that fulfils orders at a fixed location.
//
// The commission tier is the platform's cut of a completed order's total for
// this partner, expressed as a fraction in [0, 1); the partner receives
// (1 − tier) × total at completion.
type Partner struct {
	id               kernel.UUID
	name             string
	approval         ApprovalStatus
	commissionTier   float64
	payoutAccountRef string

	isConstructed bool
}

// NewPartner creates a partner awaiting back-office approval.
func NewPartner(id kernel.UUID, name string, commissionTier float64, payoutAccountRef string) (*Partner, error) {
	p := &Partner{
		approval:         ApprovalPending,
		payoutAccountRef: payoutAccountRef,
		isConstructed:    true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setCommissionTier(commissionTier),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePartner reconstructs a Partner from persistence.
func RestorePartner(
	id kernel.UUID,
	name string,
	approval ApprovalStatus,
	commissionTier float64,
	payoutAccountRef string,
) (*Partner, error) {
	p := &Partner{
		payoutAccountRef: payoutAccountRef,
		isConstructed:    true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setCommissionTier(commissionTier),
		approval.Validate(),
	); err != nil {
		return nil, err
	}

	p.approval = approval
	return p, nil
}

// Validate ensures the Partner instance was created through a constructor.
func (p *Partner) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartnerIsNotConstructed
	}
	return nil
}

// ID returns the partner's unique identifier.
func (p *Partner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *Partner) Name() string {
	return p.name
}

// Approval returns the onboarding state.
func (p *Partner) Approval() ApprovalStatus {
	return p.approval
}

// CommissionTier returns the platform's cut for this partner in [0, 1).
func (p *Partner) CommissionTier() float64 {
	return p.commissionTier
}

// PayoutAccountRef returns the external payment-provider account id.
func (p *Partner) PayoutAccountRef() string {
	return p.payoutAccountRef
}

// CanClaim reports whether the partner may take orders right now.
func (p *Partner) CanClaim() bool {
	return p.approval == ApprovalApproved
}

// Approve marks the partner as approved for the marketplace.
func (p *Partner) Approve() {
	p.approval = ApprovalApproved
}

// Reject denies the partner's onboarding.
func (p *Partner) Reject() {
	p.approval = ApprovalRejected
}

func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Partner) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Partner) setCommissionTier(tier float64) error {
	if tier < 0 || tier >= 1 {
		return errs.NewValueIsOutOfRangeError("commission tier", fmt.Sprintf("%.2f", tier), 0, 1)
	}
	p.commissionTier = tier
	return nil
}
