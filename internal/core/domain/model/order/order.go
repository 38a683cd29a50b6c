package order

import (
	"errors"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrIllegalTransition is returned when the requested status edge is not
	// defined by the transition table for the order's current status.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrUnauthorized is returned when the edge exists but the acting role
	// (or the acting fulfiller's identity) is not allowed to take it.
	ErrUnauthorized = errors.New("actor is not authorized for this transition")

	// ErrStaleWrite is returned when a persisted order changed between read and
	// write. The caller must re-read before retrying.
	ErrStaleWrite = errors.New("order was modified concurrently")

	// ErrAlreadyClaimed is the expected outcome of losing a claim race: another
	// fulfiller took the order first. Not a system fault.
	ErrAlreadyClaimed = errors.New("order is already claimed")

	// ErrPromoAlreadyApplied is returned when a promo code is applied to an
	// order that already carries one.
	ErrPromoAlreadyApplied = errors.New("order already has a promo code applied")

	// ErrPromoBeforePayment is returned when a promo code is applied to an
	// order that has not been paid yet. Redemption before payment would burn
	// the code's usage budget on an order that may never be fulfilled.
	ErrPromoBeforePayment = errors.New("promo codes apply only to paid orders")
)

// Order is the aggregate root for a single pressing request, tracked from
// creation through claiming, weighing, and payment to completion.
//
// Invariants:
//   - washerID and partnerID are mutually exclusive fulfilment paths; at most
//     one is ever set, and only a claim or an explicit release changes them.
//   - status moves only along edges of the transition table, checked per role.
//   - version increases monotonically with every persisted mutation; the
//     repository uses it for optimistic concurrency (ErrStaleWrite).
//   - weightKg is positive; totalPrice and discountAmount are never negative.
//
// Every transition appends a StatusChange that the repository flushes to the
// audit history in the same transaction as the order row.
type Order struct {
	id       kernel.UUID
	clientID kernel.UUID

	partnerID *kernel.UUID
	washerID  *kernel.UUID

	serviceType    ServiceType
	weightKg       float64
	totalPrice     kernel.Money
	discountAmount kernel.Money
	promoCodeID    *kernel.UUID

	status        Status
	paymentStatus PaymentStatus

	// version is the persisted optimistic-concurrency counter. The repository
	// bumps it on every successful UPDATE; the aggregate only carries it.
	version int64

	createdAt   time.Time
	updatedAt   time.Time
	assignedAt  *time.Time
	completedAt *time.Time

	statusChanges []StatusChange

	isConstructed bool
}

// NewOrder creates a new Order in pending/unpaid state with the client's
// weight estimate and the price computed from it. The estimate is replaced
// at weigh-in; the initial price exists so checkout can be created before
// the laundry is weighed.
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	serviceType ServiceType,
	estimatedWeightKg float64,
	initialTotal kernel.Money,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentUnpaid,
		totalPrice:    initialTotal,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setServiceType(serviceType),
		o.setWeight(estimatedWeightKg),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without replaying its
// history. It re-validates the aggregate invariants so corrupt rows cannot
// enter the domain model.
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	partnerID *kernel.UUID,
	washerID *kernel.UUID,
	serviceType ServiceType,
	weightKg float64,
	totalPrice kernel.Money,
	discountAmount kernel.Money,
	promoCodeID *kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
	assignedAt *time.Time,
	completedAt *time.Time,
) (*Order, error) {
	o := &Order{
		partnerID:      partnerID,
		washerID:       washerID,
		totalPrice:     totalPrice,
		discountAmount: discountAmount,
		promoCodeID:    promoCodeID,
		status:         status,
		paymentStatus:  paymentStatus,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		assignedAt:     assignedAt,
		completedAt:    completedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setServiceType(serviceType),
		o.setWeight(weightKg),
		status.Validate(),
		paymentStatus.Validate(),
		o.validateFulfillerConsistency(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the identifier of the client who created the order.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// PartnerID returns the assigned partner's ID, or nil.
func (o *Order) PartnerID() *kernel.UUID {
	return o.partnerID
}

// WasherID returns the assigned washer's ID, or nil.
func (o *Order) WasherID() *kernel.UUID {
	return o.washerID
}

// ServiceType returns the pressing service tier.
func (o *Order) ServiceType() ServiceType {
	return o.serviceType
}

// WeightKg returns the current weight: the client's estimate until weigh-in,
// the measured weight afterwards.
func (o *Order) WeightKg() float64 {
	return o.weightKg
}

// TotalPrice returns the current tax-inclusive total.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// DiscountAmount returns the applied promo discount, zero when none.
func (o *Order) DiscountAmount() kernel.Money {
	return o.discountAmount
}

// PromoCodeID returns the applied promo code's ID, or nil.
func (o *Order) PromoCodeID() *kernel.UUID {
	return o.promoCodeID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the provider-side payment state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Version returns the optimistic-concurrency counter loaded from persistence.
func (o *Order) Version() int64 {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AssignedAt returns when the order was claimed, or nil.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// CompletedAt returns when the order was completed, or nil.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Fulfiller returns the assigned fulfiller's id and role, or (nil, RoleUnknown)
// when the order is unclaimed.
func (o *Order) Fulfiller() (*kernel.UUID, Role) {
	switch {
	case o.washerID != nil:
		return o.washerID, RoleWasher
	case o.partnerID != nil:
		return o.partnerID, RolePartner
	default:
		return nil, RoleUnknown
	}
}

// PopStatusChanges drains the status changes recorded since the aggregate was
// loaded. Handlers stage them into the transactional outbox.
func (o *Order) PopStatusChanges() []StatusChange {
	changes := o.statusChanges
	o.statusChanges = nil
	return changes
}

// TransitionTo moves the order along one edge of the state machine.
//
// It fails with ErrIllegalTransition when the edge is not defined from the
// current status, and with ErrUnauthorized when the role may not take the
// edge or a fulfiller-bound edge is attempted by a fulfiller other than the
// assigned one. Completion stamps completedAt.
//
// The claim edge (confirmed→assigned) is rejected here: it must go through
// Claim so the conditional write stays the single source of truth.
func (o *Order) TransitionTo(target Status, role Role, actorID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := errors.Join(target.Validate(), role.Validate()); err != nil {
		return err
	}

	if o.status == StatusConfirmed && target == StatusAssigned {
		return fmt.Errorf("%w: claiming must go through the claim operation", ErrIllegalTransition)
	}

	return o.applyTransition(target, role, actorID, now)
}

// Claim assigns the order to the given fulfiller, moving confirmed→assigned.
//
// The in-memory check mirrors the conditional UPDATE the repository performs;
// the database write remains the arbiter of races, and a lost race surfaces
// as ErrAlreadyClaimed from the repository, not from here.
func (o *Order) Claim(role Role, fulfillerID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := fulfillerID.Validate(); err != nil {
		return err
	}
	if !role.IsFulfiller() {
		return fmt.Errorf("%w: %s cannot claim orders", ErrUnauthorized, role)
	}
	if o.washerID != nil || o.partnerID != nil {
		return ErrAlreadyClaimed
	}
	if len(allowedRoles(o.status, StatusAssigned)) == 0 {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.status, StatusAssigned)
	}

	if role == RoleWasher {
		o.washerID = &fulfillerID
	} else {
		o.partnerID = &fulfillerID
	}
	assignedAt := now
	o.assignedAt = &assignedAt

	o.recordChange(StatusAssigned, role, fulfillerID, now)
	return nil
}

// Release returns a claimed order to the available pool (assigned→confirmed),
// clearing the fulfiller so it can be claimed again. Back-office only.
func (o *Order) Release(role Role, actorID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.applyTransition(StatusConfirmed, role, actorID, now); err != nil {
		return err
	}

	o.washerID = nil
	o.partnerID = nil
	o.assignedAt = nil
	return nil
}

// RecordWeighIn stores the measured weight and the recomputed total.
// Only the assigned fulfiller may weigh. Weighing an assigned order also
// starts the work (assigned→in_progress); weighing again while in progress
// just corrects weight and price.
func (o *Order) RecordWeighIn(weightKg float64, newTotal kernel.Money, role Role, actorID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%f is not greater than 0", weightKg))
	}

	switch o.status {
	case StatusAssigned:
		if err := o.applyTransition(StatusInProgress, role, actorID, now); err != nil {
			return err
		}
	case StatusInProgress:
		if err := o.ensureActingFulfiller(role, actorID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: cannot weigh an order in status %s", ErrIllegalTransition, o.status)
	}

	o.weightKg = weightKg
	o.totalPrice = newTotal
	o.updatedAt = now
	return nil
}

// ApplyPromo attaches a validated promo code and the resulting discounted
// total. Legal only once the order is paid and until it is completed or
// cancelled; one code per order.
func (o *Order) ApplyPromo(promoCodeID kernel.UUID, discountAmount, newTotal kernel.Money, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := promoCodeID.Validate(); err != nil {
		return err
	}
	if o.promoCodeID != nil {
		return ErrPromoAlreadyApplied
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: cannot apply a promo code in status %s", ErrIllegalTransition, o.status)
	}
	if o.paymentStatus != PaymentPaid {
		return fmt.Errorf("%w: payment status is %s", ErrPromoBeforePayment, o.paymentStatus)
	}

	o.promoCodeID = &promoCodeID
	o.discountAmount = discountAmount
	o.totalPrice = newTotal
	o.updatedAt = now
	return nil
}

// ApplyPaymentCompleted reconciles a "checkout completed" provider event.
//
// It marks the order paid and confirms it when still pending (or recovering
// from a failed payment). An order already confirmed or further along is a
// benign no-op: the event was delivered late or twice. Returns whether the
// aggregate changed.
func (o *Order) ApplyPaymentCompleted(now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if o.paymentStatus == PaymentPaid {
		return false, nil
	}

	if o.status == StatusPending || o.status == StatusFailedPayment {
		if err := o.applyTransition(StatusConfirmed, RoleSystem, kernel.UUID{}, now); err != nil {
			return false, err
		}
	}

	o.paymentStatus = PaymentPaid
	o.updatedAt = now
	return true, nil
}

// ApplyPaymentExpired reconciles a "checkout expired" provider event.
//
// The order is cancelled only while still pending/confirmed (or already in
// failed payment); a stale expiry arriving after the work started, or after
// a completed payment, never regresses the order. Returns whether the
// aggregate changed.
func (o *Order) ApplyPaymentExpired(now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if o.paymentStatus == PaymentPaid {
		return false, nil
	}

	switch o.status {
	case StatusPending, StatusConfirmed, StatusFailedPayment:
		if err := o.applyTransition(StatusCancelled, RoleSystem, kernel.UUID{}, now); err != nil {
			return false, err
		}
		o.paymentStatus = PaymentFailed
		o.updatedAt = now
		return true, nil
	default:
		return false, nil
	}
}

// ApplyPaymentFailed reconciles a "payment failed" provider event.
//
// A pending or confirmed order moves to failed_payment so the client can
// retry checkout; anything else is a stale event and a no-op. Returns
// whether the aggregate changed.
func (o *Order) ApplyPaymentFailed(now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if o.paymentStatus == PaymentPaid {
		return false, nil
	}

	switch o.status {
	case StatusPending, StatusConfirmed:
		if err := o.applyTransition(StatusFailedPayment, RoleSystem, kernel.UUID{}, now); err != nil {
			return false, err
		}
		o.paymentStatus = PaymentFailed
		o.updatedAt = now
		return true, nil
	default:
		return false, nil
	}
}

func (o *Order) applyTransition(target Status, role Role, actorID kernel.UUID, now time.Time) error {
	if len(allowedRoles(o.status, target)) == 0 {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.status, target)
	}
	if !roleMayTransition(o.status, target, role) {
		return fmt.Errorf("%w: %s may not move %s -> %s", ErrUnauthorized, role, o.status, target)
	}
	if fulfillerBound[transition{from: o.status, to: target}] && role.IsFulfiller() {
		if err := o.ensureActingFulfiller(role, actorID); err != nil {
			return err
		}
	}
	if role == RoleClient && !o.clientID.IsEqual(actorID) {
		return fmt.Errorf("%w: client %s does not own this order", ErrUnauthorized, actorID)
	}

	o.recordChange(target, role, actorID, now)
	if target == StatusCompleted {
		completedAt := now
		o.completedAt = &completedAt
	}
	return nil
}

// ensureActingFulfiller verifies that a fulfiller-role actor is the fulfiller
// assigned to this order.
func (o *Order) ensureActingFulfiller(role Role, actorID kernel.UUID) error {
	var assigned *kernel.UUID
	switch role {
	case RoleWasher:
		assigned = o.washerID
	case RolePartner:
		assigned = o.partnerID
	default:
		return nil
	}

	if assigned == nil || !assigned.IsEqual(actorID) {
		return fmt.Errorf("%w: %s %s is not assigned to this order", ErrUnauthorized, role, actorID)
	}
	return nil
}

func (o *Order) recordChange(target Status, role Role, actorID kernel.UUID, now time.Time) {
	o.statusChanges = append(o.statusChanges, StatusChange{
		OrderID:    o.id,
		FromStatus: o.status,
		ToStatus:   target,
		Role:       role,
		ActorID:    actorID,
		ChangedAt:  now,
	})
	o.status = target
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setServiceType(serviceType ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	o.serviceType = serviceType
	return nil
}

func (o *Order) setWeight(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%f is not greater than 0", weightKg))
	}
	o.weightKg = weightKg
	return nil
}

// validateFulfillerConsistency checks the mutual-exclusion invariant and the
// coherence between status and fulfiller assignment when restoring from
// persistence.
func (o *Order) validateFulfillerConsistency() error {
	if o.washerID != nil && o.partnerID != nil {
		return errs.NewValueIsInvalidErrorWithCause("fulfiller",
			errors.New("order cannot have both a washer and a partner"))
	}

	hasFulfiller := o.washerID != nil || o.partnerID != nil
	switch o.status {
	case StatusPending, StatusConfirmed, StatusFailedPayment:
		if hasFulfiller {
			return errs.NewValueIsInvalidErrorWithCause("fulfiller",
				fmt.Errorf("%s order must not have a fulfiller", o.status))
		}
	case StatusAssigned, StatusInProgress, StatusReady, StatusCompleted:
		if !hasFulfiller {
			return errs.NewValueIsInvalidErrorWithCause("fulfiller",
				fmt.Errorf("%s order must have a fulfiller", o.status))
		}
	}

	return nil
}
