package promocode

import (
	"errors"
	"time"

	"pressing/internal/core/domain/model/kernel"
)

// ErrUsageIsNotConstructed is returned when a Usage instance was not created
// through NewUsage.
var ErrUsageIsNotConstructed = errors.New("Usage must be created via NewUsage")

// Usage records one redemption of a promo code by a user on an order.
// Rows are written exactly once per redemption and never mutated; the
// (promo code, user) uniqueness for single-use codes is enforced by a
// database constraint, not by a read-then-write check.
type Usage struct {
	id          kernel.UUID
	promoCodeID kernel.UUID
	userID      kernel.UUID
	orderID     kernel.UUID
	singleUse   bool
	usedAt      time.Time

	isConstructed bool
}

// NewUsage creates a redemption record. singleUse mirrors the code's
// redemption policy onto the row so the partial unique index can see it.
func NewUsage(id, promoCodeID, userID, orderID kernel.UUID, singleUse bool, usedAt time.Time) (*Usage, error) {
	u := &Usage{
		singleUse:     singleUse,
		usedAt:        usedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		promoCodeID.Validate(),
		userID.Validate(),
		orderID.Validate(),
	); err != nil {
		return nil, err
	}

	u.id = id
	u.promoCodeID = promoCodeID
	u.userID = userID
	u.orderID = orderID
	return u, nil
}

// Validate ensures the Usage instance was created through NewUsage.
func (u *Usage) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUsageIsNotConstructed
	}
	return nil
}

// ID returns the usage record's unique identifier.
func (u *Usage) ID() kernel.UUID {
	return u.id
}

// PromoCodeID returns the redeemed code's ID.
func (u *Usage) PromoCodeID() kernel.UUID {
	return u.promoCodeID
}

// UserID returns the redeeming user's ID.
func (u *Usage) UserID() kernel.UUID {
	return u.userID
}

// OrderID returns the order the discount was applied to.
func (u *Usage) OrderID() kernel.UUID {
	return u.orderID
}

// SingleUse reports whether the redeemed code was single-use per user.
func (u *Usage) SingleUse() bool {
	return u.singleUse
}

// UsedAt returns when the redemption happened.
func (u *Usage) UsedAt() time.Time {
	return u.usedAt
}
