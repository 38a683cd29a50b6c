package promocode

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
)

var (
	// ErrPromoCodeIsNotConstructed is returned when a PromoCode instance was not
	// created through NewPromoCode or RestorePromoCode.
	ErrPromoCodeIsNotConstructed = errors.New("PromoCode must be created via NewPromoCode or RestorePromoCode")

	// ErrPromoInvalid is the base sentinel for every redemption rejection.
	// The wrapped variants below carry the reason surfaced verbatim to clients.
	ErrPromoInvalid = errors.New("promo code is invalid")

	// ErrPromoNotFound covers unknown and deactivated codes.
	ErrPromoNotFound = fmt.Errorf("%w: not found", ErrPromoInvalid)

	// ErrPromoExpired means the code's expiry date has passed.
	ErrPromoExpired = fmt.Errorf("%w: expired", ErrPromoInvalid)

	// ErrPromoExhausted means the code has reached its maximum number of uses.
	ErrPromoExhausted = fmt.Errorf("%w: exhausted", ErrPromoInvalid)

	// ErrPromoAlreadyUsed means this user already redeemed a single-use code.
	ErrPromoAlreadyUsed = fmt.Errorf("%w: already used", ErrPromoInvalid)
)

// DiscountType discriminates between percentage and fixed-amount discounts.
type DiscountType int

const (
	// DiscountUnknown represents an invalid or undefined discount type.
	DiscountUnknown DiscountType = iota

	// DiscountPercent reduces the total multiplicatively.
	DiscountPercent

	// DiscountFixed reduces the total by a fixed amount, floored at zero.
	DiscountFixed
)

// Validate checks that the DiscountType is one of the defined kinds.
func (d DiscountType) Validate() error {
	if d != DiscountPercent && d != DiscountFixed {
		return errs.NewValueIsInvalidErrorWithCause("discount type", fmt.Errorf("%d is not a valid discount type", int(d)))
	}
	return nil
}

// String returns the wire name of the discount type.
func (d DiscountType) String() string {
	switch d {
	case DiscountPercent:
		return "percent"
	case DiscountFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// DiscountTypeFromString parses a wire name back into a DiscountType.
func DiscountTypeFromString(s string) (DiscountType, error) {
	switch s {
	case "percent":
		return DiscountPercent, nil
	case "fixed":
		return DiscountFixed, nil
	default:
		return DiscountUnknown, errs.NewValueIsInvalidErrorWithCause("discount type", fmt.Errorf("%q is not a valid discount type", s))
	}
}

// NormalizeCode canonicalizes a user-supplied code: trimmed, upper-cased.
// Codes are case-insensitive; the canonical form is what gets persisted
// and compared.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// PromoCode is the aggregate root for a marketing discount code.
//
// Invariants:
//   - code is non-empty and stored in canonical (upper-case) form
//   - percent discounts are in (0, 100]; fixed discounts are positive
//   - usesCount never exceeds maxUses when maxUses is set; the bounded
//     increment is enforced by the repository's conditional update
type PromoCode struct {
	id   kernel.UUID
	code string

	discountType DiscountType
	percent      float64
	amount       kernel.Money

	isActive          bool
	expiresAt         *time.Time
	maxUses           *int
	usesCount         int
	allowMultipleUses bool

	isConstructed bool
}

// NewPromoCode creates an active promo code.
// For DiscountPercent codes the percent must be in (0, 100] and amount is
// ignored; for DiscountFixed codes the amount must be positive.
func NewPromoCode(
	id kernel.UUID,
	code string,
	discountType DiscountType,
	percent float64,
	amount kernel.Money,
	expiresAt *time.Time,
	maxUses *int,
	allowMultipleUses bool,
) (*PromoCode, error) {
	p := &PromoCode{
		isActive:          true,
		expiresAt:         expiresAt,
		maxUses:           maxUses,
		allowMultipleUses: allowMultipleUses,
		isConstructed:     true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setDiscount(discountType, percent, amount),
		p.validateMaxUses(),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePromoCode reconstructs a PromoCode from persistence.
func RestorePromoCode(
	id kernel.UUID,
	code string,
	discountType DiscountType,
	percent float64,
	amount kernel.Money,
	isActive bool,
	expiresAt *time.Time,
	maxUses *int,
	usesCount int,
	allowMultipleUses bool,
) (*PromoCode, error) {
	p := &PromoCode{
		isActive:          isActive,
		expiresAt:         expiresAt,
		maxUses:           maxUses,
		usesCount:         usesCount,
		allowMultipleUses: allowMultipleUses,
		isConstructed:     true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setDiscount(discountType, percent, amount),
		p.validateMaxUses(),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the PromoCode instance was created through a constructor.
func (p *PromoCode) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPromoCodeIsNotConstructed
	}
	return nil
}

// ID returns the promo code's unique identifier.
func (p *PromoCode) ID() kernel.UUID {
	return p.id
}

// Code returns the canonical (upper-case) code string.
func (p *PromoCode) Code() string {
	return p.code
}

// DiscountType returns the discount kind.
func (p *PromoCode) DiscountType() DiscountType {
	return p.discountType
}

// Percent returns the percentage for percent codes, zero otherwise.
func (p *PromoCode) Percent() float64 {
	return p.percent
}

// Amount returns the fixed amount for fixed codes, zero otherwise.
func (p *PromoCode) Amount() kernel.Money {
	return p.amount
}

// IsActive reports whether the code is currently enabled.
func (p *PromoCode) IsActive() bool {
	return p.isActive
}

// ExpiresAt returns the expiry time, or nil for non-expiring codes.
func (p *PromoCode) ExpiresAt() *time.Time {
	return p.expiresAt
}

// MaxUses returns the usage cap, or nil for uncapped codes.
func (p *PromoCode) MaxUses() *int {
	return p.maxUses
}

// UsesCount returns the recorded number of redemptions.
func (p *PromoCode) UsesCount() int {
	return p.usesCount
}

// AllowMultipleUses reports whether one user may redeem the code repeatedly.
func (p *PromoCode) AllowMultipleUses() bool {
	return p.allowMultipleUses
}

// CheckRedeemable evaluates every redemption rule for a user at the given
// time. alreadyUsedByUser is the caller's lookup of an existing usage record
// for (code, user). The returned errors all unwrap to ErrPromoInvalid; their
// messages are the reasons surfaced verbatim to the client.
func (p *PromoCode) CheckRedeemable(now time.Time, alreadyUsedByUser bool) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if !p.isActive {
		return ErrPromoNotFound
	}
	if p.expiresAt != nil && p.expiresAt.Before(now) {
		return ErrPromoExpired
	}
	if p.maxUses != nil && p.usesCount >= *p.maxUses {
		return ErrPromoExhausted
	}
	if alreadyUsedByUser && !p.allowMultipleUses {
		return ErrPromoAlreadyUsed
	}

	return nil
}

// DiscountFor computes the discount against a tax-inclusive total and the
// resulting new total. Percent discounts reduce the total multiplicatively;
// fixed discounts subtract, floored at zero so a generous code can never
// drive the total negative.
func (p *PromoCode) DiscountFor(total kernel.Money) (discount, newTotal kernel.Money) {
	switch p.discountType {
	case DiscountPercent:
		discount = total.Percent(p.percent)
	case DiscountFixed:
		discount = p.amount
		if discount.Cents() > total.Cents() {
			discount = total
		}
	}
	return discount, total.SubFloored(discount)
}

func (p *PromoCode) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *PromoCode) setCode(code string) error {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return errs.NewValueIsRequiredError("code")
	}
	p.code = normalized
	return nil
}

func (p *PromoCode) setDiscount(discountType DiscountType, percent float64, amount kernel.Money) error {
	if err := discountType.Validate(); err != nil {
		return err
	}

	switch discountType {
	case DiscountPercent:
		if percent <= 0 || percent > 100 {
			return errs.NewValueIsOutOfRangeError("percent", percent, 0, 100)
		}
		p.percent = percent
	case DiscountFixed:
		if amount.IsZero() {
			return errs.NewValueIsRequiredError("amount")
		}
		p.amount = amount
	}

	p.discountType = discountType
	return nil
}

func (p *PromoCode) validateMaxUses() error {
	if p.maxUses != nil && *p.maxUses <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("max uses", fmt.Errorf("%d is not greater than 0", *p.maxUses))
	}
	if p.maxUses != nil && p.usesCount > *p.maxUses {
		return errs.NewValueIsInvalidErrorWithCause("uses count",
			fmt.Errorf("%d exceeds max uses %d", p.usesCount, *p.maxUses))
	}
	if p.usesCount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("uses count", fmt.Errorf("%d is negative", p.usesCount))
	}
	return nil
}
