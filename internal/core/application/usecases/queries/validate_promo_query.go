package queries

import (
	"errors"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/promocode"
	"pressing/internal/pkg/guard"
)

var ErrValidatePromoQueryIsNotConstructed = errors.New(
	"ValidatePromoQuery must be created via NewValidatePromoQuery constructor",
)

// ValidatePromoQuery is a dry-run redemption check: it reports whether the
// user could redeem the code right now and previews the discount against a
// given total, without consuming anything.
type ValidatePromoQuery struct { //nolint:recvcheck //using for validation
	code   string
	userID kernel.UUID
	total  kernel.Money

	guard guard.ConstructorGuard
}

// NewValidatePromoQuery creates a dry-run validation query. The code is
// normalized like a real redemption would normalize it.
func NewValidatePromoQuery(code string, userID kernel.UUID, total kernel.Money) (ValidatePromoQuery, error) {
	normalized := promocode.NormalizeCode(code)
	if normalized == "" {
		return ValidatePromoQuery{}, errors.New("promo code is required")
	}
	if err := userID.Validate(); err != nil {
		return ValidatePromoQuery{}, err
	}

	return ValidatePromoQuery{
		code:   normalized,
		userID: userID,
		total:  total,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ValidatePromoQuery) Validate() error {
	return q.guard.Validate(ErrValidatePromoQueryIsNotConstructed)
}

// Code returns the normalized promo code.
func (q ValidatePromoQuery) Code() string {
	return q.code
}

// UserID returns the prospective redeemer.
func (q ValidatePromoQuery) UserID() kernel.UUID {
	return q.userID
}

// Total returns the order total the discount is previewed against.
func (q ValidatePromoQuery) Total() kernel.Money {
	return q.total
}

// ValidatePromoQueryResponse is the outcome of a dry-run validation.
// When Valid is false, Reason carries the rejection and the amounts are zero.
type ValidatePromoQueryResponse struct {
	Valid          bool
	Reason         string
	DiscountAmount kernel.Money
	NewTotal       kernel.Money
}
