package ports

import (
	"context"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/promocode"
)

// PromoCodeRepository defines the persistence contract for promo codes and
// their usage records.
type PromoCodeRepository interface {
	// Add persists a new promo code.
	Add(ctx context.Context, aggregate *promocode.PromoCode) error

	// Get retrieves a promo code by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*promocode.PromoCode, error)

	// GetByCode retrieves a promo code by its normalized code.
	// Returns promocode.ErrPromoNotFound when no such code exists.
	GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error)

	// HasUsageByUser reports whether the user has redeemed the code before.
	HasUsageByUser(ctx context.Context, promoCodeID kernel.UUID, userID kernel.UUID) (bool, error)

	// RegisterUsage records a redemption. A unique constraint on
	// (promo code, user) makes concurrent single-use redemptions lose with
	// promocode.ErrPromoAlreadyUsed.
	RegisterUsage(ctx context.Context, usage *promocode.Usage) error

	// IncrementUses bumps the redemption counter as a conditional write
	// bounded by the code's usage cap. When the cap is already reached the
	// write touches no rows and promocode.ErrPromoExhausted is returned.
	IncrementUses(ctx context.Context, promoCodeID kernel.UUID) error
}
