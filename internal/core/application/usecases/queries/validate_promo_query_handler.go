package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/promocode"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidatePromoQueryHandler answers dry-run promo checks against the live
// promo tables. The answer is advisory: the authoritative decision is made
// again, transactionally, at redemption time.
type ValidatePromoQueryHandler struct {
	db *gorm.DB
}

// NewValidatePromoQueryHandler creates a handler for promo dry-runs.
func NewValidatePromoQueryHandler(db *gorm.DB) ValidatePromoQueryHandler {
	return ValidatePromoQueryHandler{db: db}
}

// Handle loads the code, replays the domain redemption rules against it, and
// previews the discount. Unknown codes are a negative answer, not an error.
func (h ValidatePromoQueryHandler) Handle(
	ctx context.Context,
	query ValidatePromoQuery,
) (ValidatePromoQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidatePromoQueryResponse{}, err
	}

	promo, err := h.loadPromo(ctx, query.Code())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidatePromoQueryResponse{Valid: false, Reason: promocode.ErrPromoNotFound.Error()}, nil
		}
		return ValidatePromoQueryResponse{}, err
	}

	used, err := h.hasUsage(ctx, promo.ID(), query.UserID())
	if err != nil {
		return ValidatePromoQueryResponse{}, err
	}

	if err = promo.CheckRedeemable(time.Now().UTC(), used); err != nil {
		return ValidatePromoQueryResponse{Valid: false, Reason: err.Error()}, nil
	}

	discount, newTotal := promo.DiscountFor(query.Total())
	return ValidatePromoQueryResponse{
		Valid:          true,
		DiscountAmount: discount,
		NewTotal:       newTotal,
	}, nil
}

func (h ValidatePromoQueryHandler) loadPromo(ctx context.Context, code string) (*promocode.PromoCode, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			discount_type,
			percent,
			amount_cents,
			is_active,
			expires_at,
			max_uses,
			uses_count,
			allow_multiple_uses
		FROM promo_codes
		WHERE code = ?
	`, code).Row()

	var id uuid.UUID
	var storedCode, discountType string
	var percent float64
	var amountCents int64
	var isActive, allowMultipleUses bool
	var expiresAt sql.NullTime
	var maxUses sql.NullInt64
	var usesCount int

	if err := row.Scan(&id, &storedCode, &discountType, &percent, &amountCents,
		&isActive, &expiresAt, &maxUses, &usesCount, &allowMultipleUses); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}

	promoID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(amountCents)
	if err != nil {
		return nil, err
	}
	parsedType, err := promocode.DiscountTypeFromString(discountType)
	if err != nil {
		return nil, err
	}

	var expiry *time.Time
	if expiresAt.Valid {
		expiry = &expiresAt.Time
	}
	var usesCap *int
	if maxUses.Valid {
		v := int(maxUses.Int64)
		usesCap = &v
	}

	return promocode.RestorePromoCode(promoID, storedCode, parsedType, percent, amount,
		isActive, expiry, usesCap, usesCount, allowMultipleUses)
}

func (h ValidatePromoQueryHandler) hasUsage(ctx context.Context, promoID, userID kernel.UUID) (bool, error) {
	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(1)
		FROM promo_code_usages
		WHERE promo_code_id = ? AND user_id = ?
	`, promoID.Bytes(), userID.Bytes()).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
