// Package promorepo persists promo codes and their redemption records.
//
// The schema carries the two constraints the redemption flow leans on: a
// conditional counter update bounded by max_uses, and a partial unique index
// on (promo_code_id, user_id) for single-use redemptions.
package promorepo

import (
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/promocode"

	"github.com/google/uuid"
)

// PromoCodeDTO represents the database structure for promo codes.
type PromoCodeDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code              string    `gorm:"uniqueIndex"`
	DiscountType      string
	Percent           float64
	AmountCents       int64
	IsActive          bool
	ExpiresAt         *time.Time
	MaxUses           *int
	UsesCount         int
	AllowMultipleUses bool
}

// TableName specifies the database table name for promo codes.
func (PromoCodeDTO) TableName() string {
	return "promo_codes"
}

// UsageDTO represents one redemption row. single_use participates in the
// partial unique index uq_promo_single_use (promo_code_id, user_id) WHERE
// single_use, created in the adapter's migration hook.
type UsageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PromoCodeID uuid.UUID `gorm:"type:uuid;index"`
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid"`
	SingleUse   bool
	UsedAt      time.Time
}

// TableName specifies the database table name for redemption records.
func (UsageDTO) TableName() string {
	return "promo_code_usages"
}

func promoFromDomain(aggregate *promocode.PromoCode) PromoCodeDTO {
	return PromoCodeDTO{
		ID:                aggregate.ID().Bytes(),
		Code:              aggregate.Code(),
		DiscountType:      aggregate.DiscountType().String(),
		Percent:           aggregate.Percent(),
		AmountCents:       aggregate.Amount().Cents(),
		IsActive:          aggregate.IsActive(),
		ExpiresAt:         aggregate.ExpiresAt(),
		MaxUses:           aggregate.MaxUses(),
		UsesCount:         aggregate.UsesCount(),
		AllowMultipleUses: aggregate.AllowMultipleUses(),
	}
}

func promoToDomain(dto PromoCodeDTO) (*promocode.PromoCode, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	discountType, err := promocode.DiscountTypeFromString(dto.DiscountType)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.AmountCents)
	if err != nil {
		return nil, err
	}

	return promocode.RestorePromoCode(id, dto.Code, discountType, dto.Percent, amount,
		dto.IsActive, dto.ExpiresAt, dto.MaxUses, dto.UsesCount, dto.AllowMultipleUses)
}

func usageFromDomain(usage *promocode.Usage) UsageDTO {
	return UsageDTO{
		ID:          usage.ID().Bytes(),
		PromoCodeID: usage.PromoCodeID().Bytes(),
		UserID:      usage.UserID().Bytes(),
		OrderID:     usage.OrderID().Bytes(),
		SingleUse:   usage.SingleUse(),
		UsedAt:      usage.UsedAt(),
	}
}
