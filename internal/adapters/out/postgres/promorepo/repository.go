package promorepo

import (
	"context"
	"errors"
	"fmt"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/promocode"
	"pressing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPromoCodeRepository implements ports.PromoCodeRepository using GORM.
type GormPromoCodeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPromoCodeRepository creates a new GORM promo code repository.
func NewGormPromoCodeRepository(db *gorm.DB, tracker aggregateTracker) *GormPromoCodeRepository {
	return &GormPromoCodeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Migrate creates the partial unique index single-use redemption races rely
// on. AutoMigrate cannot express the predicate, so it is raw SQL.
func Migrate(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_promo_single_use
		ON promo_code_usages (promo_code_id, user_id)
		WHERE single_use
	`).Error
}

// Add saves a new promo code.
func (r *GormPromoCodeRepository) Add(ctx context.Context, aggregate *promocode.PromoCode) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := promoFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a promo code by ID.
func (r *GormPromoCodeRepository) Get(ctx context.Context, id kernel.UUID) (*promocode.PromoCode, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PromoCodeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("promo code", id.String())
		}
		return nil, err
	}

	return promoToDomain(dto)
}

// GetByCode retrieves a promo code by its normalized code.
func (r *GormPromoCodeRepository) GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error) {
	var dto PromoCodeDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", promocode.ErrPromoNotFound, code)
		}
		return nil, err
	}

	return promoToDomain(dto)
}

// HasUsageByUser reports whether the user already redeemed the code.
func (r *GormPromoCodeRepository) HasUsageByUser(ctx context.Context, promoCodeID, userID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UsageDTO{}).
		Where("promo_code_id = ? AND user_id = ?", promoCodeID.Bytes(), userID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RegisterUsage inserts the redemption row. For single-use codes two
// concurrent redemptions by the same user collide on the partial unique
// index; the loser gets promocode.ErrPromoAlreadyUsed.
func (r *GormPromoCodeRepository) RegisterUsage(ctx context.Context, usage *promocode.Usage) error {
	if err := usage.Validate(); err != nil {
		return err
	}

	dto := usageFromDomain(usage)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return promocode.ErrPromoAlreadyUsed
		}
		return err
	}
	return nil
}

// IncrementUses bumps uses_count, bounded by max_uses. Zero rows touched
// means the budget ran out between the read and this write.
func (r *GormPromoCodeRepository) IncrementUses(ctx context.Context, promoCodeID kernel.UUID) error {
	if err := promoCodeID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PromoCodeDTO{}).
		Where("id = ? AND (max_uses IS NULL OR uses_count < max_uses)", promoCodeID.Bytes()).
		Update("uses_count", gorm.Expr("uses_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return promocode.ErrPromoExhausted
	}
	return nil
}
