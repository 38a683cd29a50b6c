package fulfillerrepo

import (
	"context"
	"errors"

	"pressing/internal/core/domain/model/fulfiller"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFulfillerRepository implements ports.FulfillerRepository using GORM.
type GormFulfillerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormFulfillerRepository creates a new GORM fulfiller repository.
func NewGormFulfillerRepository(db *gorm.DB, tracker aggregateTracker) *GormFulfillerRepository {
	return &GormFulfillerRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddWasher saves a new washer to the database.
func (r *GormFulfillerRepository) AddWasher(ctx context.Context, aggregate *fulfiller.Washer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := washerFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateWasher saves an existing washer to the database.
func (r *GormFulfillerRepository) UpdateWasher(ctx context.Context, aggregate *fulfiller.Washer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := washerFromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetWasher retrieves a washer by ID.
func (r *GormFulfillerRepository) GetWasher(ctx context.Context, id kernel.UUID) (*fulfiller.Washer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WasherDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("washer", id.String())
		}
		return nil, err
	}

	return washerToDomain(dto)
}

// AddPartner saves a new partner to the database.
func (r *GormFulfillerRepository) AddPartner(ctx context.Context, aggregate *fulfiller.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := partnerFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdatePartner saves an existing partner to the database.
func (r *GormFulfillerRepository) UpdatePartner(ctx context.Context, aggregate *fulfiller.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := partnerFromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetPartner retrieves a partner by ID.
func (r *GormFulfillerRepository) GetPartner(ctx context.Context, id kernel.UUID) (*fulfiller.Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", id.String())
		}
		return nil, err
	}

	return partnerToDomain(dto)
}
