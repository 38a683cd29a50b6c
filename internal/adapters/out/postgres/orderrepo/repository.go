package orderrepo

import (
	"context"
	"errors"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database at version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order, guarded by the version the aggregate was
// loaded with. Zero rows touched means another writer bumped the version (or
// the row is gone) and the caller's snapshot is stale.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrStaleWrite
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim persists a claim as one conditional UPDATE. The predicate re-checks
// that the row is still confirmed and unassigned, so under concurrency
// exactly one claimer touches the row and every other one gets
// order.ErrAlreadyClaimed.
func (r *GormOrderRepository) Claim(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND washer_id IS NULL AND partner_id IS NULL",
			dto.ID, order.StatusConfirmed.String()).
		Updates(map[string]any{
			"washer_id":   dto.WasherID,
			"partner_id":  dto.PartnerID,
			"status":      dto.Status,
			"assigned_at": dto.AssignedAt,
			"updated_at":  dto.UpdatedAt,
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrAlreadyClaimed
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetAllPendingBefore retrieves orders still pending whose creation is older
// than the cutoff, oldest first.
func (r *GormOrderRepository) GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", order.StatusPending.String(), cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
