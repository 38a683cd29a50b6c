// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// status and the fulfiller columns carry partial indexes for the marketplace
// pool query; version drives optimistic concurrency.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID  `gorm:"type:uuid;index"`
	PartnerID       *uuid.UUID `gorm:"type:uuid;index"`
	WasherID        *uuid.UUID `gorm:"type:uuid;index"`
	ServiceType     string
	WeightKg        float64
	TotalPriceCents int64
	DiscountCents   int64
	PromoCodeID     *uuid.UUID `gorm:"type:uuid"`
	Status          string     `gorm:"index"`
	PaymentStatus   string
	Version         int64
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
	AssignedAt      *time.Time
	CompletedAt     *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		ClientID:        aggregate.ClientID().Bytes(),
		PartnerID:       optionalUUID(aggregate.PartnerID()),
		WasherID:        optionalUUID(aggregate.WasherID()),
		ServiceType:     aggregate.ServiceType().String(),
		WeightKg:        aggregate.WeightKg(),
		TotalPriceCents: aggregate.TotalPrice().Cents(),
		DiscountCents:   aggregate.DiscountAmount().Cents(),
		PromoCodeID:     optionalUUID(aggregate.PromoCodeID()),
		Status:          aggregate.Status().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		Version:         aggregate.Version(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		AssignedAt:      aggregate.AssignedAt(),
		CompletedAt:     aggregate.CompletedAt(),
	}
}

// toDomain converts a database row back into an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	partnerID, err := optionalKernelUUID(dto.PartnerID)
	if err != nil {
		return nil, err
	}
	washerID, err := optionalKernelUUID(dto.WasherID)
	if err != nil {
		return nil, err
	}
	promoCodeID, err := optionalKernelUUID(dto.PromoCodeID)
	if err != nil {
		return nil, err
	}

	serviceType, err := order.ServiceTypeFromString(dto.ServiceType)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	totalPrice, err := kernel.NewMoney(dto.TotalPriceCents)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.DiscountCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, clientID, partnerID, washerID,
		serviceType, dto.WeightKg, totalPrice, discount, promoCodeID,
		status, paymentStatus, dto.Version,
		dto.CreatedAt, dto.UpdatedAt, dto.AssignedAt, dto.CompletedAt,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
