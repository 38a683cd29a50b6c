// Package fulfillerrepo persists washer and partner accounts.
package fulfillerrepo

import (
	"pressing/internal/core/domain/model/fulfiller"
	"pressing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// WasherDTO represents the database structure for washers.
type WasherDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string
	Approval         string
	IsAvailable      bool
	PayoutAccountRef string
}

// TableName specifies the database table name for washers.
func (WasherDTO) TableName() string {
	return "washers"
}

// PartnerDTO represents the database structure for partner pressings.
type PartnerDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string
	Approval         string
	CommissionTier   float64
	PayoutAccountRef string
}

// TableName specifies the database table name for partner pressings.
func (PartnerDTO) TableName() string {
	return "partners"
}

func washerFromDomain(aggregate *fulfiller.Washer) WasherDTO {
	return WasherDTO{
		ID:               aggregate.ID().Bytes(),
		Name:             aggregate.Name(),
		Approval:         aggregate.Approval().String(),
		IsAvailable:      aggregate.IsAvailable(),
		PayoutAccountRef: aggregate.PayoutAccountRef(),
	}
}

func washerToDomain(dto WasherDTO) (*fulfiller.Washer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	approval, err := fulfiller.ApprovalFromString(dto.Approval)
	if err != nil {
		return nil, err
	}

	return fulfiller.RestoreWasher(id, dto.Name, approval, dto.IsAvailable, dto.PayoutAccountRef)
}

func partnerFromDomain(aggregate *fulfiller.Partner) PartnerDTO {
	return PartnerDTO{
		ID:               aggregate.ID().Bytes(),
		Name:             aggregate.Name(),
		Approval:         aggregate.Approval().String(),
		CommissionTier:   aggregate.CommissionTier(),
		PayoutAccountRef: aggregate.PayoutAccountRef(),
	}
}

func partnerToDomain(dto PartnerDTO) (*fulfiller.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	approval, err := fulfiller.ApprovalFromString(dto.Approval)
	if err != nil {
		return nil, err
	}

	return fulfiller.RestorePartner(id, dto.Name, approval, dto.CommissionTier, dto.PayoutAccountRef)
}
