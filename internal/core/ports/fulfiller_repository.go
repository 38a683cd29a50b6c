package ports

import (
	"context"

	"pressing/internal/core/domain/model/fulfiller"
	"pressing/internal/core/domain/model/kernel"
)

// FulfillerRepository defines the persistence contract for washers and
// partner pressings.
type FulfillerRepository interface {
	// AddWasher persists a new washer.
	AddWasher(ctx context.Context, aggregate *fulfiller.Washer) error

	// UpdateWasher persists changes to an existing washer.
	UpdateWasher(ctx context.Context, aggregate *fulfiller.Washer) error

	// GetWasher retrieves a washer by its unique identifier.
	GetWasher(ctx context.Context, id kernel.UUID) (*fulfiller.Washer, error)

	// AddPartner persists a new partner pressing.
	AddPartner(ctx context.Context, aggregate *fulfiller.Partner) error

	// UpdatePartner persists changes to an existing partner pressing.
	UpdatePartner(ctx context.Context, aggregate *fulfiller.Partner) error

	// GetPartner retrieves a partner pressing by its unique identifier.
	GetPartner(ctx context.Context, id kernel.UUID) (*fulfiller.Partner, error)
}
