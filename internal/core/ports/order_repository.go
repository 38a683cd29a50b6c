// Package ports defines the contracts between the application core and
// infrastructure adapters: repositories, the unit of work, the checkout
// provider, and the notification publisher. Implementations live under
// internal/adapters.
package ports

import (
	"context"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using
	// optimistic concurrency: the write is conditional on the version the
	// aggregate was loaded with, and order.ErrStaleWrite is returned when
	// another writer got there first.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim persists a claim as a single conditional write: it succeeds only
	// if the stored row is still confirmed and unassigned. On a lost race it
	// returns order.ErrAlreadyClaimed and writes nothing.
	Claim(ctx context.Context, aggregate *order.Order) error

	// GetAllPendingBefore retrieves orders still awaiting payment whose
	// creation time is older than the cutoff. Used by the stale-order sweep.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
