// Package queries contains read-side operations of the CQRS architecture.
// Handlers bypass the domain model and read projection rows with raw SQL
// for performance; they never mutate state.
package queries

import (
	"errors"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves the marketplace pool: confirmed, paid
// orders no fulfiller has claimed yet, oldest first.
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for the claimable order pool.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// GetAvailableOrdersQueryResponse is one claimable order as shown to
// browsing fulfillers.
type GetAvailableOrdersQueryResponse struct {
	ID          kernel.UUID
	ServiceType order.ServiceType
	WeightKg    float64
	TotalPrice  kernel.Money
	CreatedAt   time.Time
}
