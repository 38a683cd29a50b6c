package queries

import (
	"errors"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/guard"
)

var (
	ErrGetFulfillerOrdersQueryIsNotConstructed = errors.New(
		"GetFulfillerOrdersQuery must be created via NewGetFulfillerOrdersQuery constructor",
	)
	ErrRoleIsNotFulfiller = errors.New("role must be washer or partner")
)

// GetFulfillerOrdersQuery retrieves the orders currently assigned to one
// washer or partner, active work first.
type GetFulfillerOrdersQuery struct { //nolint:recvcheck //using for validation
	fulfillerID kernel.UUID
	role        order.Role

	guard guard.ConstructorGuard
}

// NewGetFulfillerOrdersQuery creates a query for one fulfiller's workload.
func NewGetFulfillerOrdersQuery(fulfillerID kernel.UUID, role order.Role) (GetFulfillerOrdersQuery, error) {
	if err := fulfillerID.Validate(); err != nil {
		return GetFulfillerOrdersQuery{}, err
	}
	if !role.IsFulfiller() {
		return GetFulfillerOrdersQuery{}, fmt.Errorf("%w: got %s", ErrRoleIsNotFulfiller, role)
	}

	return GetFulfillerOrdersQuery{
		fulfillerID: fulfillerID,
		role:        role,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetFulfillerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetFulfillerOrdersQueryIsNotConstructed)
}

// FulfillerID returns the washer or partner whose orders are requested.
func (q GetFulfillerOrdersQuery) FulfillerID() kernel.UUID {
	return q.fulfillerID
}

// Role returns which fulfiller column to match.
func (q GetFulfillerOrdersQuery) Role() order.Role {
	return q.role
}

// GetFulfillerOrdersQueryResponse is one order in a fulfiller's workload.
type GetFulfillerOrdersQueryResponse struct {
	ID          kernel.UUID
	ServiceType order.ServiceType
	WeightKg    float64
	TotalPrice  kernel.Money
	Status      order.Status
	AssignedAt  *time.Time
	CompletedAt *time.Time
}
