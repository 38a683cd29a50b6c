package queries

import (
	"errors"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/guard"
)

var ErrGetClientOrdersQueryIsNotConstructed = errors.New(
	"GetClientOrdersQuery must be created via NewGetClientOrdersQuery constructor",
)

// GetClientOrdersQuery retrieves a client's order history, newest first.
type GetClientOrdersQuery struct { //nolint:recvcheck //using for validation
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetClientOrdersQuery creates a query for one client's orders.
func NewGetClientOrdersQuery(clientID kernel.UUID) (GetClientOrdersQuery, error) {
	if err := clientID.Validate(); err != nil {
		return GetClientOrdersQuery{}, err
	}

	return GetClientOrdersQuery{
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetClientOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetClientOrdersQueryIsNotConstructed)
}

// ClientID returns the client whose orders are requested.
func (q GetClientOrdersQuery) ClientID() kernel.UUID {
	return q.clientID
}

// GetClientOrdersQueryResponse is one order in a client's history.
type GetClientOrdersQueryResponse struct {
	ID             kernel.UUID
	ServiceType    order.ServiceType
	WeightKg       float64
	TotalPrice     kernel.Money
	DiscountAmount kernel.Money
	Status         order.Status
	PaymentStatus  order.PaymentStatus
	CreatedAt      time.Time
}
