package ports

import (
	"context"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
)

// CheckoutSession is the hosted payment page created for an order.
type CheckoutSession struct {
	// SessionID is the provider's session identifier.
	SessionID string

	// PaymentURL is the hosted page the client is redirected to.
	PaymentURL string
}

// CheckoutProvider creates hosted checkout sessions with the payment
// provider. Implementations must stamp the order identifier into the
// session metadata so asynchronous webhooks can be correlated back to the
// order.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, orderID kernel.UUID, clientID kernel.UUID,
		serviceType order.ServiceType, amount kernel.Money) (*CheckoutSession, error)
}
