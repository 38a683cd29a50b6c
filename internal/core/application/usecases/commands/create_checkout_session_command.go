package commands

import (
	"errors"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/guard"
)

var ErrCreateCheckoutSessionCommandIsNotConstructed = errors.New(
	"CreateCheckoutSessionCommand must be created via NewCreateCheckoutSessionCommand constructor",
)

// CreateCheckoutSessionCommand represents a client's request for a hosted
// payment page for one of their orders.
type CreateCheckoutSessionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateCheckoutSessionCommand creates a command to open checkout for an order.
func NewCreateCheckoutSessionCommand(orderID kernel.UUID, clientID kernel.UUID) (CreateCheckoutSessionCommand, error) {
	checkoutCommand := CreateCheckoutSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		checkoutCommand.setOrderID(orderID),
		checkoutCommand.setClientID(clientID),
	); err != nil {
		return CreateCheckoutSessionCommand{}, err
	}

	return checkoutCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCheckoutSessionCommand) Validate() error {
	return c.guard.Validate(ErrCreateCheckoutSessionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to pay for.
func (c CreateCheckoutSessionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the identifier of the paying client.
func (c CreateCheckoutSessionCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c *CreateCheckoutSessionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateCheckoutSessionCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}
