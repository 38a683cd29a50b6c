package commands

import (
	"errors"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrEstimatedWeightIsInvalid = errors.New("estimated weight must be greater than 0")
)

// CreateOrderCommand represents a client's request to place a new pressing
// order with a service tier and an estimated laundry weight. The order is
// priced from the estimate and starts in pending until payment confirms it.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	clientID          kernel.UUID
	serviceType       order.ServiceType
	estimatedWeightKg float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, the service tier, and that the estimate is positive.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	serviceType order.ServiceType,
	estimatedWeightKg float64,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setClientID(clientID),
		orderCommand.setServiceType(serviceType),
		orderCommand.setEstimatedWeight(estimatedWeightKg),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the identifier of the client placing the order.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// ServiceType returns the requested service tier.
func (c CreateOrderCommand) ServiceType() order.ServiceType {
	return c.serviceType
}

// EstimatedWeightKg returns the client's weight estimate in kilograms.
func (c CreateOrderCommand) EstimatedWeightKg() float64 {
	return c.estimatedWeightKg
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setServiceType(serviceType order.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}

	c.serviceType = serviceType
	return nil
}

func (c *CreateOrderCommand) setEstimatedWeight(estimatedWeightKg float64) error {
	if estimatedWeightKg <= 0 {
		return ErrEstimatedWeightIsInvalid
	}

	c.estimatedWeightKg = estimatedWeightKg
	return nil
}
