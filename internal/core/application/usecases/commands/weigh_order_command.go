package commands

import (
	"errors"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/guard"
)

var (
	ErrWeighOrderCommandIsNotConstructed = errors.New(
		"WeighOrderCommand must be created via NewWeighOrderCommand constructor",
	)
	ErrActualWeightIsInvalid = errors.New("actual weight must be greater than 0")
)

// WeighOrderCommand represents the assigned fulfiller recording the laundry's
// measured weight, which fixes the final price of the order.
type WeighOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	actualWeightKg float64
	role           order.Role
	actorID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewWeighOrderCommand creates a command to record a weigh-in.
func NewWeighOrderCommand(
	orderID kernel.UUID,
	actualWeightKg float64,
	role order.Role,
	actorID kernel.UUID,
) (WeighOrderCommand, error) {
	weighCommand := WeighOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		weighCommand.setOrderID(orderID),
		weighCommand.setActualWeight(actualWeightKg),
		weighCommand.setRole(role),
		weighCommand.setActorID(actorID),
	); err != nil {
		return WeighOrderCommand{}, err
	}

	return weighCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c WeighOrderCommand) Validate() error {
	return c.guard.Validate(ErrWeighOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being weighed.
func (c WeighOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActualWeightKg returns the measured weight in kilograms.
func (c WeighOrderCommand) ActualWeightKg() float64 {
	return c.actualWeightKg
}

// Role returns the acting role.
func (c WeighOrderCommand) Role() order.Role {
	return c.role
}

// ActorID returns the identifier of the weighing fulfiller.
func (c WeighOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *WeighOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *WeighOrderCommand) setActualWeight(actualWeightKg float64) error {
	if actualWeightKg <= 0 {
		return ErrActualWeightIsInvalid
	}

	c.actualWeightKg = actualWeightKg
	return nil
}

func (c *WeighOrderCommand) setRole(role order.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *WeighOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
