package commands

import (
	"errors"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move an order along one edge
// of its lifecycle state machine: starting work, marking it ready, completing
// it, cancelling it, or releasing a claim back to the pool.
//
// Claiming is not expressed as a transition; it goes through ClaimOrderCommand.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	role    order.Role
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// Legality of the edge and the actor's authority over it are enforced by the
// aggregate, not here.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	role order.Role,
	actorID kernel.UUID,
) (TransitionOrderCommand, error) {
	transitionCommand := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
		transitionCommand.setRole(role),
		transitionCommand.setActorID(actorID),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested destination status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Role returns the acting role.
func (c TransitionOrderCommand) Role() order.Role {
	return c.role
}

// ActorID returns the identifier of the acting user.
func (c TransitionOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setRole(role order.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *TransitionOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
