package commands

import (
	"errors"
	"fmt"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/guard"
)

var (
	ErrClaimOrderCommandIsNotConstructed = errors.New(
		"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
	)
	ErrRoleCannotClaim = errors.New("only washers and partners can claim orders")
)

// ClaimOrderCommand represents a fulfiller's attempt to take a confirmed
// order off the marketplace. Claims are first-come-first-served; a lost race
// surfaces as order.ErrAlreadyClaimed.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	fulfillerID kernel.UUID
	role        order.Role

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a washer or partner to claim an
// order. Rejects non-fulfiller roles.
func NewClaimOrderCommand(orderID kernel.UUID, fulfillerID kernel.UUID, role order.Role) (ClaimOrderCommand, error) {
	claimCommand := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		claimCommand.setOrderID(orderID),
		claimCommand.setFulfillerID(fulfillerID),
		claimCommand.setRole(role),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return claimCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FulfillerID returns the identifier of the claiming washer or partner.
func (c ClaimOrderCommand) FulfillerID() kernel.UUID {
	return c.fulfillerID
}

// Role returns the claiming actor's role.
func (c ClaimOrderCommand) Role() order.Role {
	return c.role
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setFulfillerID(fulfillerID kernel.UUID) error {
	if err := fulfillerID.Validate(); err != nil {
		return err
	}

	c.fulfillerID = fulfillerID
	return nil
}

func (c *ClaimOrderCommand) setRole(role order.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if !role.IsFulfiller() {
		return fmt.Errorf("%w: got %s", ErrRoleCannotClaim, role)
	}

	c.role = role
	return nil
}
