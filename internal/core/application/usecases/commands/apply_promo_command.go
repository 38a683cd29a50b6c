package commands

import (
	"errors"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/promocode"
	"pressing/internal/pkg/guard"
)

var (
	ErrApplyPromoCommandIsNotConstructed = errors.New(
		"ApplyPromoCommand must be created via NewApplyPromoCommand constructor",
	)
	ErrPromoCodeIsRequired = errors.New("promo code is required")
)

// ApplyPromoCommand represents a client redeeming a promo code against one
// of their orders. The code is normalized before lookup, so "welcome10" and
// "WELCOME10" are the same code.
type ApplyPromoCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	clientID kernel.UUID
	code     string

	guard guard.ConstructorGuard
}

// NewApplyPromoCommand creates a command to redeem a promo code.
func NewApplyPromoCommand(orderID kernel.UUID, clientID kernel.UUID, code string) (ApplyPromoCommand, error) {
	promoCommand := ApplyPromoCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		promoCommand.setOrderID(orderID),
		promoCommand.setClientID(clientID),
		promoCommand.setCode(code),
	); err != nil {
		return ApplyPromoCommand{}, err
	}

	return promoCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyPromoCommand) Validate() error {
	return c.guard.Validate(ErrApplyPromoCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the code applies to.
func (c ApplyPromoCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the identifier of the redeeming client.
func (c ApplyPromoCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Code returns the normalized promo code.
func (c ApplyPromoCommand) Code() string {
	return c.code
}

func (c *ApplyPromoCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyPromoCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *ApplyPromoCommand) setCode(code string) error {
	normalized := promocode.NormalizeCode(code)
	if normalized == "" {
		return ErrPromoCodeIsRequired
	}

	c.code = normalized
	return nil
}
