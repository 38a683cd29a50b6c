package commands

import (
	"errors"
	"time"

	"pressing/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
	ErrPendingTTLIsInvalid = errors.New("pending TTL must be greater than 0")
)

// CancelStaleOrdersCommand represents a sweep of orders that sat in pending
// longer than the TTL without a payment outcome. A safety net behind the
// provider's checkout expiry webhook.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	pendingTTL time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to sweep stale pending orders.
func NewCancelStaleOrdersCommand(pendingTTL time.Duration) (CancelStaleOrdersCommand, error) {
	sweepCommand := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if pendingTTL <= 0 {
		return CancelStaleOrdersCommand{}, ErrPendingTTLIsInvalid
	}
	sweepCommand.pendingTTL = pendingTTL

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// PendingTTL returns how long an order may stay pending before the sweep
// cancels it.
func (c CancelStaleOrdersCommand) PendingTTL() time.Duration {
	return c.pendingTTL
}
