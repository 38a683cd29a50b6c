package commands

import (
	"errors"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/guard"
)

// Payment provider event types the reconciler understands.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
	EventPaymentFailed     = "payment_intent.payment_failed"
)

var (
	ErrReconcilePaymentCommandIsNotConstructed = errors.New(
		"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
	)
	ErrEventIDIsRequired = errors.New("event id is required")

	// ErrUnsupportedEventType marks provider events the reconciler does not
	// handle. Deliveries of such events are acknowledged and dropped.
	ErrUnsupportedEventType = errors.New("unsupported payment event type")
)

// IsSupportedPaymentEvent reports whether the reconciler handles the given
// provider event type.
func IsSupportedPaymentEvent(eventType string) bool {
	switch eventType {
	case EventCheckoutCompleted, EventCheckoutExpired, EventPaymentFailed:
		return true
	default:
		return false
	}
}

// ReconcilePaymentCommand represents one verified payment provider webhook
// event to apply to an order. The order identifier comes from the session
// metadata stamped at checkout creation.
type ReconcilePaymentCommand struct { //nolint:recvcheck //using for validation
	eventID    string
	eventType  string
	orderID    kernel.UUID
	receivedAt time.Time

	guard guard.ConstructorGuard
}

// NewReconcilePaymentCommand creates a command to reconcile a webhook event.
// Rejects event types the reconciler does not understand.
func NewReconcilePaymentCommand(
	eventID string,
	eventType string,
	orderID kernel.UUID,
	receivedAt time.Time,
) (ReconcilePaymentCommand, error) {
	reconcileCommand := ReconcilePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reconcileCommand.setEventID(eventID),
		reconcileCommand.setEventType(eventType),
		reconcileCommand.setOrderID(orderID),
		reconcileCommand.setReceivedAt(receivedAt),
	); err != nil {
		return ReconcilePaymentCommand{}, err
	}

	return reconcileCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

// EventID returns the provider's unique event identifier.
func (c ReconcilePaymentCommand) EventID() string {
	return c.eventID
}

// EventType returns the provider event type.
func (c ReconcilePaymentCommand) EventType() string {
	return c.eventType
}

// OrderID returns the order the event correlates to.
func (c ReconcilePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ReceivedAt returns when the delivery was received.
func (c ReconcilePaymentCommand) ReceivedAt() time.Time {
	return c.receivedAt
}

func (c *ReconcilePaymentCommand) setEventID(eventID string) error {
	if eventID == "" {
		return ErrEventIDIsRequired
	}

	c.eventID = eventID
	return nil
}

func (c *ReconcilePaymentCommand) setEventType(eventType string) error {
	if !IsSupportedPaymentEvent(eventType) {
		return fmt.Errorf("%w: %s", ErrUnsupportedEventType, eventType)
	}

	c.eventType = eventType
	return nil
}

func (c *ReconcilePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReconcilePaymentCommand) setReceivedAt(receivedAt time.Time) error {
	if receivedAt.IsZero() {
		return errors.New("receivedAt is required")
	}

	c.receivedAt = receivedAt
	return nil
}
