package commands

import (
	"context"
	"errors"
	"fmt"

	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/ports"
)

// ErrOrderNotPayable is returned when checkout is requested for an order
// that is not awaiting payment.
var ErrOrderNotPayable = errors.New("order is not awaiting payment")

// CreateCheckoutSessionCommandHandler opens a hosted checkout session for an
// unpaid order. Orders in pending and in failed payment (retry) are payable.
type CreateCheckoutSessionCommandHandler struct {
	uowFactory OrderUoWFactory
	checkout   ports.CheckoutProvider
}

// NewCreateCheckoutSessionCommandHandler creates a handler for checkout creation.
func NewCreateCheckoutSessionCommandHandler(
	uowFactory OrderUoWFactory,
	checkout ports.CheckoutProvider,
) CreateCheckoutSessionCommandHandler {
	return CreateCheckoutSessionCommandHandler{
		uowFactory: uowFactory,
		checkout:   checkout,
	}
}

// Handle loads the order, checks it is payable by this client, and creates
// the provider session. Nothing is written: the session is correlated back
// to the order through its metadata when the webhook arrives.
func (h *CreateCheckoutSessionCommandHandler) Handle(ctx context.Context, cmd CreateCheckoutSessionCommand) (*ports.CheckoutSession, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !aggregate.ClientID().IsEqual(cmd.ClientID()) {
		return nil, fmt.Errorf("%w: client %s does not own this order", order.ErrUnauthorized, cmd.ClientID())
	}
	if aggregate.Status() != order.StatusPending && aggregate.Status() != order.StatusFailedPayment {
		return nil, fmt.Errorf("%w: status is %s", ErrOrderNotPayable, aggregate.Status())
	}
	if aggregate.PaymentStatus() == order.PaymentPaid {
		return nil, fmt.Errorf("%w: already paid", ErrOrderNotPayable)
	}

	session, err := h.checkout.CreateCheckoutSession(ctx, aggregate.ID(), aggregate.ClientID(),
		aggregate.ServiceType(), aggregate.TotalPrice())
	if err != nil {
		return nil, err
	}

	return session, nil
}
