package commands

import (
	"context"
	"time"

	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Prices the order from the estimated weight and persists it in pending
// status, awaiting checkout.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    *services.PricingCalculator
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, pricing *services.PricingCalculator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle processes the order placement command.
// The initial total is an estimate; the final price is fixed at weigh-in.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	initialTotal, err := h.pricing.Quote(cmd.ServiceType(), cmd.EstimatedWeightKg())
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.ClientID(), cmd.ServiceType(), cmd.EstimatedWeightKg(), initialTotal, now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
