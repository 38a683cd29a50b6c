package commands

import (
	"context"
	"time"

	"pressing/internal/core/domain/services"
)

// WeighOrderCommandHandler handles weigh-ins by the assigned fulfiller.
// The total is recomputed from the measured weight; a discount already
// locked in by a promo code is reapplied at its recorded amount.
type WeighOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    *services.PricingCalculator
}

// NewWeighOrderCommandHandler creates a handler for weigh-in operations.
func NewWeighOrderCommandHandler(uowFactory OrderUoWFactory, pricing *services.PricingCalculator) WeighOrderCommandHandler {
	return WeighOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle processes the weigh-in command. Weighing an assigned order also
// starts the work.
func (h *WeighOrderCommandHandler) Handle(ctx context.Context, cmd WeighOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	subtotal, err := h.pricing.Quote(aggregate.ServiceType(), cmd.ActualWeightKg())
	if err != nil {
		return err
	}
	newTotal := subtotal.SubFloored(aggregate.DiscountAmount())

	if err = aggregate.RecordWeighIn(cmd.ActualWeightKg(), newTotal, cmd.Role(), cmd.ActorID(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = stageStatusChanges(ctx, uow.OutboxRepository(), aggregate, now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
