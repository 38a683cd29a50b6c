package commands

import (
	"context"
	"time"

	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/services"
)

// TransitionOrderCommandHandler handles lifecycle transitions requested by
// clients, fulfillers, and back-office staff.
//
// The write is guarded by the aggregate version, so two concurrent
// transitions from the same snapshot resolve to one winner and one
// order.ErrStaleWrite.
type TransitionOrderCommandHandler struct {
	uowFactory ClaimUoWFactory
	pricing    *services.PricingCalculator
}

// NewTransitionOrderCommandHandler creates a handler for transition operations.
func NewTransitionOrderCommandHandler(uowFactory ClaimUoWFactory, pricing *services.PricingCalculator) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle processes the transition command. Moving an assigned order back to
// confirmed is a release: the fulfiller is cleared and the order returns to
// the claimable pool. Completing an order additionally computes the payout
// split and stages a payout notification in the same transaction.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	if aggregate.Status() == order.StatusAssigned && cmd.Target() == order.StatusConfirmed {
		err = aggregate.Release(cmd.Role(), cmd.ActorID(), now)
	} else {
		err = aggregate.TransitionTo(cmd.Target(), cmd.Role(), cmd.ActorID(), now)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = stageStatusChanges(ctx, uow.OutboxRepository(), aggregate, now); err != nil {
		return err
	}

	if aggregate.Status() == order.StatusCompleted {
		if err = h.stageCompletionPayout(ctx, uow, aggregate, now); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// stageCompletionPayout splits the completed order's total between the
// assigned fulfiller and the platform and enqueues the payout notification.
func (h *TransitionOrderCommandHandler) stageCompletionPayout(ctx context.Context, uow ClaimUoW, aggregate *order.Order, now time.Time) error {
	fulfillerID, role := aggregate.Fulfiller()

	var partnerTier float64
	var payoutAccountRef string
	switch role {
	case order.RoleWasher:
		washer, err := uow.FulfillerRepository().GetWasher(ctx, *fulfillerID)
		if err != nil {
			return err
		}
		payoutAccountRef = washer.PayoutAccountRef()
	case order.RolePartner:
		partner, err := uow.FulfillerRepository().GetPartner(ctx, *fulfillerID)
		if err != nil {
			return err
		}
		partnerTier = partner.CommissionTier()
		payoutAccountRef = partner.PayoutAccountRef()
	}

	payout, commission, err := h.pricing.Split(aggregate.TotalPrice(), role, partnerTier)
	if err != nil {
		return err
	}

	return stagePayoutDue(ctx, uow.OutboxRepository(), aggregate, role, *fulfillerID, payoutAccountRef, payout, commission, now)
}
