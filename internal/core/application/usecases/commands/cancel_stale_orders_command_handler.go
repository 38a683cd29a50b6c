package commands

import (
	"context"
	"errors"
	"time"

	"pressing/internal/core/domain/model/order"
)

// CancelStaleOrdersCommandHandler sweeps orders stuck in pending past the
// TTL and cancels them. Promo state is never involved: redemption requires a
// paid order, so a pending order cannot hold a code.
//
// The sweep races the provider's own expiry webhook on purpose: whichever
// runs first cancels the order, the other becomes a no-op or a stale write.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale-order sweep.
func NewCancelStaleOrdersCommandHandler(uowFactory OrderUoWFactory) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels every pending order older than the TTL and returns how many
// it cancelled. An order cancelled concurrently by the webhook path is
// skipped, not an error.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.PendingTTL())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	stale, err := orderRepo.GetAllPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, aggregate := range stale {
		changed, err := aggregate.ApplyPaymentExpired(now)
		if err != nil {
			return 0, err
		}
		if !changed {
			continue
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			if errors.Is(err, order.ErrStaleWrite) {
				continue
			}
			return 0, err
		}
		if err = stageStatusChanges(ctx, uow.OutboxRepository(), aggregate, now); err != nil {
			return 0, err
		}
		cancelled++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return cancelled, nil
}
