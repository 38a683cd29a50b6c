package commands

import (
	"context"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/model/promocode"
)

// ApplyPromoCommandHandler handles promo code redemption.
//
// Validation, the usage record, and the counter increment all happen in one
// transaction. Two concurrent redemptions of a nearly exhausted code are
// decided by the conditional increment; two redemptions of a single-use code
// by the same user are decided by the usage record's unique constraint.
type ApplyPromoCommandHandler struct {
	uowFactory PromoUoWFactory
}

// NewApplyPromoCommandHandler creates a handler for promo redemption.
func NewApplyPromoCommandHandler(uowFactory PromoUoWFactory) ApplyPromoCommandHandler {
	return ApplyPromoCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the redemption. Failures of the promocode.ErrPromoInvalid
// family are business rejections, not system errors.
func (h *ApplyPromoCommandHandler) Handle(ctx context.Context, cmd ApplyPromoCommand) error {
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
	if !aggregate.ClientID().IsEqual(cmd.ClientID()) {
		return fmt.Errorf("%w: client %s does not own this order", order.ErrUnauthorized, cmd.ClientID())
	}

	promoRepo := uow.PromoCodeRepository()
	promo, err := promoRepo.GetByCode(ctx, cmd.Code())
	if err != nil {
		return err
	}

	used, err := promoRepo.HasUsageByUser(ctx, promo.ID(), cmd.ClientID())
	if err != nil {
		return err
	}
	if err = promo.CheckRedeemable(now, used); err != nil {
		return err
	}

	discount, newTotal := promo.DiscountFor(aggregate.TotalPrice())
	if err = aggregate.ApplyPromo(promo.ID(), discount, newTotal, now); err != nil {
		return err
	}

	usage, err := promocode.NewUsage(kernel.NewUUID(), promo.ID(), cmd.ClientID(), cmd.OrderID(), !promo.AllowMultipleUses(), now)
	if err != nil {
		return err
	}
	if err = promoRepo.RegisterUsage(ctx, usage); err != nil {
		return err
	}
	if err = promoRepo.IncrementUses(ctx, promo.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
