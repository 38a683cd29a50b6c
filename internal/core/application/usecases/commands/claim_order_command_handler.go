package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/order"
)

// ErrFulfillerNotEligible is returned when the claiming washer or partner is
// not approved (or, for washers, not currently available).
var ErrFulfillerNotEligible = errors.New("fulfiller is not eligible to claim orders")

// ClaimOrderCommandHandler handles the atomic claim of a confirmed order.
//
// Eligibility is checked against the fulfiller's record inside the same
// transaction as the claim itself; the conditional write in the repository is
// what guarantees at most one winner under concurrency.
type ClaimOrderCommandHandler struct {
	uowFactory ClaimUoWFactory
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
func NewClaimOrderCommandHandler(uowFactory ClaimUoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claim command.
// Returns order.ErrAlreadyClaimed when another fulfiller won the race and
// ErrFulfillerNotEligible when the claimant may not take work.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	if err := h.checkEligibility(ctx, uow, cmd); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Claim(cmd.Role(), cmd.FulfillerID(), now); err != nil {
		return err
	}

	if err = orderRepo.Claim(ctx, aggregate); err != nil {
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

func (h *ClaimOrderCommandHandler) checkEligibility(ctx context.Context, uow ClaimUoW, cmd ClaimOrderCommand) error {
	fulfillerRepo := uow.FulfillerRepository()

	switch cmd.Role() {
	case order.RoleWasher:
		washer, err := fulfillerRepo.GetWasher(ctx, cmd.FulfillerID())
		if err != nil {
			return err
		}
		if !washer.CanClaim() {
			return fmt.Errorf("%w: washer %s", ErrFulfillerNotEligible, cmd.FulfillerID())
		}
	case order.RolePartner:
		partner, err := fulfillerRepo.GetPartner(ctx, cmd.FulfillerID())
		if err != nil {
			return err
		}
		if !partner.CanClaim() {
			return fmt.Errorf("%w: partner %s", ErrFulfillerNotEligible, cmd.FulfillerID())
		}
	default:
		return ErrRoleCannotClaim
	}

	return nil
}
