package commands

import (
	"context"
	"errors"
	"fmt"

	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"
)

// ErrUnknownCorrelation is returned when a webhook event references an order
// this system never created. The delivery should be acknowledged so the
// provider stops retrying it.
var ErrUnknownCorrelation = errors.New("webhook event references an unknown order")

// ReconcilePaymentCommandHandler applies verified payment provider events to
// orders, exactly once.
//
// The idempotency ledger insert and the order mutation share one
// transaction: a replayed delivery hits the ledger's unique constraint and
// returns ports.ErrWebhookEventAlreadyProcessed with nothing applied, while
// a crash between apply and commit rolls both back so the provider's retry
// starts clean.
type ReconcilePaymentCommandHandler struct {
	uowFactory ReconcileUoWFactory
}

// NewReconcilePaymentCommandHandler creates a handler for webhook reconciliation.
func NewReconcilePaymentCommandHandler(uowFactory ReconcileUoWFactory) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one webhook event.
//
// Duplicate deliveries return ports.ErrWebhookEventAlreadyProcessed, unknown
// orders return ErrUnknownCorrelation; both are acknowledgeable conditions,
// not failures to retry. Stale events that would regress the order are
// recorded in the ledger and otherwise ignored.
func (h *ReconcilePaymentCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := cmd.ReceivedAt().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.WebhookEventRepository().Record(ctx, cmd.EventID(), cmd.EventType(), now); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("%w: %s", ErrUnknownCorrelation, cmd.OrderID())
		}
		return err
	}

	changed, err := h.apply(aggregate, cmd)
	if err != nil {
		return err
	}

	if changed {
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		if err = stageStatusChanges(ctx, uow.OutboxRepository(), aggregate, now); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h *ReconcilePaymentCommandHandler) apply(aggregate *order.Order, cmd ReconcilePaymentCommand) (bool, error) {
	now := cmd.ReceivedAt().UTC()

	switch cmd.EventType() {
	case EventCheckoutCompleted:
		return aggregate.ApplyPaymentCompleted(now)
	case EventCheckoutExpired:
		return aggregate.ApplyPaymentExpired(now)
	case EventPaymentFailed:
		return aggregate.ApplyPaymentFailed(now)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedEventType, cmd.EventType())
	}
}
