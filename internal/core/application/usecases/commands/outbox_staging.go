package commands

import (
	"context"
	"encoding/json"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/model/outbox"
	"pressing/internal/core/ports"
)

// StatusChangedTopic is the outbox topic carrying order status transitions.
const StatusChangedTopic = "orders.status_changed"

// PayoutDueTopic is the outbox topic carrying completion payout splits.
const PayoutDueTopic = "orders.payout_due"

// statusChangedPayload is the wire form of an order status transition.
type statusChangedPayload struct {
	OrderID    string    `json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Role       string    `json:"role"`
	ActorID    string    `json:"actor_id,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}

// payoutDuePayload is the wire form of a completion payout split.
type payoutDuePayload struct {
	OrderID          string    `json:"order_id"`
	Role             string    `json:"role"`
	FulfillerID      string    `json:"fulfiller_id"`
	PayoutAccountRef string    `json:"payout_account_ref,omitempty"`
	TotalCents       int64     `json:"total_cents"`
	PayoutCents      int64     `json:"payout_cents"`
	CommissionCents  int64     `json:"commission_cents"`
	CompletedAt      time.Time `json:"completed_at"`
}

// stagePayoutDue enqueues the payout split computed when an order completes.
func stagePayoutDue(
	ctx context.Context,
	outboxRepo ports.OutboxRepository,
	aggregate *order.Order,
	role order.Role,
	fulfillerID kernel.UUID,
	payoutAccountRef string,
	payout, commission kernel.Money,
	now time.Time,
) error {
	payload := payoutDuePayload{
		OrderID:          aggregate.ID().String(),
		Role:             role.String(),
		FulfillerID:      fulfillerID.String(),
		PayoutAccountRef: payoutAccountRef,
		TotalCents:       aggregate.TotalPrice().Cents(),
		PayoutCents:      payout.Cents(),
		CommissionCents:  commission.Cents(),
		CompletedAt:      now,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	message, err := outbox.NewMessage(kernel.NewUUID(), PayoutDueTopic, body, now)
	if err != nil {
		return err
	}

	return outboxRepo.Add(ctx, message)
}

// stageStatusChanges drains the aggregate's recorded transitions into the
// outbox so notifications commit atomically with the order mutation.
func stageStatusChanges(ctx context.Context, outboxRepo ports.OutboxRepository, aggregate *order.Order, now time.Time) error {
	for _, change := range aggregate.PopStatusChanges() {
		payload := statusChangedPayload{
			OrderID:    change.OrderID.String(),
			FromStatus: change.FromStatus.String(),
			ToStatus:   change.ToStatus.String(),
			Role:       change.Role.String(),
			ChangedAt:  change.ChangedAt,
		}
		if change.ActorID.Validate() == nil {
			payload.ActorID = change.ActorID.String()
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		message, err := outbox.NewMessage(kernel.NewUUID(), StatusChangedTopic, body, now)
		if err != nil {
			return err
		}

		if err = outboxRepo.Add(ctx, message); err != nil {
			return err
		}
	}

	return nil
}
