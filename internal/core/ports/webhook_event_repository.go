package ports

import (
	"context"
	"errors"
	"time"
)

// ErrWebhookEventAlreadyProcessed is returned by Record when the event
// identifier has been seen before. Handlers treat it as a signal to
// acknowledge the delivery without reapplying its effects.
var ErrWebhookEventAlreadyProcessed = errors.New("webhook event already processed")

// WebhookEventRepository is the idempotency ledger for payment provider
// webhooks. Recording an event and applying its effects happen in the same
// transaction, so an event is either fully applied exactly once or not at
// all.
type WebhookEventRepository interface {
	// Record inserts the event identifier into the processed-events ledger.
	// Returns ErrWebhookEventAlreadyProcessed if it was inserted before.
	Record(ctx context.Context, eventID string, eventType string, receivedAt time.Time) error
}
