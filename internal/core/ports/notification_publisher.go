package ports

import (
	"context"

	"pressing/internal/core/domain/model/outbox"
)

// NotificationPublisher delivers outbox messages to their consumers.
// Delivery is at-least-once; consumers must tolerate duplicates.
type NotificationPublisher interface {
	Publish(ctx context.Context, message *outbox.Message) error
}
