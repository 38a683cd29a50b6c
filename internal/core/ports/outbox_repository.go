package ports

import (
	"context"

	"pressing/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for transactional outbox
// messages.
type OutboxRepository interface {
	// Add persists an unpublished message within the ambient transaction.
	Add(ctx context.Context, message *outbox.Message) error

	// GetUnpublished retrieves up to limit unpublished messages, oldest
	// first.
	GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error)

	// Update persists delivery state changes for a message.
	Update(ctx context.Context, message *outbox.Message) error
}
