package commands

import (
	"context"
	"log/slog"
	"time"

	"pressing/internal/core/ports"
)

// DispatchOutboxCommandHandler publishes pending outbox messages through the
// notification publisher and marks them published.
//
// A failed publish leaves the message pending for the next run; it never
// rolls back the state change that staged it.
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.NotificationPublisher
	logger     *slog.Logger
}

// NewDispatchOutboxCommandHandler creates a handler for outbox dispatch runs.
func NewDispatchOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.NotificationPublisher, logger *slog.Logger) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "outbox_dispatch"),
	}
}

// Handle publishes up to the batch size of pending messages, oldest first,
// and returns how many went out. Messages whose publish fails stay pending.
func (h *DispatchOutboxCommandHandler) Handle(ctx context.Context, cmd DispatchOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	pending, err := outboxRepo.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	published := 0
	for _, message := range pending {
		if err = h.publisher.Publish(ctx, message); err != nil {
			h.logger.Error("publish failed, message stays pending",
				"message_id", message.ID().String(), "topic", message.Topic(), "error", err)
			continue
		}

		message.MarkPublished(now)
		if err = outboxRepo.Update(ctx, message); err != nil {
			return 0, err
		}
		published++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return published, nil
}
