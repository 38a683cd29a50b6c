// Package notifier provides the default NotificationPublisher backed by
// structured logging. It is meant for deployments that have no message
// broker yet: every outbox message is written to the log, which keeps the
// dispatch pipeline exercised end to end and leaves an audit trail.
package notifier

import (
	"context"
	"log/slog"

	"pressing/internal/core/domain/model/outbox"
	"pressing/internal/pkg/errs"
)

// LogPublisher implements ports.NotificationPublisher by emitting each
// message as a structured log record.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) (*LogPublisher, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &LogPublisher{logger: logger.With("component", "notifier")}, nil
}

func (p *LogPublisher) Publish(_ context.Context, message *outbox.Message) error {
	if message == nil {
		return errs.NewValueIsRequiredError("message")
	}
	p.logger.Info("outbox message published",
		"message_id", message.ID().String(),
		"topic", message.Topic(),
		"payload", string(message.Payload()),
	)
	return nil
}
