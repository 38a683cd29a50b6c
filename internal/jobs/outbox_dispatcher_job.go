package jobs

import (
	"context"
	"log/slog"

	"pressing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// outboxBatchSize bounds how many messages one dispatcher run publishes.
const outboxBatchSize = 100

// OutboxDispatcherJob drains the transactional outbox. Runs every second so
// status-change and payout notifications leave the system with low latency.
type OutboxDispatcherJob struct {
	handler commands.DispatchOutboxCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxDispatcherJob creates a job that publishes staged outbox messages.
func NewOutboxDispatcherJob(handler commands.DispatchOutboxCommandHandler, logger *slog.Logger) *OutboxDispatcherJob {
	return &OutboxDispatcherJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "outbox_dispatcher_job"),
	}
}

// Start begins the dispatcher job to run every second.
func (j *OutboxDispatcherJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchOutboxCommand(outboxBatchSize)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatcher job misconfigured", "error", err)
			return
		}

		published, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatcher job failed", "error", err)
			return
		}

		if published > 0 {
			j.logger.InfoContext(ctx, "Outbox messages published", "count", published)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatcher job started (running every second)")
	return nil
}

// Stop stops the dispatcher job.
func (j *OutboxDispatcherJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatcher job stopped")
}
