package jobs

import (
	"context"
	"log/slog"
	"time"

	"pressing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderSweepJob cancels orders that sat in pending longer than the TTL
// without a payment outcome. A safety net behind the payment provider's
// checkout expiry webhook, so it runs once a minute.
type StaleOrderSweepJob struct {
	handler    commands.CancelStaleOrdersCommandHandler
	pendingTTL time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStaleOrderSweepJob creates a job that sweeps stale pending orders.
func NewStaleOrderSweepJob(
	handler commands.CancelStaleOrdersCommandHandler,
	pendingTTL time.Duration,
	logger *slog.Logger,
) *StaleOrderSweepJob {
	return &StaleOrderSweepJob{
		handler:    handler,
		pendingTTL: pendingTTL,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "stale_order_sweep_job"),
	}
}

// Start begins the sweep job, running at the top of every minute.
func (j *StaleOrderSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCancelStaleOrdersCommand(j.pendingTTL)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep job misconfigured", "error", err)
			return
		}

		cancelled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep job failed", "error", err)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Stale pending orders cancelled", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *StaleOrderSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order sweep job stopped")
}
