package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"pressing/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxDispatcherJob *OutboxDispatcherJob
	staleOrderSweepJob  *StaleOrderSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	dispatchOutboxHandler commands.DispatchOutboxCommandHandler,
	cancelStaleOrdersHandler commands.CancelStaleOrdersCommandHandler,
	pendingTTL time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxDispatcherJob: NewOutboxDispatcherJob(dispatchOutboxHandler, logger),
		staleOrderSweepJob:  NewStaleOrderSweepJob(cancelStaleOrdersHandler, pendingTTL, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxDispatcherJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox dispatcher job: %w", err)
	}

	if err := jm.staleOrderSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxDispatcherJob.Stop()
		return fmt.Errorf("failed to start stale order sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleOrderSweepJob.Stop()
	jm.outboxDispatcherJob.Stop()
}
