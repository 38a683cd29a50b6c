// Package jobs provides scheduled background tasks for the pressing
// marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the order lifecycle depends on.
//
// # Available Jobs
//
// 1. OutboxDispatcherJob - Runs every second to publish staged outbox messages
// 2. StaleOrderSweepJob - Runs every minute to cancel orders stuck in pending past their TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchOutboxHandler, cancelStaleOrdersHandler, pendingTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatcher runs every second ("* * * * * *") so notifications leave
// the outbox with low latency. The sweep runs at the top of every minute
// ("0 * * * * *"); it is a safety net behind the payment provider's own
// checkout expiry webhook and does not need to be faster.
//
// # Error Handling
//
// - Dispatcher failures leave messages unpublished; the next run retries them
// - Sweep failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
