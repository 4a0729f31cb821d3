// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order pipeline.
//
// # Available Jobs
//
// 1. AssignmentRetryJob - Runs every minute to re-notify the assignment service
// about Pending orders that still have no shipper
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(retryAssignmentsHandler, logger)
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
// The retry job uses the cron expression "* * * * *" which means it runs every
// minute. The checkout's own post-commit notification is best effort; this
// sweep is what guarantees every order eventually reaches the assignment
// service.
//
// # Error Handling
//
// - The retry job ignores the expected business no-op (no unassigned orders)
// - Per-order notification failures are logged inside the handler and never
// abort the sweep
package jobs
