package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AssignmentRetryJob manages the scheduled re-notification of unassigned orders.
// Runs every minute to sweep Pending orders with no shipper and re-invoke the
// assignment service for each of them.
type AssignmentRetryJob struct {
	handler commands.RetryAssignmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAssignmentRetryJob creates a new job for re-notifying the assignment service.
// Uses RetryAssignmentsCommandHandler to process the sweep every minute.
func NewAssignmentRetryJob(handler commands.RetryAssignmentsCommandHandler, logger *slog.Logger) *AssignmentRetryJob {
	return &AssignmentRetryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "assignment_retry_job"),
	}
}

// Start begins the assignment retry job to run every minute.
func (j *AssignmentRetryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRetryAssignmentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios
			if !errors.Is(err, commands.ErrNoUnassignedOrdersFound) {
				j.logger.ErrorContext(ctx, "Assignment retry job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment retry job started (running every minute)")
	return nil
}

// Stop stops the assignment retry job.
func (j *AssignmentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment retry job stopped")
}
