package jobs

import (
	"fmt"
	"log/slog"

	"procurement/internal/core/application/services"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryTrackingJob *DeliveryTrackingJob
	approvalReminderJob *ApprovalReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes application services as dependencies to wire up the job execution.
func NewJobManager(
	deliveries *services.DeliveryService,
	approvals *services.ApprovalService,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryTrackingJob: NewDeliveryTrackingJob(deliveries, logger),
		approvalReminderJob: NewApprovalReminderJob(approvals, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryTrackingJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery tracking job: %w", err)
	}

	if err := jm.approvalReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.deliveryTrackingJob.Stop()
		return fmt.Errorf("failed to start approval reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.approvalReminderJob.Stop()
	jm.deliveryTrackingJob.Stop()
}
