package jobs

import (
	"context"
	"log/slog"

	"procurement/internal/core/application/services"

	"github.com/robfig/cron/v3"
)

// ApprovalReminderJob periodically reminds about approval records still
// waiting on a decision. Runs at the top of every hour.
type ApprovalReminderJob struct {
	approvals *services.ApprovalService
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewApprovalReminderJob creates the pending-approval reminder job.
func NewApprovalReminderJob(approvals *services.ApprovalService, logger *slog.Logger) *ApprovalReminderJob {
	return &ApprovalReminderJob{
		approvals: approvals,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "approval_reminder_job"),
	}
}

// Start begins the reminder, running hourly.
func (j *ApprovalReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		records, err := j.approvals.GetPendingApprovals(ctx, "")
		if err != nil {
			j.logger.ErrorContext(ctx, "Approval reminder sweep failed", "error", err)
			return
		}
		if len(records) == 0 {
			return
		}

		// Records come back oldest first
		oldest := records[0]
		j.logger.InfoContext(ctx, "Approvals awaiting decision",
			"count", len(records),
			"oldest_approval_id", oldest.ID().String(),
			"oldest_order_id", oldest.OrderID().String(),
			"oldest_level", oldest.Level(),
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Approval reminder job started (running hourly)")
	return nil
}

// Stop stops the reminder.
func (j *ApprovalReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Approval reminder job stopped")
}
