// Package jobs provides scheduled background tasks for the procurement system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the procurement service.
//
// # Available Jobs
//
// 1. DeliveryTrackingJob - Runs every minute to surface delivery batches still with the carrier
// 2. ApprovalReminderJob - Runs hourly to remind about approval records awaiting a decision
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required services
//	jobManager := jobs.NewJobManager(deliveryService, approvalService, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs are read-only sweeps: a failed run is logged and the next tick
// retries from scratch, so no sweep error requires intervention. Failed job
// starts stop any already running jobs.
package jobs
