package jobs

import (
	"context"
	"log/slog"

	"procurement/internal/core/application/services"

	"github.com/robfig/cron/v3"
)

// DeliveryTrackingJob periodically sweeps delivery batches that are with the
// carrier and surfaces them in the log for operations to chase. Runs every
// minute.
type DeliveryTrackingJob struct {
	deliveries *services.DeliveryService
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDeliveryTrackingJob creates the in-transit sweep job.
func NewDeliveryTrackingJob(deliveries *services.DeliveryService, logger *slog.Logger) *DeliveryTrackingJob {
	return &DeliveryTrackingJob{
		deliveries: deliveries,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "delivery_tracking_job"),
	}
}

// Start begins the sweep, running at the top of every minute.
func (j *DeliveryTrackingJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		batches, err := j.deliveries.FindInTransit(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Delivery tracking sweep failed", "error", err)
			return
		}
		if len(batches) == 0 {
			return
		}

		j.logger.InfoContext(ctx, "Deliveries in transit", "count", len(batches))
		for _, batch := range batches {
			j.logger.InfoContext(ctx, "In-transit batch",
				"delivery_id", batch.ID().String(),
				"order_id", batch.OrderID().String(),
				"batch_number", batch.BatchNumber(),
				"logistics_company", batch.LogisticsCompany(),
				"tracking_number", batch.TrackingNumber(),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery tracking job started (running every minute)")
	return nil
}

// Stop stops the sweep.
func (j *DeliveryTrackingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery tracking job stopped")
}
