package delivery_test

import (
	"fmt"
	"testing"
	"time"

	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), "DB-20260830-001")
	require.NoError(t, err)
	return d
}

// shipTestDelivery advances a fresh batch to the named status.
func shipTestDelivery(t *testing.T, target delivery.Status) *delivery.Delivery {
	t.Helper()
	d := newTestDelivery(t)
	now := time.Now()

	steps := []struct {
		status  delivery.Status
		advance func() bool
	}{
		{delivery.Shipped, func() bool { return d.StampShipped(now, "顺丰速运", "SF123456789", nil) }},
		{delivery.InTransit, d.StampInTransit},
		{delivery.Arrived, func() bool { return d.StampArrived(now) }},
		{delivery.Received, func() bool { return d.StampReceived(now, "receiver-1", "100") }},
		{delivery.Inspected, func() bool { return d.StampInspected(now, "inspector-1", true, "100", "0", "全数合格") }},
		{delivery.Warehoused, func() bool { return d.StampWarehoused(now, "keeper-1", "A区-01-01") }},
	}

	for _, step := range steps {
		if d.Status() == target {
			return d
		}
		require.True(t, step.advance(), "advancing to %s", step.status)
	}
	require.Equal(t, target, d.Status())
	return d
}

func TestNewDelivery(t *testing.T) {
	t.Run("should create pending batch with zero quantities", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()

		d, err := delivery.NewDelivery(id, orderID, "DB-20260830-001")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(id))
		assert.True(t, d.OrderID().IsEqual(orderID))
		assert.Equal(t, "DB-20260830-001", d.BatchNumber())
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Equal(t, "0.0000", d.DeliveredQuantity())
		assert.Equal(t, "0.0000", d.QualifiedQuantity())
		assert.Equal(t, "0.0000", d.RejectedQuantity())
		assert.Nil(t, d.ShipTime())
		assert.Empty(t, d.Attachments())
	})

	t.Run("should fail with invalid IDs", func(t *testing.T) {
		var invalidID kernel.UUID

		d, err := delivery.NewDelivery(invalidID, kernel.NewUUID(), "DB-1")
		require.Error(t, err)
		assert.Nil(t, d)

		d, err = delivery.NewDelivery(kernel.NewUUID(), invalidID, "DB-1")
		require.Error(t, err)
		assert.Nil(t, d)
	})

	t.Run("should fail with empty batch number", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), "")

		require.Error(t, err)
		assert.Nil(t, d)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
	})
}

func TestDelivery_Validate(t *testing.T) {
	t.Run("should fail for nil batch", func(t *testing.T) {
		var d *delivery.Delivery

		err := d.Validate()

		require.Error(t, err)
		assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, err)
	})

	t.Run("should fail for zero value batch", func(t *testing.T) {
		var d delivery.Delivery

		err := d.Validate()

		require.Error(t, err)
		assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, err)
	})
}

func TestDelivery_StampShipped(t *testing.T) {
	t.Run("should record shipping facts", func(t *testing.T) {
		d := newTestDelivery(t)
		now := time.Now()
		eta := now.Add(72 * time.Hour)

		applied := d.StampShipped(now, "顺丰速运", "SF123456789", &eta)

		require.True(t, applied)
		assert.Equal(t, delivery.Shipped, d.Status())
		assert.Equal(t, "顺丰速运", d.LogisticsCompany())
		assert.Equal(t, "SF123456789", d.TrackingNumber())
		require.NotNil(t, d.ShipTime())
		assert.Equal(t, now, *d.ShipTime())
		require.NotNil(t, d.EstimatedArrivalTime())
		assert.Equal(t, eta, *d.EstimatedArrivalTime())
	})

	t.Run("should refuse shipping twice", func(t *testing.T) {
		d := shipTestDelivery(t, delivery.Shipped)

		applied := d.StampShipped(time.Now(), "中通快递", "ZT0001", nil)

		assert.False(t, applied)
		assert.Equal(t, "顺丰速运", d.LogisticsCompany())
	})
}

func TestDelivery_PipelineOrder(t *testing.T) {
	t.Run("should refuse skipping pipeline steps", func(t *testing.T) {
		now := time.Now()
		testCases := []struct {
			name    string
			attempt func(d *delivery.Delivery) bool
		}{
			{"arrive before transit", func(d *delivery.Delivery) bool { return d.StampArrived(now) }},
			{"receive before arrival", func(d *delivery.Delivery) bool { return d.StampReceived(now, "receiver-1", "100") }},
			{"inspect before receiving", func(d *delivery.Delivery) bool {
				return d.StampInspected(now, "inspector-1", true, "100", "0", "")
			}},
			{"warehouse before inspection", func(d *delivery.Delivery) bool {
				return d.StampWarehoused(now, "keeper-1", "A区-01-01")
			}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				d := shipTestDelivery(t, delivery.Shipped)

				assert.False(t, tc.attempt(d))
				assert.Equal(t, delivery.Shipped, d.Status())
			})
		}
	})

	t.Run("should walk the pipeline end to end", func(t *testing.T) {
		d := shipTestDelivery(t, delivery.Warehoused)

		assert.Equal(t, delivery.Warehoused, d.Status())
		assert.Equal(t, "receiver-1", d.ReceivedBy())
		assert.Equal(t, "inspector-1", d.InspectedBy())
		assert.Equal(t, "keeper-1", d.WarehousedBy())
		assert.Equal(t, "A区-01-01", d.WarehouseLocation())
		assert.True(t, d.InspectionPassed())
		assert.NotNil(t, d.ReceiveTime())
		assert.NotNil(t, d.InspectTime())
		assert.NotNil(t, d.WarehouseTime())
	})
}

func TestDelivery_StampReceived(t *testing.T) {
	t.Run("should normalize delivered quantity to quantity scale", func(t *testing.T) {
		d := shipTestDelivery(t, delivery.Arrived)

		applied := d.StampReceived(time.Now(), "receiver-1", "99.5")

		require.True(t, applied)
		assert.Equal(t, "99.5000", d.DeliveredQuantity())
		assert.Equal(t, "receiver-1", d.ReceivedBy())
	})
}

func TestDelivery_StampInspected(t *testing.T) {
	t.Run("should record passing inspection without discrepancy", func(t *testing.T) {
		d := shipTestDelivery(t, delivery.Received)

		applied := d.StampInspected(time.Now(), "inspector-1", true, "100", "0", "全数合格")

		require.True(t, applied)
		assert.Equal(t, delivery.Inspected, d.Status())
		assert.True(t, d.InspectionPassed())
		assert.Equal(t, "100.0000", d.QualifiedQuantity())
		assert.Equal(t, "0.0000", d.RejectedQuantity())
		assert.Equal(t, "全数合格", d.InspectionComment())
		assert.Empty(t, d.DiscrepancyReason())
	})

	t.Run("should auto-populate discrepancy reason on rejection", func(t *testing.T) {
		d := shipTestDelivery(t, delivery.Received)

		applied := d.StampInspected(time.Now(), "inspector-1", false, "95", "5", "外观破损")

		require.True(t, applied)
		assert.False(t, d.InspectionPassed())
		assert.Equal(t, "95.0000", d.QualifiedQuantity())
		assert.Equal(t, "5.0000", d.RejectedQuantity())
		assert.Equal(t, "quality inspection failed quantity: 5", d.DiscrepancyReason())
	})
}

func TestDelivery_Attachments(t *testing.T) {
	t.Run("should record attachment references by name", func(t *testing.T) {
		d := newTestDelivery(t)

		d.AddAttachment("送货单", "files/delivery-note-001.pdf")

		assert.Equal(t, "files/delivery-note-001.pdf", d.Attachments()["送货单"])
	})
}

func TestStatus_ApplyTransition(t *testing.T) {
	t.Run("should permit only the next pipeline step", func(t *testing.T) {
		testCases := []struct {
			from       delivery.Status
			transition delivery.Transition
			to         delivery.Status
		}{
			{delivery.Pending, delivery.Ship, delivery.Shipped},
			{delivery.Shipped, delivery.MarkInTransit, delivery.InTransit},
			{delivery.InTransit, delivery.Arrive, delivery.Arrived},
			{delivery.Arrived, delivery.Receive, delivery.Received},
			{delivery.Received, delivery.Inspect, delivery.Inspected},
			{delivery.Inspected, delivery.WarehouseGoods, delivery.Warehoused},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("%s via %s", tc.from, tc.transition), func(t *testing.T) {
				next, ok := tc.from.ApplyTransition(tc.transition)

				require.True(t, ok)
				assert.Equal(t, tc.to, next)
				assert.True(t, tc.from.CanTransition(tc.transition))
			})
		}
	})

	t.Run("should refuse any step from warehoused", func(t *testing.T) {
		transitions := []delivery.Transition{
			delivery.Ship,
			delivery.MarkInTransit,
			delivery.Arrive,
			delivery.Receive,
			delivery.Inspect,
			delivery.WarehouseGoods,
		}

		for _, transition := range transitions {
			_, ok := delivery.Warehoused.ApplyTransition(transition)
			assert.False(t, ok, "transition %s", transition)
		}
	})

	t.Run("should refuse stepping backwards", func(t *testing.T) {
		_, ok := delivery.Arrived.ApplyTransition(delivery.Ship)
		assert.False(t, ok)

		_, ok = delivery.Inspected.ApplyTransition(delivery.Receive)
		assert.False(t, ok)
	})
}

func TestRestoreDelivery(t *testing.T) {
	t.Run("should reconstruct batch from persistence", func(t *testing.T) {
		now := time.Now()
		snapshot := delivery.Snapshot{
			ID:                kernel.NewUUID(),
			OrderID:           kernel.NewUUID(),
			BatchNumber:       "DB-20260830-001",
			Status:            delivery.Inspected,
			LogisticsCompany:  "顺丰速运",
			TrackingNumber:    "SF123456789",
			ShipTime:          &now,
			DeliveredQuantity: "100.0000",
			QualifiedQuantity: "95.0000",
			RejectedQuantity:  "5.0000",
			DiscrepancyReason: "quality inspection failed quantity: 5",
		}

		d, err := delivery.RestoreDelivery(snapshot)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, delivery.Inspected, d.Status())
		assert.Equal(t, "95.0000", d.QualifiedQuantity())
		assert.NotNil(t, d.Attachments())
	})

	t.Run("should fail on invalid stored status", func(t *testing.T) {
		snapshot := delivery.Snapshot{
			ID:          kernel.NewUUID(),
			OrderID:     kernel.NewUUID(),
			BatchNumber: "DB-1",
			Status:      delivery.Status("lost"),
		}

		d, err := delivery.RestoreDelivery(snapshot)

		require.Error(t, err)
		assert.Nil(t, d)
	})
}
