package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/internal/core/application/services"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

func Test_OrderService_CreateOrder(t *testing.T) {
	ctx := t.Context()

	t.Run("computes totals over the supplied lines", func(t *testing.T) {
		f := newFixture()

		o, err := f.orders.CreateOrder(ctx, kernel.NewUUID(), "", []services.ItemInput{
			{ProductName: "机械键盘", Quantity: "10", UnitPrice: "100", TaxRate: "10.00"},
			{ProductName: "显示器", Quantity: "5", UnitPrice: "200", TaxRate: "5.00"},
		})
		require.NoError(t, err)

		assert.Equal(t, order.Draft, o.Status())
		assert.Equal(t, "2000.00", o.TotalAmount())
		assert.Equal(t, "2000.00", o.PayableAmount())
		assert.Equal(t, "PO-TEST-0001", o.OrderNumber())
		assert.Equal(t, "采购订单 - 华东电子", o.Title())
		require.Len(t, o.Items(), 2)
		assert.Equal(t, "1000.00", o.Items()[0].Subtotal())
		assert.Equal(t, "100.00", o.Items()[0].TaxAmount())
	})

	t.Run("catalog reference overwrites name code and unit", func(t *testing.T) {
		f := newFixture()
		skuID := kernel.NewUUID()
		f.catalog.products[skuID.String()] = ports.CatalogProduct{
			ID:          skuID,
			ProductName: "千兆交换机",
			ProductCode: "SW-1000",
			Unit:        "台",
		}

		o, err := f.orders.CreateOrder(ctx, kernel.NewUUID(), "网络设备采购", []services.ItemInput{
			{SKUID: &skuID, ProductName: "raw name", ProductCode: "raw code", UnitPrice: "3500"},
		})
		require.NoError(t, err)

		item := o.Items()[0]
		assert.Equal(t, "千兆交换机", item.ProductName())
		assert.Equal(t, "SW-1000", item.ProductCode())
		assert.Equal(t, "台", item.Unit())
		assert.Equal(t, "3500.00", item.Subtotal())
	})

	t.Run("publishes OrderCreated after commit", func(t *testing.T) {
		f := newFixture()

		o, err := f.orders.CreateOrder(ctx, kernel.NewUUID(), "t", nil)
		require.NoError(t, err)
		require.Len(t, f.publisher.created, 1)
		assert.True(t, f.publisher.created[0].IsEqual(o.ID()))
	})
}

func Test_OrderService_UpdateOrderStatus(t *testing.T) {
	ctx := t.Context()

	t.Run("valid transition persists and publishes old and new status", func(t *testing.T) {
		f := newFixture()
		o, err := f.orders.CreateOrder(ctx, kernel.NewUUID(), "t", nil)
		require.NoError(t, err)

		ok, err := f.orders.UpdateOrderStatus(ctx, o.ID(), order.SubmitForApproval)
		require.NoError(t, err)
		assert.True(t, ok)

		stored, err := f.orders.GetOrder(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.PendingApproval, stored.Status())

		require.Len(t, f.publisher.changes, 1)
		assert.Equal(t, order.Draft, f.publisher.changes[0].OldStatus)
		assert.Equal(t, order.PendingApproval, f.publisher.changes[0].NewStatus)
	})

	t.Run("cancelled is terminal for every transition", func(t *testing.T) {
		f := newFixture()
		o, err := f.orders.CreateOrder(ctx, kernel.NewUUID(), "t", nil)
		require.NoError(t, err)

		ok, err := f.orders.CancelOrder(ctx, o.ID(), "no longer needed")
		require.NoError(t, err)
		require.True(t, ok)

		for _, transition := range []order.Transition{
			order.SubmitForApproval, order.Approve, order.Reject,
			order.Cancel, order.Purchase, order.MarkShipped,
			order.MarkReceived, order.Complete,
		} {
			ok, err = f.orders.UpdateOrderStatus(ctx, o.ID(), transition)
			require.NoError(t, err)
			assert.False(t, ok, "transition %s must be refused from cancelled", transition)
		}

		stored, err := f.orders.GetOrder(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, stored.Status())
	})

	t.Run("purchasing leg is reachable from approved", func(t *testing.T) {
		f := newFixture()
		o, err := f.orders.CreateOrder(ctx, kernel.NewUUID(), "t", nil)
		require.NoError(t, err)

		mustTransition(t, f, o.ID(), order.SubmitForApproval)
		mustTransition(t, f, o.ID(), order.Approve)
		mustTransition(t, f, o.ID(), order.Purchase)
		mustTransition(t, f, o.ID(), order.MarkShipped)

		stored, err := f.orders.GetOrder(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Shipped, stored.Status())
	})
}

func Test_OrderService_GuardedStamping(t *testing.T) {
	ctx := t.Context()

	t.Run("approve stamps only after the transition succeeded", func(t *testing.T) {
		f := newFixture()
		o, err := f.orders.CreateOrder(ctx, kernel.NewUUID(), "t", nil)
		require.NoError(t, err)

		// Draft does not permit approve; nothing may be stamped.
		ok, err := f.orders.ApproveOrder(ctx, o.ID(), "user-7", "lgtm")
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := f.orders.GetOrder(ctx, o.ID())
		require.NoError(t, err)
		assert.Empty(t, stored.ApprovedBy())
		assert.Nil(t, stored.ApproveTime())

		mustTransition(t, f, o.ID(), order.SubmitForApproval)

		ok, err = f.orders.ApproveOrder(ctx, o.ID(), "user-7", "lgtm")
		require.NoError(t, err)
		assert.True(t, ok)

		stored, err = f.orders.GetOrder(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Approved, stored.Status())
		assert.Equal(t, "user-7", stored.ApprovedBy())
		assert.Equal(t, "lgtm", stored.ApprovalComment())
		assert.NotNil(t, stored.ApproveTime())
	})

	t.Run("cancel records reason and time", func(t *testing.T) {
		f := newFixture()
		o, err := f.orders.CreateOrder(ctx, kernel.NewUUID(), "t", nil)
		require.NoError(t, err)

		ok, err := f.orders.CancelOrder(ctx, o.ID(), "过期作废")
		require.NoError(t, err)
		require.True(t, ok)

		stored, err := f.orders.GetOrder(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, "过期作废", stored.CancelReason())
		assert.NotNil(t, stored.CancelTime())
	})
}

func mustTransition(t *testing.T, f *fixture, orderID kernel.UUID, transition order.Transition) {
	t.Helper()
	ok, err := f.orders.UpdateOrderStatus(t.Context(), orderID, transition)
	require.NoError(t, err)
	require.True(t, ok, "transition %s", transition)
}
