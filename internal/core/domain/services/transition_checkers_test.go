package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

func newDraftOrder(t *testing.T) *order.PurchaseOrder {
	t.Helper()
	o, err := order.NewPurchaseOrder(kernel.NewUUID(), "PO-20260101-0001", "test order", kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	return o
}

func Test_OrderTransitions(t *testing.T) {
	checker := NewOrderTransitions()

	t.Run("permits transitions from the status table", func(t *testing.T) {
		o := newDraftOrder(t)
		assert.True(t, checker.Can(o, order.SubmitForApproval))
		assert.True(t, checker.Can(o, order.Cancel))
		assert.False(t, checker.Can(o, order.Approve))
	})

	t.Run("apply mutates only on permitted transitions", func(t *testing.T) {
		o := newDraftOrder(t)
		assert.False(t, checker.Apply(o, order.Approve))
		assert.Equal(t, order.Draft, o.Status())

		assert.True(t, checker.Apply(o, order.SubmitForApproval))
		assert.Equal(t, order.PendingApproval, o.Status())
	})

	t.Run("nil order is never transitionable", func(t *testing.T) {
		assert.False(t, checker.Can(nil, order.SubmitForApproval))
		assert.False(t, checker.Apply(nil, order.SubmitForApproval))
	})
}

func Test_ApprovalTransitions(t *testing.T) {
	checker := NewApprovalTransitions()

	t.Run("pending records accept decisions", func(t *testing.T) {
		a, err := approval.NewApproval(kernel.NewUUID(), kernel.NewUUID(), "一级审批", 1)
		require.NoError(t, err)
		assert.True(t, checker.Can(a, approval.Approve))
		assert.True(t, checker.Can(a, approval.Reject))
	})

	t.Run("resolved records are terminal", func(t *testing.T) {
		a, err := approval.NewApproval(kernel.NewUUID(), kernel.NewUUID(), "一级审批", 1)
		require.NoError(t, err)
		require.True(t, a.Resolve("approver-1", true, "ok", time.Now()))

		assert.False(t, checker.Can(a, approval.Approve))
		assert.False(t, checker.Can(a, approval.Cancel))
	})

	t.Run("nil record is never transitionable", func(t *testing.T) {
		assert.False(t, checker.Can(nil, approval.Approve))
	})
}

func Test_DeliveryTransitions(t *testing.T) {
	checker := NewDeliveryTransitions()

	t.Run("pipeline steps follow the linear order", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), "BATCH-001")
		require.NoError(t, err)

		assert.True(t, checker.Can(d, delivery.Ship))
		assert.False(t, checker.Can(d, delivery.Receive))

		require.True(t, d.StampShipped(time.Now(), "顺丰速运", "SF123", nil))
		assert.True(t, checker.Can(d, delivery.MarkInTransit))
		assert.False(t, checker.Can(d, delivery.Ship))
	})

	t.Run("nil batch is never transitionable", func(t *testing.T) {
		assert.False(t, checker.Can(nil, delivery.Ship))
	})
}
