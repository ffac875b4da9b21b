package order_test

import (
	"testing"

	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create item with documented defaults", func(t *testing.T) {
		id := kernel.NewUUID()

		item, err := order.NewItem(id, "千兆交换机")

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ID().IsEqual(id))
		assert.Equal(t, "千兆交换机", item.ProductName())
		assert.Equal(t, "1.0000", item.Quantity())
		assert.Equal(t, "个", item.Unit())
		assert.Equal(t, "0.0000", item.UnitPrice())
		assert.Equal(t, "0.00", item.Subtotal())
		assert.Equal(t, "0.00", item.TaxRate())
		assert.Equal(t, "0.00", item.TaxAmount())
		assert.Equal(t, delivery.Pending, item.DeliveryStatus())
		assert.Nil(t, item.SKU())
		assert.Nil(t, item.SPU())
	})

	t.Run("should fail with invalid ID", func(t *testing.T) {
		var invalidID kernel.UUID

		item, err := order.NewItem(invalidID, "千兆交换机")

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("should fail with empty product name", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), "")

		require.Error(t, err)
		assert.Nil(t, item)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
		assert.Contains(t, err.Error(), "productName")
	})
}

func TestItem_Validate(t *testing.T) {
	t.Run("should fail for nil item", func(t *testing.T) {
		var item *order.Item

		err := item.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrItemIsNotConstructed, err)
	})

	t.Run("should fail for zero value item", func(t *testing.T) {
		var item order.Item

		err := item.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrItemIsNotConstructed, err)
	})
}

func TestItem_SubtotalDerivation(t *testing.T) {
	t.Run("should recompute subtotal on quantity change", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")

		assert.Equal(t, "10.0000", item.Quantity())
		assert.Equal(t, "100.0000", item.UnitPrice())
		assert.Equal(t, "1000.00", item.Subtotal())
	})

	t.Run("should recompute subtotal on price change", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")

		item.SetUnitPrice("99.99")

		assert.Equal(t, "999.90", item.Subtotal())
	})

	t.Run("should round half up at money scale", func(t *testing.T) {
		// 3 * 0.3333 = 0.9999, then 1.00 at money scale
		item := newTestItem(t, "螺丝", "3", "0.3333")

		assert.Equal(t, "1.00", item.Subtotal())
	})

	t.Run("should keep four decimal places before the money round", func(t *testing.T) {
		// 2.5 * 1.005 = 2.5125 at quantity scale, 2.51 at money scale
		item := newTestItem(t, "线缆", "2.5", "1.005")

		assert.Equal(t, "2.51", item.Subtotal())
	})
}

func TestItem_TaxRate(t *testing.T) {
	t.Run("should derive tax amount from subtotal", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")

		require.NoError(t, item.SetTaxRate("10.00"))

		assert.Equal(t, "10.00", item.TaxRate())
		assert.Equal(t, "100.00", item.TaxAmount())
	})

	t.Run("should zero tax amount when rate is zero", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")
		require.NoError(t, item.SetTaxRate("13"))
		require.Equal(t, "130.00", item.TaxAmount())

		require.NoError(t, item.SetTaxRate("0"))

		assert.Equal(t, "0.00", item.TaxAmount())
	})

	t.Run("should accept boundary rates", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")

		require.NoError(t, item.SetTaxRate("0"))
		require.NoError(t, item.SetTaxRate("100"))

		assert.Equal(t, "1000.00", item.TaxAmount())
	})

	t.Run("should reject out of range rates", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")

		for _, rate := range []string{"-0.01", "100.01", "999"} {
			err := item.SetTaxRate(rate)

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsOutOfRangeError{}, err)
		}
		assert.Equal(t, "0.00", item.TaxRate())
	})

	t.Run("should recompute tax after quantity change", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")
		require.NoError(t, item.SetTaxRate("13"))

		item.SetQuantity("20")

		assert.Equal(t, "2000.00", item.Subtotal())
		assert.Equal(t, "260.00", item.TaxAmount())
	})
}

func TestItem_Setters(t *testing.T) {
	t.Run("should fall back to default unit on empty value", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")

		item.SetUnit("台")
		assert.Equal(t, "台", item.Unit())

		item.SetUnit("")
		assert.Equal(t, "个", item.Unit())
	})

	t.Run("should panic on non-numeric quantity", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")

		assert.Panics(t, func() {
			item.SetQuantity("ten")
		})
	})
}

func TestItem_ApplyCatalogProduct(t *testing.T) {
	t.Run("should bind SKU and overwrite product fields", func(t *testing.T) {
		item := newTestItem(t, "占位名称", "10", "100")
		skuID := kernel.NewUUID()

		item.ApplyCatalogProduct(&skuID, nil, "千兆交换机", "SW-1000", "台")

		require.NotNil(t, item.SKU())
		assert.True(t, item.SKU().IsEqual(skuID))
		assert.Nil(t, item.SPU())
		assert.Equal(t, "千兆交换机", item.ProductName())
		assert.Equal(t, "SW-1000", item.ProductCode())
		assert.Equal(t, "台", item.Unit())
	})

	t.Run("should keep current values for empty catalog fields", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")
		item.SetProductCode("SW-1000")
		spuID := kernel.NewUUID()

		item.ApplyCatalogProduct(nil, &spuID, "", "", "")

		assert.Equal(t, "千兆交换机", item.ProductName())
		assert.Equal(t, "SW-1000", item.ProductCode())
		assert.Equal(t, "个", item.Unit())
	})
}

func TestItem_MarkReceived(t *testing.T) {
	t.Run("should record receiving facts and move to received", func(t *testing.T) {
		item := newTestItem(t, "千兆交换机", "10", "100")

		item.MarkReceived("10", "9")

		assert.Equal(t, "10.0000", item.ReceivedQuantity())
		assert.Equal(t, "9.0000", item.QualifiedQuantity())
		assert.Equal(t, delivery.Received, item.DeliveryStatus())
	})
}

func TestRestoreItem(t *testing.T) {
	t.Run("should reconstruct item trusting stored amounts", func(t *testing.T) {
		snapshot := order.ItemSnapshot{
			ID:             kernel.NewUUID(),
			OrderID:        kernel.NewUUID(),
			ProductName:    "千兆交换机",
			Quantity:       "10.0000",
			Unit:           "台",
			UnitPrice:      "100.0000",
			Subtotal:       "999.99",
			TaxRate:        "13.00",
			TaxAmount:      "130.00",
			DeliveryStatus: delivery.Received,
		}

		item, err := order.RestoreItem(snapshot)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		// No re-derivation on restore.
		assert.Equal(t, "999.99", item.Subtotal())
		assert.Equal(t, delivery.Received, item.DeliveryStatus())
	})

	t.Run("should fail on invalid delivery status", func(t *testing.T) {
		snapshot := order.ItemSnapshot{
			ID:             kernel.NewUUID(),
			ProductName:    "千兆交换机",
			DeliveryStatus: delivery.Status("lost"),
		}

		item, err := order.RestoreItem(snapshot)

		require.Error(t, err)
		assert.Nil(t, item)
	})
}
