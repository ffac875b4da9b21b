package order

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem factory method.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is a purchased line within an order. It references a product, carries
// quantity/price/tax at exact decimal precision and derives its own subtotal
// and tax amount.
//
// Item follows these invariants:
//   - subtotal = roundHalfUp(quantity * unitPrice, 2)
//   - taxAmount = roundHalfUp(subtotal * taxRate/100, 2) when taxRate > 0, else "0.00"
//   - both are recomputed whenever quantity, unit price or tax rate is set
//
// Quantities and unit prices carry four decimal places, money amounts two.
// Setters panic on non-numeric input: feeding a money field a non-decimal
// string is a caller bug, not a recoverable business condition.
type Item struct {
	id      kernel.UUID
	orderID kernel.UUID

	skuID *kernel.UUID
	spuID *kernel.UUID

	productName   string
	productCode   string
	specification string

	quantity  string
	unit      string
	unitPrice string
	subtotal  string
	taxRate   string
	taxAmount string

	deliveryStatus    delivery.Status
	receivedQuantity  string
	qualifiedQuantity string

	expectedDeliveryDate *time.Time
	remark               string

	isConstructed bool
}

// NewItem creates an order line for the named product with the documented
// defaults: quantity "1.0000", unit "个", unit price "0.0000", tax rate
// "0.00", delivery status pending.
func NewItem(id kernel.UUID, productName string) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if productName == "" {
		return nil, errs.NewValueIsRequiredError("productName")
	}

	item := &Item{
		id:                id,
		productName:       productName,
		quantity:          "1.0000",
		unit:              "个",
		unitPrice:         kernel.ZeroQuantity(),
		subtotal:          kernel.ZeroMoney(),
		taxRate:           kernel.ZeroMoney(),
		taxAmount:         kernel.ZeroMoney(),
		deliveryStatus:    delivery.Pending,
		receivedQuantity:  kernel.ZeroQuantity(),
		qualifiedQuantity: kernel.ZeroQuantity(),
		isConstructed:     true,
	}
	item.calculateSubtotal()

	return item, nil
}

// Validate ensures the Item was constructed through NewItem (or restored
// through RestoreItem).
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderID returns the owning order's identifier.
// The zero UUID means the item is not attached to an order yet.
func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

// ProductName returns the purchased product's name.
func (i *Item) ProductName() string {
	return i.productName
}

// ProductCode returns the product code, empty when unset.
func (i *Item) ProductCode() string {
	return i.productCode
}

// Specification returns the product specification, empty when unset.
func (i *Item) Specification() string {
	return i.specification
}

// SKU returns the referenced catalog SKU ID, nil when unset.
func (i *Item) SKU() *kernel.UUID {
	return i.skuID
}

// SPU returns the referenced catalog SPU ID, nil when unset.
func (i *Item) SPU() *kernel.UUID {
	return i.spuID
}

// Quantity returns the purchased quantity as a scale-4 decimal string.
func (i *Item) Quantity() string {
	return i.quantity
}

// Unit returns the unit of measure.
func (i *Item) Unit() string {
	return i.unit
}

// UnitPrice returns the unit price as a scale-4 decimal string.
func (i *Item) UnitPrice() string {
	return i.unitPrice
}

// Subtotal returns the derived line subtotal as a scale-2 decimal string.
func (i *Item) Subtotal() string {
	return i.subtotal
}

// TaxRate returns the tax rate percentage as a scale-2 decimal string.
func (i *Item) TaxRate() string {
	return i.taxRate
}

// TaxAmount returns the derived tax amount as a scale-2 decimal string.
func (i *Item) TaxAmount() string {
	return i.taxAmount
}

// DeliveryStatus returns the receiving state of this line.
func (i *Item) DeliveryStatus() delivery.Status {
	return i.deliveryStatus
}

// ReceivedQuantity returns the received quantity as a scale-4 decimal string.
func (i *Item) ReceivedQuantity() string {
	return i.receivedQuantity
}

// QualifiedQuantity returns the inspection-qualified quantity as a scale-4
// decimal string.
func (i *Item) QualifiedQuantity() string {
	return i.qualifiedQuantity
}

// ExpectedDeliveryDate returns the expected delivery date, nil when unset.
func (i *Item) ExpectedDeliveryDate() *time.Time {
	return i.expectedDeliveryDate
}

// Remark returns the free-text remark.
func (i *Item) Remark() string {
	return i.remark
}

// SetQuantity sets the purchased quantity and recomputes subtotal and tax.
// Panics on a non-numeric value.
func (i *Item) SetQuantity(quantity string) {
	i.quantity = kernel.RoundQuantity(kernel.MustAmount(quantity))
	i.calculateSubtotal()
}

// SetUnitPrice sets the unit price and recomputes subtotal and tax.
// Panics on a non-numeric value.
func (i *Item) SetUnitPrice(unitPrice string) {
	i.unitPrice = kernel.RoundQuantity(kernel.MustAmount(unitPrice))
	i.calculateSubtotal()
}

// SetTaxRate sets the tax rate percentage (0-100) and recomputes the tax
// amount. Panics on a non-numeric value; range violations return an error.
func (i *Item) SetTaxRate(taxRate string) error {
	rate := kernel.MustAmount(taxRate)
	if rate.IsNegative() || rate.GreaterThan(kernel.MustAmount("100")) {
		return errs.NewValueIsOutOfRangeError("taxRate", taxRate, "0", "100")
	}
	i.taxRate = kernel.RoundMoney(rate)
	i.calculateSubtotal()
	return nil
}

// SetUnit sets the unit of measure.
func (i *Item) SetUnit(unit string) {
	if unit == "" {
		unit = "个"
	}
	i.unit = unit
}

// SetProductCode sets the product code.
func (i *Item) SetProductCode(code string) {
	i.productCode = code
}

// SetSpecification sets the product specification.
func (i *Item) SetSpecification(specification string) {
	i.specification = specification
}

// SetExpectedDeliveryDate sets the expected delivery date.
func (i *Item) SetExpectedDeliveryDate(date *time.Time) {
	i.expectedDeliveryDate = date
}

// SetRemark sets the free-text remark.
func (i *Item) SetRemark(remark string) {
	i.remark = remark
}

// ApplyCatalogProduct binds the line to a catalog SKU or SPU and overwrites
// product name, code and unit with the catalog record's values. Empty catalog
// fields leave the current value untouched.
func (i *Item) ApplyCatalogProduct(skuID, spuID *kernel.UUID, name, code, unit string) {
	i.skuID = skuID
	i.spuID = spuID
	if name != "" {
		i.productName = name
	}
	if code != "" {
		i.productCode = code
	}
	if unit != "" {
		i.unit = unit
	}
}

// MarkReceived records the receiving facts propagated from a delivery batch
// and moves the line's delivery status to received.
func (i *Item) MarkReceived(receivedQuantity, qualifiedQuantity string) {
	i.receivedQuantity = kernel.RoundQuantity(kernel.MustAmount(receivedQuantity))
	i.qualifiedQuantity = kernel.RoundQuantity(kernel.MustAmount(qualifiedQuantity))
	i.deliveryStatus = delivery.Received
}

// calculateSubtotal derives subtotal and tax amount from quantity, unit price
// and tax rate. The multiplication keeps a four-decimal intermediate before
// the half-up round to money scale.
func (i *Item) calculateSubtotal() {
	amount := kernel.MustAmount(i.quantity).Mul(kernel.MustAmount(i.unitPrice)).Round(kernel.QuantityScale)
	i.subtotal = kernel.RoundMoney(amount)

	rate := kernel.MustAmount(i.taxRate)
	if rate.IsPositive() {
		// Shift(-2) divides by 100 exactly, no precision loss.
		i.taxAmount = kernel.RoundMoney(kernel.MustAmount(i.subtotal).Mul(rate.Shift(-2)))
	} else {
		i.taxAmount = kernel.ZeroMoney()
	}
}

// ItemSnapshot carries every persisted item attribute for reconstruction
// from storage.
type ItemSnapshot struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	SKUID                *kernel.UUID
	SPUID                *kernel.UUID
	ProductName          string
	ProductCode          string
	Specification        string
	Quantity             string
	Unit                 string
	UnitPrice            string
	Subtotal             string
	TaxRate              string
	TaxAmount            string
	DeliveryStatus       delivery.Status
	ReceivedQuantity     string
	QualifiedQuantity    string
	ExpectedDeliveryDate *time.Time
	Remark               string
}

// RestoreItem reconstructs an Item from persistence without re-deriving its
// amounts. Stored subtotal/tax are trusted as written.
func RestoreItem(s ItemSnapshot) (*Item, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, err
	}
	if s.ProductName == "" {
		return nil, errs.NewValueIsRequiredError("productName")
	}
	if !s.DeliveryStatus.IsValid() {
		return nil, errs.NewValueIsInvalidError("deliveryStatus")
	}

	return &Item{
		id:                   s.ID,
		orderID:              s.OrderID,
		skuID:                s.SKUID,
		spuID:                s.SPUID,
		productName:          s.ProductName,
		productCode:          s.ProductCode,
		specification:        s.Specification,
		quantity:             s.Quantity,
		unit:                 s.Unit,
		unitPrice:            s.UnitPrice,
		subtotal:             s.Subtotal,
		taxRate:              s.TaxRate,
		taxAmount:            s.TaxAmount,
		deliveryStatus:       s.DeliveryStatus,
		receivedQuantity:     s.ReceivedQuantity,
		qualifiedQuantity:    s.QualifiedQuantity,
		expectedDeliveryDate: s.ExpectedDeliveryDate,
		remark:               s.Remark,
		isConstructed:        true,
	}, nil
}
