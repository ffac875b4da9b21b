package order

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when a PurchaseOrder instance was
	// not created through the NewPurchaseOrder factory method.
	ErrOrderIsNotConstructed = errors.New("PurchaseOrder must be created via NewPurchaseOrder constructor")
)

// PurchaseOrder is the aggregate root of the procurement domain. It owns its
// line items and is the target of approval chains and delivery batches, both
// of which reference it by ID.
//
// PurchaseOrder follows these invariants:
//   - totalAmount = sum of item subtotals, at money scale
//   - payableAmount = totalAmount + taxAmount - discountAmount + shippingAmount
//   - status moves only through the named transitions of the state machine
//   - approval/cancellation stamps are applied only after a successful transition
//
// CalculateTotalAmount is not triggered implicitly by item mutation; callers
// re-invoke it after bulk item changes.
type PurchaseOrder struct {
	id          kernel.UUID
	orderNumber string
	title       string
	supplierID  kernel.UUID
	status      Status

	totalAmount    string
	taxAmount      string
	shippingAmount string
	discountAmount string
	payableAmount  string
	currency       string

	expectedDeliveryDate *time.Time
	actualDeliveryDate   *time.Time
	deliveryAddress      string
	paymentTerms         string
	remark               string

	approveTime     *time.Time
	approvedBy      string
	approvalComment string

	cancelTime   *time.Time
	cancelReason string

	createTime time.Time
	updateTime time.Time
	createdBy  string
	updatedBy  string

	items []*Item

	isConstructed bool
}

// NewPurchaseOrder creates a Draft order for a supplier. The order number is
// assigned externally (see ports.OrderNumberGenerator) and must be non-empty;
// the supplier reference is required.
func NewPurchaseOrder(id kernel.UUID, orderNumber, title string, supplierID kernel.UUID, now time.Time) (*PurchaseOrder, error) {
	if err := errors.Join(id.Validate(), supplierID.Validate()); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	return &PurchaseOrder{
		id:             id,
		orderNumber:    orderNumber,
		title:          title,
		supplierID:     supplierID,
		status:         Draft,
		totalAmount:    kernel.ZeroMoney(),
		taxAmount:      kernel.ZeroMoney(),
		shippingAmount: kernel.ZeroMoney(),
		discountAmount: kernel.ZeroMoney(),
		payableAmount:  kernel.ZeroMoney(),
		currency:       "CNY",
		createTime:     now,
		updateTime:     now,
		isConstructed:  true,
	}, nil
}

// Validate ensures the PurchaseOrder was constructed through NewPurchaseOrder
// or RestorePurchaseOrder.
func (o *PurchaseOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *PurchaseOrder) IsEqual(other *PurchaseOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *PurchaseOrder) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the business-unique order number.
func (o *PurchaseOrder) OrderNumber() string {
	return o.orderNumber
}

// Title returns the order title.
func (o *PurchaseOrder) Title() string {
	return o.title
}

// SupplierID returns the supplier reference.
func (o *PurchaseOrder) SupplierID() kernel.UUID {
	return o.supplierID
}

// Status returns the order's current lifecycle status.
func (o *PurchaseOrder) Status() Status {
	return o.status
}

// TotalAmount returns the sum of item subtotals as a scale-2 decimal string.
func (o *PurchaseOrder) TotalAmount() string {
	return o.totalAmount
}

// TaxAmount returns the order-level tax amount.
func (o *PurchaseOrder) TaxAmount() string {
	return o.taxAmount
}

// ShippingAmount returns the shipping amount.
func (o *PurchaseOrder) ShippingAmount() string {
	return o.shippingAmount
}

// DiscountAmount returns the discount amount.
func (o *PurchaseOrder) DiscountAmount() string {
	return o.discountAmount
}

// PayableAmount returns the derived payable amount.
func (o *PurchaseOrder) PayableAmount() string {
	return o.payableAmount
}

// Currency returns the currency code, "CNY" by default.
func (o *PurchaseOrder) Currency() string {
	return o.currency
}

// ExpectedDeliveryDate returns the expected delivery date, nil when unset.
func (o *PurchaseOrder) ExpectedDeliveryDate() *time.Time {
	return o.expectedDeliveryDate
}

// ActualDeliveryDate returns the actual delivery date, nil when unset.
func (o *PurchaseOrder) ActualDeliveryDate() *time.Time {
	return o.actualDeliveryDate
}

// DeliveryAddress returns the delivery address.
func (o *PurchaseOrder) DeliveryAddress() string {
	return o.deliveryAddress
}

// PaymentTerms returns the payment terms.
func (o *PurchaseOrder) PaymentTerms() string {
	return o.paymentTerms
}

// Remark returns the free-text remark.
func (o *PurchaseOrder) Remark() string {
	return o.remark
}

// ApproveTime returns when the order was approved, nil before approval.
func (o *PurchaseOrder) ApproveTime() *time.Time {
	return o.approveTime
}

// ApprovedBy returns who approved the order.
func (o *PurchaseOrder) ApprovedBy() string {
	return o.approvedBy
}

// ApprovalComment returns the approval (or rejection-reason) comment.
func (o *PurchaseOrder) ApprovalComment() string {
	return o.approvalComment
}

// CancelTime returns when the order was cancelled, nil unless cancelled.
func (o *PurchaseOrder) CancelTime() *time.Time {
	return o.cancelTime
}

// CancelReason returns why the order was cancelled.
func (o *PurchaseOrder) CancelReason() string {
	return o.cancelReason
}

// CreateTime returns when the order was created.
func (o *PurchaseOrder) CreateTime() time.Time {
	return o.createTime
}

// UpdateTime returns when the order was last touched.
func (o *PurchaseOrder) UpdateTime() time.Time {
	return o.updateTime
}

// CreatedBy returns who created the order.
func (o *PurchaseOrder) CreatedBy() string {
	return o.createdBy
}

// UpdatedBy returns who last touched the order.
func (o *PurchaseOrder) UpdatedBy() string {
	return o.updatedBy
}

// Items returns the order's line items. The slice is shared; callers must
// not reorder or resize it.
func (o *PurchaseOrder) Items() []*Item {
	return o.items
}

// AddItem attaches a line to the order and records the back-reference on the
// item. Adding an already-present item is a no-op.
func (o *PurchaseOrder) AddItem(item *Item) {
	if item == nil {
		return
	}
	for _, existing := range o.items {
		if existing.id.IsEqual(item.id) {
			return
		}
	}
	item.orderID = o.id
	o.items = append(o.items, item)
}

// RemoveItem detaches a line from the order and clears its back-reference.
// Removing an absent item is a no-op.
func (o *PurchaseOrder) RemoveItem(item *Item) {
	if item == nil {
		return
	}
	for idx, existing := range o.items {
		if existing.id.IsEqual(item.id) {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			item.orderID = kernel.UUID{}
			return
		}
	}
}

// CalculateTotalAmount sums the item subtotals into totalAmount and derives
// payableAmount:
//
//	payableAmount = totalAmount + taxAmount - discountAmount + shippingAmount
//
// Callers invoke this after adding, removing or editing items; item mutation
// does not trigger it implicitly.
func (o *PurchaseOrder) CalculateTotalAmount() {
	subtotal := decimal.Zero
	for _, item := range o.items {
		subtotal = subtotal.Add(kernel.MustAmount(item.subtotal)).Round(kernel.MoneyScale)
	}
	o.totalAmount = kernel.RoundMoney(subtotal)

	payable := subtotal.
		Add(kernel.MustAmount(o.taxAmount)).
		Sub(kernel.MustAmount(o.discountAmount)).
		Add(kernel.MustAmount(o.shippingAmount))
	o.payableAmount = kernel.RoundMoney(payable)
}

// SetTaxAmount sets the order-level tax amount. Panics on a non-numeric
// value; callers re-invoke CalculateTotalAmount afterwards.
func (o *PurchaseOrder) SetTaxAmount(amount string) error {
	return o.setMoneyField(&o.taxAmount, "taxAmount", amount)
}

// SetShippingAmount sets the shipping amount.
func (o *PurchaseOrder) SetShippingAmount(amount string) error {
	return o.setMoneyField(&o.shippingAmount, "shippingAmount", amount)
}

// SetDiscountAmount sets the discount amount.
func (o *PurchaseOrder) SetDiscountAmount(amount string) error {
	return o.setMoneyField(&o.discountAmount, "discountAmount", amount)
}

func (o *PurchaseOrder) setMoneyField(field *string, name, amount string) error {
	d := kernel.MustAmount(amount)
	if d.IsNegative() {
		return errs.NewValueIsInvalidError(name)
	}
	*field = kernel.RoundMoney(d)
	return nil
}

// SetCurrency sets the currency code; an empty code keeps the default.
func (o *PurchaseOrder) SetCurrency(code string) {
	if code != "" {
		o.currency = code
	}
}

// SetTitle sets the order title.
func (o *PurchaseOrder) SetTitle(title string) {
	o.title = title
}

// SetDeliveryAddress sets the delivery address.
func (o *PurchaseOrder) SetDeliveryAddress(address string) {
	o.deliveryAddress = address
}

// SetPaymentTerms sets the payment terms.
func (o *PurchaseOrder) SetPaymentTerms(terms string) {
	o.paymentTerms = terms
}

// SetExpectedDeliveryDate sets the expected delivery date.
func (o *PurchaseOrder) SetExpectedDeliveryDate(date *time.Time) {
	o.expectedDeliveryDate = date
}

// SetActualDeliveryDate sets the actual delivery date.
func (o *PurchaseOrder) SetActualDeliveryDate(date *time.Time) {
	o.actualDeliveryDate = date
}

// SetRemark sets the free-text remark.
func (o *PurchaseOrder) SetRemark(remark string) {
	o.remark = remark
}

// SetAuditActors records who created and last touched the order.
func (o *PurchaseOrder) SetAuditActors(createdBy, updatedBy string) {
	if createdBy != "" {
		o.createdBy = createdBy
	}
	if updatedBy != "" {
		o.updatedBy = updatedBy
	}
}

// Touch advances the update timestamp.
func (o *PurchaseOrder) Touch(now time.Time) {
	o.updateTime = now
}

// ApplyTransition moves the order through the named transition using the
// hardcoded state machine. Returns false without mutation when the
// transition is not permitted from the current status.
func (o *PurchaseOrder) ApplyTransition(t Transition) bool {
	next, ok := o.status.ApplyTransition(t)
	if !ok {
		return false
	}
	o.status = next
	return true
}

// ForceStatus sets the status directly. It exists for external transition
// checkers that own the legality decision (ports.OrderTransitionChecker);
// everything else goes through ApplyTransition.
func (o *PurchaseOrder) ForceStatus(s Status) error {
	if !s.IsValid() {
		return errs.NewValueIsInvalidError("status")
	}
	o.status = s
	return nil
}

// StampApproved records the approval facts. Callers invoke it only after a
// successful approve transition.
func (o *PurchaseOrder) StampApproved(approvedBy string, at time.Time, comment string) {
	o.approveTime = &at
	o.approvedBy = approvedBy
	o.approvalComment = comment
}

// StampRejected records the rejection reason. Callers invoke it only after a
// successful reject transition.
func (o *PurchaseOrder) StampRejected(reason string) {
	o.approvalComment = reason
}

// StampCancelled records the cancellation facts. Callers invoke it only
// after a successful cancel transition.
func (o *PurchaseOrder) StampCancelled(reason string, at time.Time) {
	o.cancelTime = &at
	o.cancelReason = reason
}

// Snapshot carries every persisted order attribute for reconstruction from
// storage. Items are restored separately and attached via AddItem.
type Snapshot struct {
	ID                   kernel.UUID
	OrderNumber          string
	Title                string
	SupplierID           kernel.UUID
	Status               Status
	TotalAmount          string
	TaxAmount            string
	ShippingAmount       string
	DiscountAmount       string
	PayableAmount        string
	Currency             string
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	DeliveryAddress      string
	PaymentTerms         string
	Remark               string
	ApproveTime          *time.Time
	ApprovedBy           string
	ApprovalComment      string
	CancelTime           *time.Time
	CancelReason         string
	CreateTime           time.Time
	UpdateTime           time.Time
	CreatedBy            string
	UpdatedBy            string
}

// RestorePurchaseOrder reconstructs a PurchaseOrder from persistence.
// Stored amounts are trusted as written; no recomputation happens here.
func RestorePurchaseOrder(s Snapshot) (*PurchaseOrder, error) {
	if err := errors.Join(s.ID.Validate(), s.SupplierID.Validate()); err != nil {
		return nil, err
	}
	if s.OrderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if !s.Status.IsValid() {
		return nil, errs.NewValueIsInvalidError("status")
	}

	return &PurchaseOrder{
		id:                   s.ID,
		orderNumber:          s.OrderNumber,
		title:                s.Title,
		supplierID:           s.SupplierID,
		status:               s.Status,
		totalAmount:          s.TotalAmount,
		taxAmount:            s.TaxAmount,
		shippingAmount:       s.ShippingAmount,
		discountAmount:       s.DiscountAmount,
		payableAmount:        s.PayableAmount,
		currency:             s.Currency,
		expectedDeliveryDate: s.ExpectedDeliveryDate,
		actualDeliveryDate:   s.ActualDeliveryDate,
		deliveryAddress:      s.DeliveryAddress,
		paymentTerms:         s.PaymentTerms,
		remark:               s.Remark,
		approveTime:          s.ApproveTime,
		approvedBy:           s.ApprovedBy,
		approvalComment:      s.ApprovalComment,
		cancelTime:           s.CancelTime,
		cancelReason:         s.CancelReason,
		createTime:           s.CreateTime,
		updateTime:           s.UpdateTime,
		createdBy:            s.CreatedBy,
		updatedBy:            s.UpdatedBy,
		isConstructed:        true,
	}, nil
}
