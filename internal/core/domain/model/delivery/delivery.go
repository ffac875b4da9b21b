package delivery

import (
	"errors"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery factory method.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Delivery is one shipment batch belonging to a purchase order, tracked
// through the receiving pipeline. An order may have several batches; the
// order completes only when every batch reaches Warehoused.
//
// Delivery stores only the owning order's ID, never an object reference, so
// aggregates stay cycle-free. Status moves exclusively through the stamp
// methods, which mirror the pipeline transitions.
type Delivery struct {
	id      kernel.UUID
	orderID kernel.UUID

	batchNumber string
	status      Status

	logisticsCompany string
	trackingNumber   string

	shipTime             *time.Time
	estimatedArrivalTime *time.Time
	actualArrivalTime    *time.Time
	receiveTime          *time.Time
	inspectTime          *time.Time
	warehouseTime        *time.Time

	receivedBy   string
	inspectedBy  string
	warehousedBy string

	inspectionPassed  bool
	inspectionComment string

	deliveredQuantity string
	qualifiedQuantity string
	rejectedQuantity  string
	discrepancyReason string

	warehouseLocation string
	attachments       map[string]string
	remark            string

	isConstructed bool
}

// NewDelivery registers a shipment batch against an order. The batch starts
// in Pending with zero quantities.
func NewDelivery(id, orderID kernel.UUID, batchNumber string) (*Delivery, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if batchNumber == "" {
		return nil, errs.NewValueIsRequiredError("batchNumber")
	}

	return &Delivery{
		id:                id,
		orderID:           orderID,
		batchNumber:       batchNumber,
		status:            Pending,
		deliveredQuantity: kernel.ZeroQuantity(),
		qualifiedQuantity: kernel.ZeroQuantity(),
		rejectedQuantity:  kernel.ZeroQuantity(),
		attachments:       map[string]string{},
		isConstructed:     true,
	}, nil
}

// Validate ensures the Delivery was constructed through NewDelivery or
// RestoreDelivery.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the batch's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the owning order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// BatchNumber returns the business batch number.
func (d *Delivery) BatchNumber() string {
	return d.batchNumber
}

// Status returns the batch's position in the receiving pipeline.
func (d *Delivery) Status() Status {
	return d.status
}

// LogisticsCompany returns the carrier name, empty when unset.
func (d *Delivery) LogisticsCompany() string {
	return d.logisticsCompany
}

// TrackingNumber returns the carrier tracking number, empty when unset.
func (d *Delivery) TrackingNumber() string {
	return d.trackingNumber
}

// ShipTime returns when the batch was shipped, nil before shipping.
func (d *Delivery) ShipTime() *time.Time {
	return d.shipTime
}

// EstimatedArrivalTime returns the carrier's arrival estimate, nil when unset.
func (d *Delivery) EstimatedArrivalTime() *time.Time {
	return d.estimatedArrivalTime
}

// ActualArrivalTime returns when the batch arrived, nil before arrival.
func (d *Delivery) ActualArrivalTime() *time.Time {
	return d.actualArrivalTime
}

// ReceiveTime returns when the batch was signed for, nil before receiving.
func (d *Delivery) ReceiveTime() *time.Time {
	return d.receiveTime
}

// InspectTime returns when inspection was recorded, nil before inspection.
func (d *Delivery) InspectTime() *time.Time {
	return d.inspectTime
}

// WarehouseTime returns when the goods were stored, nil before warehousing.
func (d *Delivery) WarehouseTime() *time.Time {
	return d.warehouseTime
}

// ReceivedBy returns who signed for the batch.
func (d *Delivery) ReceivedBy() string {
	return d.receivedBy
}

// InspectedBy returns who recorded the inspection.
func (d *Delivery) InspectedBy() string {
	return d.inspectedBy
}

// WarehousedBy returns who stored the goods.
func (d *Delivery) WarehousedBy() string {
	return d.warehousedBy
}

// InspectionPassed reports the recorded inspection outcome.
func (d *Delivery) InspectionPassed() bool {
	return d.inspectionPassed
}

// InspectionComment returns the inspector's comment.
func (d *Delivery) InspectionComment() string {
	return d.inspectionComment
}

// DeliveredQuantity returns the delivered quantity as a scale-4 decimal string.
func (d *Delivery) DeliveredQuantity() string {
	return d.deliveredQuantity
}

// QualifiedQuantity returns the inspection-qualified quantity.
func (d *Delivery) QualifiedQuantity() string {
	return d.qualifiedQuantity
}

// RejectedQuantity returns the inspection-rejected quantity.
func (d *Delivery) RejectedQuantity() string {
	return d.rejectedQuantity
}

// DiscrepancyReason returns the auto-populated discrepancy note, empty when
// nothing was rejected.
func (d *Delivery) DiscrepancyReason() string {
	return d.discrepancyReason
}

// WarehouseLocation returns where the goods were stored.
func (d *Delivery) WarehouseLocation() string {
	return d.warehouseLocation
}

// Attachments returns the attachment name to reference map.
func (d *Delivery) Attachments() map[string]string {
	return d.attachments
}

// Remark returns the free-text remark.
func (d *Delivery) Remark() string {
	return d.remark
}

// SetRemark sets the free-text remark.
func (d *Delivery) SetRemark(remark string) {
	d.remark = remark
}

// AddAttachment records an attachment reference under the given name.
func (d *Delivery) AddAttachment(name, reference string) {
	if d.attachments == nil {
		d.attachments = map[string]string{}
	}
	d.attachments[name] = reference
}

// StampShipped applies the ship transition and records shipping facts.
// Returns false without mutation when the batch is not Pending.
func (d *Delivery) StampShipped(at time.Time, logisticsCompany, trackingNumber string, estimatedArrival *time.Time) bool {
	next, ok := d.status.ApplyTransition(Ship)
	if !ok {
		return false
	}
	d.status = next
	d.shipTime = &at
	d.logisticsCompany = logisticsCompany
	d.trackingNumber = trackingNumber
	d.estimatedArrivalTime = estimatedArrival
	return true
}

// StampInTransit applies the in_transit transition. No additional facts are
// recorded beyond the state change itself.
func (d *Delivery) StampInTransit() bool {
	next, ok := d.status.ApplyTransition(MarkInTransit)
	if !ok {
		return false
	}
	d.status = next
	return true
}

// StampArrived applies the arrive transition and records the arrival time.
func (d *Delivery) StampArrived(at time.Time) bool {
	next, ok := d.status.ApplyTransition(Arrive)
	if !ok {
		return false
	}
	d.status = next
	d.actualArrivalTime = &at
	return true
}

// StampReceived applies the receive transition and records who signed and
// how much arrived. Panics on a non-numeric quantity.
func (d *Delivery) StampReceived(at time.Time, receivedBy, deliveredQuantity string) bool {
	next, ok := d.status.ApplyTransition(Receive)
	if !ok {
		return false
	}
	d.status = next
	d.receiveTime = &at
	d.receivedBy = receivedBy
	d.deliveredQuantity = kernel.RoundQuantity(kernel.MustAmount(deliveredQuantity))
	return true
}

// StampInspected applies the inspect transition and records the inspection
// outcome. A positive rejected quantity auto-populates the discrepancy
// reason. Panics on non-numeric quantities.
func (d *Delivery) StampInspected(
	at time.Time,
	inspectedBy string,
	passed bool,
	qualifiedQuantity, rejectedQuantity, comment string,
) bool {
	next, ok := d.status.ApplyTransition(Inspect)
	if !ok {
		return false
	}
	d.status = next
	d.inspectTime = &at
	d.inspectedBy = inspectedBy
	d.inspectionPassed = passed
	d.qualifiedQuantity = kernel.RoundQuantity(kernel.MustAmount(qualifiedQuantity))
	d.rejectedQuantity = kernel.RoundQuantity(kernel.MustAmount(rejectedQuantity))
	d.inspectionComment = comment

	if kernel.IsPositive(rejectedQuantity) {
		d.discrepancyReason = fmt.Sprintf("quality inspection failed quantity: %s", rejectedQuantity)
	}
	return true
}

// StampWarehoused applies the warehouse transition and records storage facts.
func (d *Delivery) StampWarehoused(at time.Time, warehousedBy, warehouseLocation string) bool {
	next, ok := d.status.ApplyTransition(WarehouseGoods)
	if !ok {
		return false
	}
	d.status = next
	d.warehouseTime = &at
	d.warehousedBy = warehousedBy
	d.warehouseLocation = warehouseLocation
	return true
}

// Snapshot carries every persisted delivery attribute for reconstruction
// from storage.
type Snapshot struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	BatchNumber          string
	Status               Status
	LogisticsCompany     string
	TrackingNumber       string
	ShipTime             *time.Time
	EstimatedArrivalTime *time.Time
	ActualArrivalTime    *time.Time
	ReceiveTime          *time.Time
	InspectTime          *time.Time
	WarehouseTime        *time.Time
	ReceivedBy           string
	InspectedBy          string
	WarehousedBy         string
	InspectionPassed     bool
	InspectionComment    string
	DeliveredQuantity    string
	QualifiedQuantity    string
	RejectedQuantity     string
	DiscrepancyReason    string
	WarehouseLocation    string
	Attachments          map[string]string
	Remark               string
}

// RestoreDelivery reconstructs a Delivery from persistence.
func RestoreDelivery(s Snapshot) (*Delivery, error) {
	if err := errors.Join(s.ID.Validate(), s.OrderID.Validate()); err != nil {
		return nil, err
	}
	if s.BatchNumber == "" {
		return nil, errs.NewValueIsRequiredError("batchNumber")
	}
	if !s.Status.IsValid() {
		return nil, errs.NewValueIsInvalidError("status")
	}

	attachments := s.Attachments
	if attachments == nil {
		attachments = map[string]string{}
	}

	return &Delivery{
		id:                   s.ID,
		orderID:              s.OrderID,
		batchNumber:          s.BatchNumber,
		status:               s.Status,
		logisticsCompany:     s.LogisticsCompany,
		trackingNumber:       s.TrackingNumber,
		shipTime:             s.ShipTime,
		estimatedArrivalTime: s.EstimatedArrivalTime,
		actualArrivalTime:    s.ActualArrivalTime,
		receiveTime:          s.ReceiveTime,
		inspectTime:          s.InspectTime,
		warehouseTime:        s.WarehouseTime,
		receivedBy:           s.ReceivedBy,
		inspectedBy:          s.InspectedBy,
		warehousedBy:         s.WarehousedBy,
		inspectionPassed:     s.InspectionPassed,
		inspectionComment:    s.InspectionComment,
		deliveredQuantity:    s.DeliveredQuantity,
		qualifiedQuantity:    s.QualifiedQuantity,
		rejectedQuantity:     s.RejectedQuantity,
		discrepancyReason:    s.DiscrepancyReason,
		warehouseLocation:    s.WarehouseLocation,
		attachments:          attachments,
		remark:               s.Remark,
		isConstructed:        true,
	}, nil
}
