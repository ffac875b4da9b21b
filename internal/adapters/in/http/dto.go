package http

import (
	"time"

	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/order"
)

// Error is the JSON error envelope returned by every failing handler.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemResponse is the JSON projection of one order line item.
type OrderItemResponse struct {
	ID                string     `json:"id"`
	ProductName       string     `json:"productName"`
	ProductCode       string     `json:"productCode,omitempty"`
	Specification     string     `json:"specification,omitempty"`
	SKUID             string     `json:"skuId,omitempty"`
	SPUID             string     `json:"spuId,omitempty"`
	Quantity          string     `json:"quantity"`
	Unit              string     `json:"unit,omitempty"`
	UnitPrice         string     `json:"unitPrice"`
	Subtotal          string     `json:"subtotal"`
	TaxRate           string     `json:"taxRate"`
	TaxAmount         string     `json:"taxAmount"`
	DeliveryStatus    string     `json:"deliveryStatus"`
	ReceivedQuantity  string     `json:"receivedQuantity"`
	QualifiedQuantity string     `json:"qualifiedQuantity"`
	ExpectedDelivery  *time.Time `json:"expectedDeliveryDate,omitempty"`
	Remark            string     `json:"remark,omitempty"`
}

// OrderResponse is the JSON projection of a purchase order aggregate.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	Title           string              `json:"title"`
	SupplierID      string              `json:"supplierId"`
	Status          string              `json:"status"`
	TotalAmount     string              `json:"totalAmount"`
	TaxAmount       string              `json:"taxAmount"`
	ShippingAmount  string              `json:"shippingAmount"`
	DiscountAmount  string              `json:"discountAmount"`
	PayableAmount   string              `json:"payableAmount"`
	Currency        string              `json:"currency"`
	ApprovedBy      string              `json:"approvedBy,omitempty"`
	ApprovalComment string              `json:"approvalComment,omitempty"`
	ApproveTime     *time.Time          `json:"approveTime,omitempty"`
	CancelReason    string              `json:"cancelReason,omitempty"`
	CreateTime      time.Time           `json:"createTime"`
	UpdateTime      time.Time           `json:"updateTime"`
	Items           []OrderItemResponse `json:"items"`
}

// ApprovalResponse is the JSON projection of one approval record.
type ApprovalResponse struct {
	ID                 string     `json:"id"`
	OrderID            string     `json:"orderId"`
	Level              string     `json:"level"`
	Sequence           int        `json:"sequence"`
	Status             string     `json:"status"`
	ApproverID         string     `json:"approverId,omitempty"`
	ApproverName       string     `json:"approverName,omitempty"`
	ApproverRole       string     `json:"approverRole,omitempty"`
	AmountLimit        string     `json:"amountLimit,omitempty"`
	RequireCountersign bool       `json:"requireCountersign"`
	Comment            string     `json:"comment,omitempty"`
	ApproveTime        *time.Time `json:"approveTime,omitempty"`
}

// DeliveryResponse is the JSON projection of one delivery batch.
type DeliveryResponse struct {
	ID                string     `json:"id"`
	OrderID           string     `json:"orderId"`
	BatchNumber       string     `json:"batchNumber"`
	Status            string     `json:"status"`
	LogisticsCompany  string     `json:"logisticsCompany,omitempty"`
	TrackingNumber    string     `json:"trackingNumber,omitempty"`
	ShipTime          *time.Time `json:"shipTime,omitempty"`
	ActualArrivalTime *time.Time `json:"actualArrivalTime,omitempty"`
	ReceiveTime       *time.Time `json:"receiveTime,omitempty"`
	InspectTime       *time.Time `json:"inspectTime,omitempty"`
	WarehouseTime     *time.Time `json:"warehouseTime,omitempty"`
	ReceivedBy        string     `json:"receivedBy,omitempty"`
	InspectedBy       string     `json:"inspectedBy,omitempty"`
	WarehousedBy      string     `json:"warehousedBy,omitempty"`
	InspectionPassed  bool       `json:"inspectionPassed"`
	DeliveredQuantity string     `json:"deliveredQuantity"`
	QualifiedQuantity string     `json:"qualifiedQuantity"`
	RejectedQuantity  string     `json:"rejectedQuantity"`
	DiscrepancyReason string     `json:"discrepancyReason,omitempty"`
	WarehouseLocation string     `json:"warehouseLocation,omitempty"`
}

func orderToResponse(o *order.PurchaseOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemToResponse(item))
	}

	return OrderResponse{
		ID:              o.ID().String(),
		OrderNumber:     o.OrderNumber(),
		Title:           o.Title(),
		SupplierID:      o.SupplierID().String(),
		Status:          o.Status().String(),
		TotalAmount:     o.TotalAmount(),
		TaxAmount:       o.TaxAmount(),
		ShippingAmount:  o.ShippingAmount(),
		DiscountAmount:  o.DiscountAmount(),
		PayableAmount:   o.PayableAmount(),
		Currency:        o.Currency(),
		ApprovedBy:      o.ApprovedBy(),
		ApprovalComment: o.ApprovalComment(),
		ApproveTime:     o.ApproveTime(),
		CancelReason:    o.CancelReason(),
		CreateTime:      o.CreateTime(),
		UpdateTime:      o.UpdateTime(),
		Items:           items,
	}
}

func itemToResponse(item *order.Item) OrderItemResponse {
	response := OrderItemResponse{
		ID:                item.ID().String(),
		ProductName:       item.ProductName(),
		ProductCode:       item.ProductCode(),
		Specification:     item.Specification(),
		Quantity:          item.Quantity(),
		Unit:              item.Unit(),
		UnitPrice:         item.UnitPrice(),
		Subtotal:          item.Subtotal(),
		TaxRate:           item.TaxRate(),
		TaxAmount:         item.TaxAmount(),
		DeliveryStatus:    item.DeliveryStatus().String(),
		ReceivedQuantity:  item.ReceivedQuantity(),
		QualifiedQuantity: item.QualifiedQuantity(),
		ExpectedDelivery:  item.ExpectedDeliveryDate(),
		Remark:            item.Remark(),
	}
	if sku := item.SKU(); sku != nil {
		response.SKUID = sku.String()
	}
	if spu := item.SPU(); spu != nil {
		response.SPUID = spu.String()
	}
	return response
}

func approvalToResponse(a *approval.Approval) ApprovalResponse {
	return ApprovalResponse{
		ID:                 a.ID().String(),
		OrderID:            a.OrderID().String(),
		Level:              a.Level(),
		Sequence:           a.Sequence(),
		Status:             a.Status().String(),
		ApproverID:         a.ApproverID(),
		ApproverName:       a.ApproverName(),
		ApproverRole:       a.ApproverRole(),
		AmountLimit:        a.AmountLimit(),
		RequireCountersign: a.RequireCountersign(),
		Comment:            a.Comment(),
		ApproveTime:        a.ApproveTime(),
	}
}

func deliveryToResponse(d *delivery.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:                d.ID().String(),
		OrderID:           d.OrderID().String(),
		BatchNumber:       d.BatchNumber(),
		Status:            d.Status().String(),
		LogisticsCompany:  d.LogisticsCompany(),
		TrackingNumber:    d.TrackingNumber(),
		ShipTime:          d.ShipTime(),
		ActualArrivalTime: d.ActualArrivalTime(),
		ReceiveTime:       d.ReceiveTime(),
		InspectTime:       d.InspectTime(),
		WarehouseTime:     d.WarehouseTime(),
		ReceivedBy:        d.ReceivedBy(),
		InspectedBy:       d.InspectedBy(),
		WarehousedBy:      d.WarehousedBy(),
		InspectionPassed:  d.InspectionPassed(),
		DeliveredQuantity: d.DeliveredQuantity(),
		QualifiedQuantity: d.QualifiedQuantity(),
		RejectedQuantity:  d.RejectedQuantity(),
		DiscrepancyReason: d.DiscrepancyReason(),
		WarehouseLocation: d.WarehouseLocation(),
	}
}

func ordersToResponse(orders []*order.PurchaseOrder) []OrderResponse {
	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderToResponse(o))
	}
	return response
}

func approvalsToResponse(records []*approval.Approval) []ApprovalResponse {
	response := make([]ApprovalResponse, 0, len(records))
	for _, record := range records {
		response = append(response, approvalToResponse(record))
	}
	return response
}

func deliveriesToResponse(batches []*delivery.Delivery) []DeliveryResponse {
	response := make([]DeliveryResponse, 0, len(batches))
	for _, batch := range batches {
		response = append(response, deliveryToResponse(batch))
	}
	return response
}
