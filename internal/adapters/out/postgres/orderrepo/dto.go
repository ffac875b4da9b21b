// Package orderrepo persists purchase order aggregates with their line items.
// DTO structs mirror the relational shape; mapping functions convert between
// them and the domain aggregate without re-deriving any stored amount.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderDTO is the database row for a purchase order. Money columns keep the
// fixed decimal scales the domain writes; they round-trip as strings.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber          string    `gorm:"uniqueIndex"`
	Title                string
	SupplierID           uuid.UUID `gorm:"type:uuid;index"`
	Status               string    `gorm:"index"`
	TotalAmount          string    `gorm:"type:numeric(15,2)"`
	TaxAmount            string    `gorm:"type:numeric(15,2)"`
	ShippingAmount       string    `gorm:"type:numeric(15,2)"`
	DiscountAmount       string    `gorm:"type:numeric(15,2)"`
	PayableAmount        string    `gorm:"type:numeric(15,2)"`
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
	CreateTime           time.Time `gorm:"index"`
	UpdateTime           time.Time
	CreatedBy            string
	UpdatedBy            string

	Items []ItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming.
func (OrderDTO) TableName() string {
	return "purchase_orders"
}

// ItemDTO is the database row for one order line.
type ItemDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID  `gorm:"type:uuid;index"`
	SKUID                *uuid.UUID `gorm:"type:uuid"`
	SPUID                *uuid.UUID `gorm:"type:uuid"`
	ProductName          string
	ProductCode          string
	Specification        string
	Quantity             string `gorm:"type:numeric(15,4)"`
	Unit                 string
	UnitPrice            string `gorm:"type:numeric(15,4)"`
	Subtotal             string `gorm:"type:numeric(15,2)"`
	TaxRate              string `gorm:"type:numeric(5,2)"`
	TaxAmount            string `gorm:"type:numeric(15,2)"`
	DeliveryStatus       string
	ReceivedQuantity     string `gorm:"type:numeric(15,4)"`
	QualifiedQuantity    string `gorm:"type:numeric(15,4)"`
	ExpectedDeliveryDate *time.Time
	Remark               string
}

// TableName overrides GORM's default naming.
func (ItemDTO) TableName() string {
	return "purchase_order_items"
}

func fromDomain(aggregate *order.PurchaseOrder) OrderDTO {
	dto := OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		OrderNumber:          aggregate.OrderNumber(),
		Title:                aggregate.Title(),
		SupplierID:           aggregate.SupplierID().Bytes(),
		Status:               aggregate.Status().String(),
		TotalAmount:          aggregate.TotalAmount(),
		TaxAmount:            aggregate.TaxAmount(),
		ShippingAmount:       aggregate.ShippingAmount(),
		DiscountAmount:       aggregate.DiscountAmount(),
		PayableAmount:        aggregate.PayableAmount(),
		Currency:             aggregate.Currency(),
		ExpectedDeliveryDate: aggregate.ExpectedDeliveryDate(),
		ActualDeliveryDate:   aggregate.ActualDeliveryDate(),
		DeliveryAddress:      aggregate.DeliveryAddress(),
		PaymentTerms:         aggregate.PaymentTerms(),
		Remark:               aggregate.Remark(),
		ApproveTime:          aggregate.ApproveTime(),
		ApprovedBy:           aggregate.ApprovedBy(),
		ApprovalComment:      aggregate.ApprovalComment(),
		CancelTime:           aggregate.CancelTime(),
		CancelReason:         aggregate.CancelReason(),
		CreateTime:           aggregate.CreateTime(),
		UpdateTime:           aggregate.UpdateTime(),
		CreatedBy:            aggregate.CreatedBy(),
		UpdatedBy:            aggregate.UpdatedBy(),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, itemFromDomain(item))
	}
	return dto
}

func itemFromDomain(item *order.Item) ItemDTO {
	var skuID, spuID *uuid.UUID
	if id := item.SKU(); id != nil {
		raw := id.Bytes()
		skuID = &raw
	}
	if id := item.SPU(); id != nil {
		raw := id.Bytes()
		spuID = &raw
	}

	return ItemDTO{
		ID:                   item.ID().Bytes(),
		OrderID:              item.OrderID().Bytes(),
		SKUID:                skuID,
		SPUID:                spuID,
		ProductName:          item.ProductName(),
		ProductCode:          item.ProductCode(),
		Specification:        item.Specification(),
		Quantity:             item.Quantity(),
		Unit:                 item.Unit(),
		UnitPrice:            item.UnitPrice(),
		Subtotal:             item.Subtotal(),
		TaxRate:              item.TaxRate(),
		TaxAmount:            item.TaxAmount(),
		DeliveryStatus:       string(item.DeliveryStatus()),
		ReceivedQuantity:     item.ReceivedQuantity(),
		QualifiedQuantity:    item.QualifiedQuantity(),
		ExpectedDeliveryDate: item.ExpectedDeliveryDate(),
		Remark:               item.Remark(),
	}
}

func toDomain(dto OrderDTO) (*order.PurchaseOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	aggregate, err := order.RestorePurchaseOrder(order.Snapshot{
		ID:                   id,
		OrderNumber:          dto.OrderNumber,
		Title:                dto.Title,
		SupplierID:           supplierID,
		Status:               order.Status(dto.Status),
		TotalAmount:          dto.TotalAmount,
		TaxAmount:            dto.TaxAmount,
		ShippingAmount:       dto.ShippingAmount,
		DiscountAmount:       dto.DiscountAmount,
		PayableAmount:        dto.PayableAmount,
		Currency:             dto.Currency,
		ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		ActualDeliveryDate:   dto.ActualDeliveryDate,
		DeliveryAddress:      dto.DeliveryAddress,
		PaymentTerms:         dto.PaymentTerms,
		Remark:               dto.Remark,
		ApproveTime:          dto.ApproveTime,
		ApprovedBy:           dto.ApprovedBy,
		ApprovalComment:      dto.ApprovalComment,
		CancelTime:           dto.CancelTime,
		CancelReason:         dto.CancelReason,
		CreateTime:           dto.CreateTime,
		UpdateTime:           dto.UpdateTime,
		CreatedBy:            dto.CreatedBy,
		UpdatedBy:            dto.UpdatedBy,
	})
	if err != nil {
		return nil, err
	}

	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		aggregate.AddItem(item)
	}
	return aggregate, nil
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var skuID, spuID *kernel.UUID
	if dto.SKUID != nil {
		parsed, skuErr := kernel.UUIDFromBytes((*dto.SKUID)[:])
		if skuErr != nil {
			return nil, skuErr
		}
		skuID = &parsed
	}
	if dto.SPUID != nil {
		parsed, spuErr := kernel.UUIDFromBytes((*dto.SPUID)[:])
		if spuErr != nil {
			return nil, spuErr
		}
		spuID = &parsed
	}

	return order.RestoreItem(order.ItemSnapshot{
		ID:                   id,
		OrderID:              orderID,
		SKUID:                skuID,
		SPUID:                spuID,
		ProductName:          dto.ProductName,
		ProductCode:          dto.ProductCode,
		Specification:        dto.Specification,
		Quantity:             dto.Quantity,
		Unit:                 dto.Unit,
		UnitPrice:            dto.UnitPrice,
		Subtotal:             dto.Subtotal,
		TaxRate:              dto.TaxRate,
		TaxAmount:            dto.TaxAmount,
		DeliveryStatus:       delivery.Status(dto.DeliveryStatus),
		ReceivedQuantity:     dto.ReceivedQuantity,
		QualifiedQuantity:    dto.QualifiedQuantity,
		ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		Remark:               dto.Remark,
	})
}
