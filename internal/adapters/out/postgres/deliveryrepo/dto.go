// Package deliveryrepo persists delivery batches through the receiving
// pipeline.
package deliveryrepo

import (
	"time"

	"github.com/google/uuid"

	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
)

// DeliveryDTO is the database row for one delivery batch.
type DeliveryDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID `gorm:"type:uuid;index"`
	BatchNumber          string
	Status               string `gorm:"index"`
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
	DeliveredQuantity    string `gorm:"type:numeric(15,4)"`
	QualifiedQuantity    string `gorm:"type:numeric(15,4)"`
	RejectedQuantity     string `gorm:"type:numeric(15,4)"`
	DiscrepancyReason    string
	WarehouseLocation    string
	Attachments          map[string]string `gorm:"serializer:json"`
	Remark               string
	CreateTime           time.Time `gorm:"autoCreateTime;index"`
}

// TableName overrides GORM's default naming.
func (DeliveryDTO) TableName() string {
	return "purchase_deliveries"
}

func fromDomain(batch *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:                   batch.ID().Bytes(),
		OrderID:              batch.OrderID().Bytes(),
		BatchNumber:          batch.BatchNumber(),
		Status:               string(batch.Status()),
		LogisticsCompany:     batch.LogisticsCompany(),
		TrackingNumber:       batch.TrackingNumber(),
		ShipTime:             batch.ShipTime(),
		EstimatedArrivalTime: batch.EstimatedArrivalTime(),
		ActualArrivalTime:    batch.ActualArrivalTime(),
		ReceiveTime:          batch.ReceiveTime(),
		InspectTime:          batch.InspectTime(),
		WarehouseTime:        batch.WarehouseTime(),
		ReceivedBy:           batch.ReceivedBy(),
		InspectedBy:          batch.InspectedBy(),
		WarehousedBy:         batch.WarehousedBy(),
		InspectionPassed:     batch.InspectionPassed(),
		InspectionComment:    batch.InspectionComment(),
		DeliveredQuantity:    batch.DeliveredQuantity(),
		QualifiedQuantity:    batch.QualifiedQuantity(),
		RejectedQuantity:     batch.RejectedQuantity(),
		DiscrepancyReason:    batch.DiscrepancyReason(),
		WarehouseLocation:    batch.WarehouseLocation(),
		Attachments:          batch.Attachments(),
		Remark:               batch.Remark(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(delivery.Snapshot{
		ID:                   id,
		OrderID:              orderID,
		BatchNumber:          dto.BatchNumber,
		Status:               delivery.Status(dto.Status),
		LogisticsCompany:     dto.LogisticsCompany,
		TrackingNumber:       dto.TrackingNumber,
		ShipTime:             dto.ShipTime,
		EstimatedArrivalTime: dto.EstimatedArrivalTime,
		ActualArrivalTime:    dto.ActualArrivalTime,
		ReceiveTime:          dto.ReceiveTime,
		InspectTime:          dto.InspectTime,
		WarehouseTime:        dto.WarehouseTime,
		ReceivedBy:           dto.ReceivedBy,
		InspectedBy:          dto.InspectedBy,
		WarehousedBy:         dto.WarehousedBy,
		InspectionPassed:     dto.InspectionPassed,
		InspectionComment:    dto.InspectionComment,
		DeliveredQuantity:    dto.DeliveredQuantity,
		QualifiedQuantity:    dto.QualifiedQuantity,
		RejectedQuantity:     dto.RejectedQuantity,
		DiscrepancyReason:    dto.DiscrepancyReason,
		WarehouseLocation:    dto.WarehouseLocation,
		Attachments:          dto.Attachments,
		Remark:               dto.Remark,
	})
}
