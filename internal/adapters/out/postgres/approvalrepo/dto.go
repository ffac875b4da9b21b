// Package approvalrepo persists approval chain records. The Update path is
// guarded on the pending status so two racing resolvers see exactly one
// winner.
package approvalrepo

import (
	"time"

	"github.com/google/uuid"

	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/kernel"
)

// ApprovalDTO is the database row for one approval record.
type ApprovalDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;index"`
	Level              string
	Sequence           int
	Status             string `gorm:"index"`
	ApproverID         string `gorm:"index"`
	ApproverName       string
	ApproverRole       string
	Comment            string
	ApproveTime        *time.Time
	AmountLimit        *string           `gorm:"type:numeric(15,2)"`
	Attachments        map[string]string `gorm:"serializer:json"`
	RequireCountersign bool
	Remark             string
	CreateTime         time.Time `gorm:"autoCreateTime;index"`
}

// TableName overrides GORM's default naming.
func (ApprovalDTO) TableName() string {
	return "purchase_approvals"
}

func fromDomain(record *approval.Approval) ApprovalDTO {
	var amountLimit *string
	if limit := record.AmountLimit(); limit != "" {
		amountLimit = &limit
	}

	return ApprovalDTO{
		ID:                 record.ID().Bytes(),
		OrderID:            record.OrderID().Bytes(),
		Level:              record.Level(),
		Sequence:           record.Sequence(),
		Status:             string(record.Status()),
		ApproverID:         record.ApproverID(),
		ApproverName:       record.ApproverName(),
		ApproverRole:       record.ApproverRole(),
		Comment:            record.Comment(),
		ApproveTime:        record.ApproveTime(),
		AmountLimit:        amountLimit,
		Attachments:        record.Attachments(),
		RequireCountersign: record.RequireCountersign(),
		Remark:             record.Remark(),
	}
}

func toDomain(dto ApprovalDTO) (*approval.Approval, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var amountLimit string
	if dto.AmountLimit != nil {
		amountLimit = *dto.AmountLimit
	}

	return approval.RestoreApproval(approval.Snapshot{
		ID:                 id,
		OrderID:            orderID,
		Level:              dto.Level,
		Sequence:           dto.Sequence,
		Status:             approval.Status(dto.Status),
		ApproverID:         dto.ApproverID,
		ApproverName:       dto.ApproverName,
		ApproverRole:       dto.ApproverRole,
		Comment:            dto.Comment,
		ApproveTime:        dto.ApproveTime,
		AmountLimit:        amountLimit,
		Attachments:        dto.Attachments,
		RequireCountersign: dto.RequireCountersign,
		Remark:             dto.Remark,
	})
}
