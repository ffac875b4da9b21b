package approvalrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// GormApprovalRepository implements ports.ApprovalRepository using GORM.
type GormApprovalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormApprovalRepository creates a new GORM approval repository.
func NewGormApprovalRepository(db *gorm.DB, tracker aggregateTracker) *GormApprovalRepository {
	return &GormApprovalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new approval record.
func (r *GormApprovalRepository) Add(ctx context.Context, record *approval.Approval) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// AddBatch saves a whole approval chain in one statement, so the chain
// appears all-or-nothing to readers.
func (r *GormApprovalRepository) AddBatch(ctx context.Context, records []*approval.Approval) error {
	if len(records) == 0 {
		return nil
	}

	dtos := make([]ApprovalDTO, 0, len(records))
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(record))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for _, record := range records {
		r.tracker.TrackAggregate(record.ID(), record)
	}
	return nil
}

// Update saves a resolved or cancelled record. The write only applies while
// the stored row is still pending; a racing resolver who lost the update
// gets ErrApprovalAlreadyResolved.
func (r *GormApprovalRepository) Update(ctx context.Context, record *approval.Approval) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Model(&ApprovalDTO{}).
		Where("id = ? AND status = ?", dto.ID, approval.Pending).
		Select("*").Omit("create_time").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ApprovalDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("approval", record.ID().String())
		}
		return ports.ErrApprovalAlreadyResolved
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Get retrieves an approval record by ID.
func (r *GormApprovalRepository) Get(ctx context.Context, id kernel.UUID) (*approval.Approval, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ApprovalDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("approval", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindPendingApprovals retrieves all pending records oldest first, optionally
// narrowed to one approver ID or role.
func (r *GormApprovalRepository) FindPendingApprovals(ctx context.Context, approverID string) ([]*approval.Approval, error) {
	query := r.db.WithContext(ctx).Where("status = ?", approval.Pending)
	if approverID != "" {
		query = query.Where("approver_id = ? OR approver_role = ?", approverID, approverID)
	}

	var dtos []ApprovalDTO
	if err := query.Order("create_time").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindByOrder retrieves an order's approval history by sequence then
// creation time.
func (r *GormApprovalRepository) FindByOrder(ctx context.Context, orderID kernel.UUID) ([]*approval.Approval, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ApprovalDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("sequence, create_time").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ApprovalDTO) ([]*approval.Approval, error) {
	records := make([]*approval.Approval, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
