package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery batch.
func (r *GormDeliveryRepository) Add(ctx context.Context, batch *delivery.Delivery) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	dto := fromDomain(batch)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(batch.ID(), batch)
	return nil
}

// Update saves an existing delivery batch.
func (r *GormDeliveryRepository) Update(ctx context.Context, batch *delivery.Delivery) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	dto := fromDomain(batch)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("create_time").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(batch.ID(), batch)
	return nil
}

// Get retrieves a delivery batch by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByOrder retrieves all of an order's batches oldest first.
func (r *GormDeliveryRepository) FindByOrder(ctx context.Context, orderID kernel.UUID) ([]*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("create_time").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindInTransit retrieves all batches currently with the carrier.
func (r *GormDeliveryRepository) FindInTransit(ctx context.Context) ([]*delivery.Delivery, error) {
	return r.findByStatus(ctx, delivery.InTransit)
}

// FindPendingInspection retrieves all received-but-uninspected batches.
func (r *GormDeliveryRepository) FindPendingInspection(ctx context.Context) ([]*delivery.Delivery, error) {
	return r.findByStatus(ctx, delivery.Received)
}

// FindPendingWarehousing retrieves all inspected-but-unstored batches.
func (r *GormDeliveryRepository) FindPendingWarehousing(ctx context.Context) ([]*delivery.Delivery, error) {
	return r.findByStatus(ctx, delivery.Inspected)
}

func (r *GormDeliveryRepository) findByStatus(ctx context.Context, status delivery.Status) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("create_time").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Statistics aggregates batch counts for the period, grouped in the
// database.
func (r *GormDeliveryRepository) Statistics(
	ctx context.Context,
	startDate, endDate *time.Time,
) (ports.DeliveryStatistics, error) {
	query := r.db.WithContext(ctx).Model(&DeliveryDTO{})
	if startDate != nil {
		query = query.Where("create_time >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("create_time <= ?", *endDate)
	}

	rows, err := query.Select("status, COUNT(*)").Group("status").Rows()
	if err != nil {
		return ports.DeliveryStatistics{}, err
	}
	defer rows.Close()

	stats := ports.DeliveryStatistics{
		CountByStatus: make(map[delivery.Status]int64),
	}
	for rows.Next() {
		var status string
		var count int64

		if err = rows.Scan(&status, &count); err != nil {
			return ports.DeliveryStatistics{}, err
		}

		stats.TotalCount += count
		stats.CountByStatus[delivery.Status(status)] = count
	}
	if err = rows.Err(); err != nil {
		return ports.DeliveryStatistics{}, err
	}

	return stats, nil
}

func toDomainSlice(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	batches := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		batch, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}
