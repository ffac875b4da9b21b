package orderrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.PurchaseOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order and replaces its item rows. Items are fully
// owned by the aggregate, so delete-and-reinsert keeps the rows exactly in
// sync with the collection.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.PurchaseOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("create_time", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.PurchaseOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindPendingApproval retrieves all orders awaiting approval, oldest first.
func (r *GormOrderRepository) FindPendingApproval(ctx context.Context) ([]*order.PurchaseOrder, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status = ?", order.PendingApproval).
		Order("create_time").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindBySupplier retrieves a supplier's orders, optionally narrowed to the
// given statuses, oldest first.
func (r *GormOrderRepository) FindBySupplier(
	ctx context.Context,
	supplierID kernel.UUID,
	statuses ...order.Status,
) ([]*order.PurchaseOrder, error) {
	if err := supplierID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Preload("Items").
		Where("supplier_id = ?", supplierID.Bytes())
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusStrings(statuses))
	}

	var dtos []OrderDTO
	if err := query.Order("create_time").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Search retrieves orders matching the criteria, newest first. Zero-valued
// criteria fields are not applied.
func (r *GormOrderRepository) Search(
	ctx context.Context,
	criteria ports.OrderSearchCriteria,
) ([]*order.PurchaseOrder, error) {
	query := r.db.WithContext(ctx).Preload("Items")

	if criteria.OrderNumber != "" {
		query = query.Where("order_number = ?", criteria.OrderNumber)
	}
	if criteria.Title != "" {
		query = query.Where("title LIKE ?", "%"+criteria.Title+"%")
	}
	if criteria.SupplierID != nil {
		query = query.Where("supplier_id = ?", criteria.SupplierID.Bytes())
	}
	if len(criteria.Statuses) > 0 {
		query = query.Where("status IN ?", statusStrings(criteria.Statuses))
	}
	if criteria.CreatedFrom != nil {
		query = query.Where("create_time >= ?", *criteria.CreatedFrom)
	}
	if criteria.CreatedTo != nil {
		query = query.Where("create_time <= ?", *criteria.CreatedTo)
	}

	var dtos []OrderDTO
	if err := query.Order("create_time DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Statistics aggregates counts and payable totals for orders created in the
// period, grouped in the database.
func (r *GormOrderRepository) Statistics(
	ctx context.Context,
	startDate, endDate *time.Time,
) (ports.OrderStatistics, error) {
	query := r.db.WithContext(ctx).Model(&OrderDTO{})
	if startDate != nil {
		query = query.Where("create_time >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("create_time <= ?", *endDate)
	}

	rows, err := query.
		Select("status, COUNT(*), COALESCE(SUM(payable_amount), 0)").
		Group("status").
		Rows()
	if err != nil {
		return ports.OrderStatistics{}, err
	}
	defer rows.Close()

	stats := ports.OrderStatistics{
		TotalPayable:  kernel.ZeroMoney(),
		CountByStatus: make(map[order.Status]int64),
	}
	payable := kernel.MustAmount(kernel.ZeroMoney())

	for rows.Next() {
		var status string
		var count int64
		var sum string

		if err = rows.Scan(&status, &count, &sum); err != nil {
			return ports.OrderStatistics{}, err
		}

		stats.TotalCount += count
		stats.CountByStatus[order.Status(status)] = count
		payable = payable.Add(kernel.MustAmount(sum))
	}
	if err = rows.Err(); err != nil {
		return ports.OrderStatistics{}, err
	}

	stats.TotalPayable = kernel.RoundMoney(payable)
	return stats, nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.PurchaseOrder, error) {
	orders := make([]*order.PurchaseOrder, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

func statusStrings(statuses []order.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}
