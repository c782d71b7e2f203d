package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/order"
	"github.com/stitchpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStitchingOrderRepository implements StitchingOrderRepository using GORM
type GormStitchingOrderRepository struct {
	db *gorm.DB
}

// NewGormStitchingOrderRepository creates a new GormStitchingOrderRepository
func NewGormStitchingOrderRepository(db *gorm.DB) *GormStitchingOrderRepository {
	return &GormStitchingOrderRepository{db: db}
}

// FindByID finds a stitching order by ID
func (r *GormStitchingOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.StitchingOrder, error) {
	var o order.StitchingOrder
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNo finds a stitching order by its human-facing number
func (r *GormStitchingOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.StitchingOrder, error) {
	var o order.StitchingOrder
	if err := r.db.WithContext(ctx).First(&o, "order_no = ?", orderNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds stitching orders matching the filter
func (r *GormStitchingOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.StitchingOrder, error) {
	var orders []order.StitchingOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.StitchingOrder{}), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByCustomerPhone finds stitching orders for a customer phone
func (r *GormStitchingOrderRepository) FindByCustomerPhone(ctx context.Context, phone string, filter shared.Filter) ([]order.StitchingOrder, error) {
	var orders []order.StitchingOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.StitchingOrder{}).Where("customer_phone = ?", phone),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds stitching orders in a given status
func (r *GormStitchingOrderRepository) FindByStatus(ctx context.Context, status order.StitchingStatus, filter shared.Filter) ([]order.StitchingOrder, error) {
	var orders []order.StitchingOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.StitchingOrder{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllForUsage returns every stitching order, unpaginated.
// Consumption scans need the complete item history, so no filter or
// limit applies here.
func (r *GormStitchingOrderRepository) FindAllForUsage(ctx context.Context) ([]order.StitchingOrder, error) {
	var orders []order.StitchingOrder
	if err := r.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a stitching order
func (r *GormStitchingOrderRepository) Save(ctx context.Context, o *order.StitchingOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// Count counts stitching orders matching the filter
func (r *GormStitchingOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.StitchingOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderNo computes the next ST-NNN number from the stored set.
// Reads every existing number and takes max+1; the unique index on
// order_no is the backstop if two submissions race.
func (r *GormStitchingOrderRepository) GenerateOrderNo(ctx context.Context) (string, error) {
	var existing []string
	if err := r.db.WithContext(ctx).Model(&order.StitchingOrder{}).
		Pluck("order_no", &existing).Error; err != nil {
		return "", err
	}
	return order.NextStitchingOrderNo(existing), nil
}

func (r *GormStitchingOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("order_date DESC")
	}

	return query
}

func (r *GormStitchingOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_no ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "promise_before":
			query = query.Where("promise_date <= ?", value)
		}
	}

	return query
}

// Ensure GormStitchingOrderRepository implements StitchingOrderRepository
var _ order.StitchingOrderRepository = (*GormStitchingOrderRepository)(nil)
