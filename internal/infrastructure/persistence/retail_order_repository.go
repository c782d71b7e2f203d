package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/order"
	"github.com/stitchpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRetailOrderRepository implements RetailOrderRepository using GORM
type GormRetailOrderRepository struct {
	db *gorm.DB
}

// NewGormRetailOrderRepository creates a new GormRetailOrderRepository
func NewGormRetailOrderRepository(db *gorm.DB) *GormRetailOrderRepository {
	return &GormRetailOrderRepository{db: db}
}

// FindByID finds a retail order by ID
func (r *GormRetailOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.RetailOrder, error) {
	var o order.RetailOrder
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByBillNo finds a retail order by bill number
func (r *GormRetailOrderRepository) FindByBillNo(ctx context.Context, billNo int64) (*order.RetailOrder, error) {
	var o order.RetailOrder
	if err := r.db.WithContext(ctx).First(&o, "bill_no = ?", billNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds retail orders matching the filter
func (r *GormRetailOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.RetailOrder, error) {
	var orders []order.RetailOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.RetailOrder{}), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByCustomerPhone finds retail orders for a customer phone
func (r *GormRetailOrderRepository) FindByCustomerPhone(ctx context.Context, phone string, filter shared.Filter) ([]order.RetailOrder, error) {
	var orders []order.RetailOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.RetailOrder{}).Where("customer_phone = ?", phone),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a retail order
func (r *GormRetailOrderRepository) Save(ctx context.Context, o *order.RetailOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// Count counts retail orders matching the filter
func (r *GormRetailOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.RetailOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateBillNo computes the next bill number from the stored set
func (r *GormRetailOrderRepository) GenerateBillNo(ctx context.Context) (int64, error) {
	var existing []int64
	if err := r.db.WithContext(ctx).Model(&order.RetailOrder{}).
		Pluck("bill_no", &existing).Error; err != nil {
		return 0, err
	}
	return order.NextBillNo(existing), nil
}

func (r *GormRetailOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("bill_no DESC")
	}

	return query
}

func (r *GormRetailOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		// A purely numeric search also matches the bill number
		if billNo, err := strconv.ParseInt(filter.Search, 10, 64); err == nil {
			query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ? OR bill_no = ?",
				searchPattern, searchPattern, billNo)
		} else {
			query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ?",
				searchPattern, searchPattern)
		}
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormRetailOrderRepository implements RetailOrderRepository
var _ order.RetailOrderRepository = (*GormRetailOrderRepository)(nil)
