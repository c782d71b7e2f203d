package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/inventory"
	"github.com/stitchpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAccessoryRepository implements AccessoryRepository using GORM
type GormAccessoryRepository struct {
	db *gorm.DB
}

// NewGormAccessoryRepository creates a new GormAccessoryRepository
func NewGormAccessoryRepository(db *gorm.DB) *GormAccessoryRepository {
	return &GormAccessoryRepository{db: db}
}

// FindByID finds an accessory by its ID
func (r *GormAccessoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Accessory, error) {
	var accessory inventory.Accessory
	if err := r.db.WithContext(ctx).First(&accessory, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &accessory, nil
}

// FindByCode finds an accessory by its human-assigned code
func (r *GormAccessoryRepository) FindByCode(ctx context.Context, code string) (*inventory.Accessory, error) {
	var accessory inventory.Accessory
	if err := r.db.WithContext(ctx).First(&accessory, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &accessory, nil
}

// FindAll finds accessories matching the filter
func (r *GormAccessoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Accessory, error) {
	var accessories []inventory.Accessory
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Accessory{}), filter)

	if err := query.Find(&accessories).Error; err != nil {
		return nil, err
	}
	return accessories, nil
}

// Save creates or updates an accessory
func (r *GormAccessoryRepository) Save(ctx context.Context, accessory *inventory.Accessory) error {
	return r.db.WithContext(ctx).Save(accessory).Error
}

// Count counts accessories matching the filter
func (r *GormAccessoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Accessory{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks whether an accessory code is already taken
func (r *GormAccessoryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.Accessory{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormAccessoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("code ASC")
	}

	return query
}

func (r *GormAccessoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "supplier":
			query = query.Where("supplier = ?", value)
		}
	}

	return query
}

// Ensure GormAccessoryRepository implements AccessoryRepository
var _ inventory.AccessoryRepository = (*GormAccessoryRepository)(nil)
