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

// GormFabricRepository implements FabricRepository using GORM
type GormFabricRepository struct {
	db *gorm.DB
}

// NewGormFabricRepository creates a new GormFabricRepository
func NewGormFabricRepository(db *gorm.DB) *GormFabricRepository {
	return &GormFabricRepository{db: db}
}

// FindByID finds a fabric by its ID
func (r *GormFabricRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Fabric, error) {
	var fabric inventory.Fabric
	if err := r.db.WithContext(ctx).First(&fabric, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &fabric, nil
}

// FindByCode finds a fabric by its human-assigned code
func (r *GormFabricRepository) FindByCode(ctx context.Context, code string) (*inventory.Fabric, error) {
	var fabric inventory.Fabric
	if err := r.db.WithContext(ctx).First(&fabric, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &fabric, nil
}

// FindAll finds fabrics matching the filter
func (r *GormFabricRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Fabric, error) {
	var fabrics []inventory.Fabric
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Fabric{}), filter)

	if err := query.Find(&fabrics).Error; err != nil {
		return nil, err
	}
	return fabrics, nil
}

// Save creates or updates a fabric
func (r *GormFabricRepository) Save(ctx context.Context, fabric *inventory.Fabric) error {
	return r.db.WithContext(ctx).Save(fabric).Error
}

// Count counts fabrics matching the filter
func (r *GormFabricRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Fabric{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks whether a fabric code is already taken
func (r *GormFabricRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.Fabric{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormFabricRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormFabricRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR material ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "material":
			query = query.Where("material = ?", value)
		case "color":
			query = query.Where("color = ?", value)
		case "supplier":
			query = query.Where("supplier = ?", value)
		}
	}

	return query
}

// Ensure GormFabricRepository implements FabricRepository
var _ inventory.FabricRepository = (*GormFabricRepository)(nil)
