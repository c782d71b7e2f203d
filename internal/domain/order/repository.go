package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// StitchingOrderRepository defines the interface for stitching order persistence
type StitchingOrderRepository interface {
	// FindByID finds a stitching order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StitchingOrder, error)

	// FindByOrderNo finds a stitching order by its human-facing number
	FindByOrderNo(ctx context.Context, orderNo string) (*StitchingOrder, error)

	// FindAll finds stitching orders with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]StitchingOrder, error)

	// FindByCustomerPhone finds stitching orders for a customer phone
	FindByCustomerPhone(ctx context.Context, phone string, filter shared.Filter) ([]StitchingOrder, error)

	// FindByStatus finds stitching orders in a given status
	FindByStatus(ctx context.Context, status StitchingStatus, filter shared.Filter) ([]StitchingOrder, error)

	// FindAllForUsage returns every stitching order, unpaginated, for
	// consumption scans
	FindAllForUsage(ctx context.Context) ([]StitchingOrder, error)

	// Save creates or updates a stitching order
	Save(ctx context.Context, order *StitchingOrder) error

	// Count counts stitching orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateOrderNo computes the next ST-NNN number from the stored set
	GenerateOrderNo(ctx context.Context) (string, error)
}

// RetailOrderRepository defines the interface for retail order persistence
type RetailOrderRepository interface {
	// FindByID finds a retail order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*RetailOrder, error)

	// FindByBillNo finds a retail order by bill number
	FindByBillNo(ctx context.Context, billNo int64) (*RetailOrder, error)

	// FindAll finds retail orders with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]RetailOrder, error)

	// FindByCustomerPhone finds retail orders for a customer phone
	FindByCustomerPhone(ctx context.Context, phone string, filter shared.Filter) ([]RetailOrder, error)

	// Save creates or updates a retail order
	Save(ctx context.Context, order *RetailOrder) error

	// Count counts retail orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateBillNo computes the next bill number from the stored set
	GenerateBillNo(ctx context.Context) (int64, error)
}
