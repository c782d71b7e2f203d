package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// FabricRepository defines the interface for fabric persistence
type FabricRepository interface {
	// FindByID finds a fabric by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Fabric, error)

	// FindByCode finds a fabric by its human-assigned code
	FindByCode(ctx context.Context, code string) (*Fabric, error)

	// FindAll finds fabrics with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Fabric, error)

	// Save creates or updates a fabric
	Save(ctx context.Context, fabric *Fabric) error

	// Count counts fabrics matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks whether a fabric code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// AccessoryRepository defines the interface for accessory persistence
type AccessoryRepository interface {
	// FindByID finds an accessory by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Accessory, error)

	// FindByCode finds an accessory by its human-assigned code
	FindByCode(ctx context.Context, code string) (*Accessory, error)

	// FindAll finds accessories with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Accessory, error)

	// Save creates or updates an accessory
	Save(ctx context.Context, accessory *Accessory) error

	// Count counts accessories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks whether an accessory code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
