package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// ItemRepository defines the interface for catalogue item persistence
type ItemRepository interface {
	// FindByID finds a catalogue item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByCode finds a catalogue item by its human-assigned code
	FindByCode(ctx context.Context, code string) (*Item, error)

	// FindAll finds catalogue items with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// FindUnsold finds items still available for sale
	FindUnsold(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Save creates or updates a catalogue item
	Save(ctx context.Context, item *Item) error

	// Count counts catalogue items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks whether an item code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
