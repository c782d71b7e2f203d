package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/catalog"
	"github.com/stitchpos/backend/internal/domain/shared"
	"github.com/stitchpos/backend/internal/domain/shared/valueobject"
)

// Service handles retail catalogue operations
type Service struct {
	itemRepo catalog.ItemRepository
}

// NewService creates a new catalogue Service
func NewService(itemRepo catalog.ItemRepository) *Service {
	return &Service{itemRepo: itemRepo}
}

// Create adds a piece to the catalogue
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.itemRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Catalogue item with this code already exists")
	}

	item, err := catalog.NewItem(req.Code, req.Description, req.Category, req.Size,
		valueobject.NewMoneyINR(req.CostPrice), valueobject.NewMoneyINR(req.SellingPrice))
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Get returns a catalogue item by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByCode returns a catalogue item by its human-assigned code
func (s *Service) GetByCode(ctx context.Context, code string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List returns catalogue items with pagination. When unsoldOnly is set,
// sold pieces are filtered out at the query.
func (s *Service) List(ctx context.Context, filter shared.Filter, unsoldOnly bool) (*shared.Paginated[ItemResponse], error) {
	var (
		items []catalog.Item
		err   error
	)
	if unsoldOnly {
		items, err = s.itemRepo.FindUnsold(ctx, filter)
	} else {
		items, err = s.itemRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toItemResponse(&items[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdatePrice changes an unsold item's listed selling price
func (s *Service) UpdatePrice(ctx context.Context, id uuid.UUID, req UpdatePriceRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.UpdateSellingPrice(valueobject.NewMoneyINR(req.SellingPrice)); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}
