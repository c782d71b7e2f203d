package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/partner"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// Service handles the customer directory. Lookups are phone-keyed and
// miss-tolerant: an unknown phone returns nothing rather than an error,
// since the counter falls back to manual entry.
type Service struct {
	customerRepo partner.CustomerRepository
}

// NewService creates a new partner Service
func NewService(customerRepo partner.CustomerRepository) *Service {
	return &Service{customerRepo: customerRepo}
}

// Upsert records a customer seen at the counter. An existing phone
// updates the name and address in place; a new phone creates the entry.
func (s *Service) Upsert(ctx context.Context, req UpsertCustomerRequest) (*CustomerResponse, error) {
	existing, err := s.customerRepo.FindByPhone(ctx, req.Phone)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := existing.Rename(req.Name); err != nil {
			return nil, err
		}
		if req.Address != "" {
			existing.Address = req.Address
		}
		if err := s.customerRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return toCustomerResponse(existing), nil
	}

	customer, err := partner.NewCustomer(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get returns a customer by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// LookupByPhone returns the directory entry for a phone number, or nil
// when the phone is unknown
func (s *Service) LookupByPhone(ctx context.Context, phone string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List returns customers with pagination
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, *toCustomerResponse(&customers[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
