package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// Customer is the phone-keyed customer directory entry. Orders keep a
// denormalized name+phone copy, so this record only serves lookups and
// prefilling at the counter; an absent customer is not an error, it
// just means manual entry.
type Customer struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"size:200;not null"`
	Phone   string `gorm:"size:20;not null;uniqueIndex"`
	Address string `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer directory entry
func NewCustomer(name, phone, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Address:           address,
	}, nil
}

// Rename updates the customer's display name
func (c *Customer) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByPhone finds a customer by phone number
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// FindAll finds customers with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
