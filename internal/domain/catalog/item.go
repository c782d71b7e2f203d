package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
	"github.com/stitchpos/backend/internal/domain/shared/valueobject"
)

// Item is one ready-made piece in the retail catalogue. Unlike fabric
// and accessory stock, catalogue pieces are one-offs: each is sold at
// most once, so the record carries a sold flag instead of a ledger.
type Item struct {
	shared.BaseAggregateRoot
	Code         string          `gorm:"size:50;not null;uniqueIndex"`
	Description  string          `gorm:"size:300;not null"`
	Category     string          `gorm:"size:100"` // saree, kurti, dupatta, ...
	Size         string          `gorm:"size:20"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Sold         bool            `gorm:"not null;default:false"`
	SoldBillNo   *int64
	SoldAt       *time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "catalog_items"
}

// NewItem creates a new catalogue item
func NewItem(code, description, category, size string, costPrice, sellingPrice valueobject.Money) (*Item, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if costPrice.IsNegative() || sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Description:       description,
		Category:          category,
		Size:              size,
		CostPrice:         costPrice.Amount(),
		SellingPrice:      sellingPrice.Amount(),
	}, nil
}

// AvailableForSale validates that the item can go on a retail bill:
// it must be unsold and carry a non-zero selling price.
func (i *Item) AvailableForSale() error {
	if i.Sold {
		return shared.ErrItemAlreadySold
	}
	if i.SellingPrice.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Item has no selling price set")
	}
	return nil
}

// MarkSold stamps the item as sold on the given bill
func (i *Item) MarkSold(billNo int64, at time.Time) error {
	if i.Sold {
		return shared.ErrItemAlreadySold
	}
	i.Sold = true
	i.SoldBillNo = &billNo
	i.SoldAt = &at
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// UpdateSellingPrice changes the listed selling price of an unsold item
func (i *Item) UpdateSellingPrice(price valueobject.Money) error {
	if i.Sold {
		return shared.ErrItemAlreadySold
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	i.SellingPrice = price.Amount()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}
