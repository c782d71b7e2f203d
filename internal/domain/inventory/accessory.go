package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
	"github.com/stitchpos/backend/internal/domain/shared/valueobject"
)

// Accessory represents counted stock of a trim or notion used on
// stitching orders: buttons, zips, laces, linings. Same ledger shape as
// Fabric, counted in pieces.
type Accessory struct {
	shared.BaseAggregateRoot
	Code           string          `gorm:"size:50;not null;uniqueIndex"`
	Name           string          `gorm:"size:200;not null"`
	Category       string          `gorm:"size:100"` // button, zip, lace, ...
	Supplier       string          `gorm:"size:200"`
	Unit           string          `gorm:"size:10;not null;default:pc"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockLedger    `gorm:"embedded"`
	LastConsumedAt *time.Time
}

// TableName returns the table name for GORM
func (Accessory) TableName() string {
	return "accessories"
}

// NewAccessory creates a new accessory stock line
func NewAccessory(code, name, category, supplier string, unitPrice valueobject.Money, openingStock decimal.Decimal) (*Accessory, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Accessory code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Accessory name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	ledger, err := NewStockLedger(openingStock)
	if err != nil {
		return nil, err
	}

	return &Accessory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Category:          category,
		Supplier:          supplier,
		Unit:              valueobject.UnitPiece,
		UnitPrice:         unitPrice.Amount(),
		StockLedger:       ledger,
	}, nil
}

// Apply appends an adjustment record; orderUsed is the current
// order-driven consumption in pieces for this accessory.
func (a *Accessory) Apply(rec AdjustmentRecord, orderUsed decimal.Decimal) error {
	if err := a.ApplyAdjustment(rec, orderUsed); err != nil {
		return err
	}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Rollback removes the adjustment at index, reversing its stock
// effect; orderUsed is the current order-driven consumption in pieces
// for this accessory.
func (a *Accessory) Rollback(index int, orderUsed decimal.Decimal) (AdjustmentRecord, error) {
	rec, err := a.RollbackAdjustment(index, orderUsed)
	if err != nil {
		return AdjustmentRecord{}, err
	}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return rec, nil
}

// UpdatePrice changes the unit price charged going forward.
// Accessory usages on existing orders keep their snapshotted price.
func (a *Accessory) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	a.UnitPrice = price.Amount()
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// TouchConsumption stamps the record after an order consuming this
// accessory was persisted; see Fabric.TouchConsumption.
func (a *Accessory) TouchConsumption(at time.Time) {
	a.LastConsumedAt = &at
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
