package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
	"github.com/stitchpos/backend/internal/domain/shared/valueobject"
)

// Fabric represents one bolt/line of shop fabric stock. It is the
// aggregate root for fabric ledger operations. The code is a
// human-assigned identifier (e.g. "FAB-023") used by order line items
// to reference the fabric.
type Fabric struct {
	shared.BaseAggregateRoot
	Code           string          `gorm:"size:50;not null;uniqueIndex"`
	Name           string          `gorm:"size:200;not null"`
	Material       string          `gorm:"size:100"` // cotton, silk, linen, ...
	Color          string          `gorm:"size:50"`
	Supplier       string          `gorm:"size:200"`
	Unit           string          `gorm:"size:10;not null;default:m"`
	RatePerMeter   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockLedger    `gorm:"embedded"`
	LastConsumedAt *time.Time
}

// TableName returns the table name for GORM
func (Fabric) TableName() string {
	return "fabrics"
}

// NewFabric creates a new fabric stock line
func NewFabric(code, name, material, color, supplier string, ratePerMeter valueobject.Money, openingStock decimal.Decimal) (*Fabric, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Fabric code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Fabric name cannot be empty")
	}
	if ratePerMeter.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate per meter cannot be negative")
	}

	ledger, err := NewStockLedger(openingStock)
	if err != nil {
		return nil, err
	}

	return &Fabric{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Material:          material,
		Color:             color,
		Supplier:          supplier,
		Unit:              valueobject.UnitMeter,
		RatePerMeter:      ratePerMeter.Amount(),
		StockLedger:       ledger,
	}, nil
}

// Apply appends an adjustment record; orderUsed is the current
// order-driven consumption in meters for this fabric.
func (f *Fabric) Apply(rec AdjustmentRecord, orderUsed decimal.Decimal) error {
	if err := f.ApplyAdjustment(rec, orderUsed); err != nil {
		return err
	}
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return nil
}

// Rollback removes the adjustment at index, reversing its stock
// effect; orderUsed is the current order-driven consumption in meters
// for this fabric.
func (f *Fabric) Rollback(index int, orderUsed decimal.Decimal) (AdjustmentRecord, error) {
	rec, err := f.RollbackAdjustment(index, orderUsed)
	if err != nil {
		return AdjustmentRecord{}, err
	}
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return rec, nil
}

// UpdateRate changes the shop rate charged per meter going forward.
// Existing order lines keep the rate snapshotted at add-time.
func (f *Fabric) UpdateRate(rate valueobject.Money) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate per meter cannot be negative")
	}
	f.RatePerMeter = rate.Amount()
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return nil
}

// TouchConsumption records that an order consuming this fabric was
// persisted. Consumption itself is never folded into the ledger; this
// only stamps the record so reconciliation views can show freshness.
func (f *Fabric) TouchConsumption(at time.Time) {
	f.LastConsumedAt = &at
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}
