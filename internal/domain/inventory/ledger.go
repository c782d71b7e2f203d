package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// StockLedger tracks total stock and the manual adjustment history for
// one inventory item. Fabric and accessory inventories share this shape
// and differ only in their unit of measure.
//
// Two figures feed the derived "available" quantity and they have
// separate owners: the ledger is the sole writer of stock additions
// (TotalStock moves only through add-type adjustments), while orders
// are the sole source of consumption. Order-driven usage is never
// written into the ledger; callers supply it, freshly aggregated from
// the current order set, whenever available stock must be computed.
type StockLedger struct {
	TotalStock  decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Adjustments AdjustmentHistory `gorm:"type:jsonb;default:'[]'"`
}

// NewStockLedger creates a ledger with an opening stock figure
func NewStockLedger(openingStock decimal.Decimal) (StockLedger, error) {
	if openingStock.IsNegative() {
		return StockLedger{}, shared.NewDomainError("INVALID_STOCK", "Opening stock cannot be negative")
	}
	return StockLedger{
		TotalStock:  openingStock,
		Adjustments: AdjustmentHistory{},
	}, nil
}

// Available computes the stock still on hand:
// total stock minus order-driven consumption minus all reduce adjustments.
func (l *StockLedger) Available(orderUsed decimal.Decimal) decimal.Decimal {
	return l.TotalStock.Sub(orderUsed).Sub(l.Adjustments.ReducedTotal())
}

// ApplyAdjustment appends a record to the adjustment history.
// Add-type adjustments increase TotalStock by the record quantity.
// Reduce-type adjustments leave TotalStock untouched but are rejected
// when they would drive the available figure negative; orderUsed is the
// current order-driven consumption for this item.
func (l *StockLedger) ApplyAdjustment(rec AdjustmentRecord, orderUsed decimal.Decimal) error {
	if rec.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity must be positive")
	}

	switch rec.Type {
	case AdjustmentAdd:
		l.TotalStock = l.TotalStock.Add(rec.Quantity)
	case AdjustmentReduce:
		if rec.Quantity.GreaterThan(l.Available(orderUsed)) {
			return shared.ErrInsufficientStock
		}
	default:
		return shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Unknown adjustment type")
	}

	l.Adjustments = append(l.Adjustments, rec)
	return nil
}

// RollbackAdjustment removes the record at index from the history and
// returns it. Rolling back an add-type adjustment subtracts its
// quantity from TotalStock (exact inverse); rolling back a reduce-type
// adjustment changes nothing else, since removal alone restores the
// available figure. A rollback that would drive TotalStock or the
// available figure negative is rejected rather than silently producing
// an impossible stock position: consumption already booked against the
// addition (orderUsed is the current order-driven consumption for this
// item) cannot be left uncovered.
func (l *StockLedger) RollbackAdjustment(index int, orderUsed decimal.Decimal) (AdjustmentRecord, error) {
	if index < 0 || index >= len(l.Adjustments) {
		return AdjustmentRecord{}, shared.NewDomainError("ADJUSTMENT_NOT_FOUND", "No adjustment at the given position")
	}

	rec := l.Adjustments[index]
	if rec.Type == AdjustmentAdd {
		remaining := l.TotalStock.Sub(rec.Quantity)
		if remaining.IsNegative() {
			return AdjustmentRecord{}, shared.NewDomainError("ROLLBACK_BELOW_ZERO", "Rolling back this addition would drive total stock negative")
		}
		if remaining.Sub(orderUsed).Sub(l.Adjustments.ReducedTotal()).IsNegative() {
			return AdjustmentRecord{}, shared.NewDomainError("ROLLBACK_BELOW_ZERO", "Rolling back this addition would drive available stock negative")
		}
		l.TotalStock = remaining
	}

	l.Adjustments = append(l.Adjustments[:index], l.Adjustments[index+1:]...)
	return rec, nil
}
