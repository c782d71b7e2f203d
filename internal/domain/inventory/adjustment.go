package inventory

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// AdjustmentType classifies a manual stock adjustment
type AdjustmentType string

const (
	AdjustmentAdd    AdjustmentType = "add"    // increases total stock
	AdjustmentReduce AdjustmentType = "reduce" // counts toward consumption, total stock untouched
)

// IsValid checks if the type is a valid AdjustmentType
func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentAdd || t == AdjustmentReduce
}

// Reasons accepted for reduce-type adjustments. Add-type adjustments
// carry free-text reasons (new purchase, opening correction, ...).
const (
	ReasonSold       = "sold"
	ReasonDamaged    = "damaged"
	ReasonLost       = "lost"
	ReasonReturn     = "return"
	ReasonCorrection = "correction"
	ReasonOther      = "other"
)

var reduceReasons = map[string]bool{
	ReasonSold:       true,
	ReasonDamaged:    true,
	ReasonLost:       true,
	ReasonReturn:     true,
	ReasonCorrection: true,
	ReasonOther:      true,
}

// AdjustmentRecord is one manual change to an inventory item's
// bookkeeping. Records are immutable once created; the only way to undo
// one is to roll it back (delete it) from the history.
type AdjustmentRecord struct {
	ID       uuid.UUID        `json:"id"`
	Date     time.Time        `json:"date"`
	Type     AdjustmentType   `json:"type"`
	Quantity decimal.Decimal  `json:"quantity"`
	Reason   string           `json:"reason"`
	Amount   *decimal.Decimal `json:"amount,omitempty"` // sale value, meaningful when reason is "sold"
	Notes    string           `json:"notes,omitempty"`
}

// NewAdjustmentRecord creates a validated adjustment record
func NewAdjustmentRecord(adjType AdjustmentType, quantity decimal.Decimal, reason string, date time.Time, amount *decimal.Decimal, notes string) (AdjustmentRecord, error) {
	if !adjType.IsValid() {
		return AdjustmentRecord{}, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", fmt.Sprintf("Unknown adjustment type %q", adjType))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return AdjustmentRecord{}, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity must be positive")
	}
	if reason == "" {
		return AdjustmentRecord{}, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}
	if adjType == AdjustmentReduce && !reduceReasons[reason] {
		return AdjustmentRecord{}, shared.NewDomainError("INVALID_REASON", fmt.Sprintf("Unknown reduce reason %q", reason))
	}
	if amount != nil && amount.IsNegative() {
		return AdjustmentRecord{}, shared.NewDomainError("INVALID_AMOUNT", "Adjustment amount cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return AdjustmentRecord{
		ID:       uuid.New(),
		Date:     date,
		Type:     adjType,
		Quantity: quantity,
		Reason:   reason,
		Amount:   amount,
		Notes:    notes,
	}, nil
}

// AdjustmentHistory is the ordered list of adjustments applied to one
// inventory item. Insertion order is the chronological order of
// application; it is not necessarily sorted by the record date.
// It persists as a serialized JSON array on the owning record.
type AdjustmentHistory []AdjustmentRecord

// ReducedTotal sums the quantities of all reduce-type adjustments
func (h AdjustmentHistory) ReducedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range h {
		if rec.Type == AdjustmentReduce {
			total = total.Add(rec.Quantity)
		}
	}
	return total
}

// AddedTotal sums the quantities of all add-type adjustments
func (h AdjustmentHistory) AddedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range h {
		if rec.Type == AdjustmentAdd {
			total = total.Add(rec.Quantity)
		}
	}
	return total
}

// Value implements driver.Valuer for jsonb storage
func (h AdjustmentHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal adjustment history: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for jsonb retrieval
func (h *AdjustmentHistory) Scan(value any) error {
	if value == nil {
		*h = AdjustmentHistory{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AdjustmentHistory", value)
	}

	if len(data) == 0 {
		*h = AdjustmentHistory{}
		return nil
	}
	return json.Unmarshal(data, h)
}
