package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// RetailStatus represents the lifecycle status of a retail order
type RetailStatus string

const (
	RetailPending   RetailStatus = "pending"
	RetailCompleted RetailStatus = "completed"
	RetailStuck     RetailStatus = "stuck"
)

// IsValid checks if the status is a valid RetailStatus
func (s RetailStatus) IsValid() bool {
	switch s {
	case RetailPending, RetailCompleted, RetailStuck:
		return true
	}
	return false
}

// String returns the string representation of RetailStatus
func (s RetailStatus) String() string {
	return string(s)
}

// RetailLine is one catalogue item sold on a retail bill. Selling
// price is snapshotted from the catalogue at add-time and must be
// non-zero before submission; Given marks whether the piece was
// handed over.
type RetailLine struct {
	ID           uuid.UUID       `json:"id"`
	ItemCode     string          `json:"itemCode"`
	Description  string          `json:"description"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Given        bool            `json:"given"`
}

// NewRetailLine creates a validated retail line
func NewRetailLine(itemCode, description string, sellingPrice decimal.Decimal, given bool) (RetailLine, error) {
	if itemCode == "" {
		return RetailLine{}, shared.NewDomainError("INVALID_ITEM", "Item code cannot be empty")
	}
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return RetailLine{}, shared.NewDomainError("INVALID_PRICE", "Selling price must be non-zero")
	}

	return RetailLine{
		ID:           uuid.New(),
		ItemCode:     itemCode,
		Description:  description,
		SellingPrice: sellingPrice,
		Given:        given,
	}, nil
}

// RetailLines is the line list of a retail order, persisted as a
// serialized JSON array on the order record.
type RetailLines []RetailLine

// Total sums the selling prices of all lines
func (lines RetailLines) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.SellingPrice)
	}
	return total
}

// AllGiven returns true when every line was handed over
func (lines RetailLines) AllGiven() bool {
	for _, line := range lines {
		if !line.Given {
			return false
		}
	}
	return true
}

// Value implements driver.Valuer for jsonb storage
func (lines RetailLines) Value() (driver.Value, error) {
	if lines == nil {
		return "[]", nil
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal retail lines: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for jsonb retrieval
func (lines *RetailLines) Scan(value any) error {
	if value == nil {
		*lines = RetailLines{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RetailLines", value)
	}

	if len(data) == 0 {
		*lines = RetailLines{}
		return nil
	}
	return json.Unmarshal(data, lines)
}

// RetailOrder is the aggregate root for a counter sale of ready-made
// catalogue pieces. Its human-facing identifier is a bare bill number.
type RetailOrder struct {
	shared.BaseAggregateRoot
	BillNo        int64           `gorm:"not null;uniqueIndex"`
	CustomerName  string          `gorm:"size:200;not null"`
	CustomerPhone string          `gorm:"size:20;not null"`
	OrderDate     time.Time       `gorm:"not null"`
	Lines         RetailLines     `gorm:"type:jsonb;not null;default:'[]'"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentLedger `gorm:"embedded"`
	Status        RetailStatus `gorm:"size:20;not null;default:pending"`
	Remarks       string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RetailOrder) TableName() string {
	return "retail_orders"
}

// NewRetailOrder creates a retail order with status pending. The
// status is re-derived once, after any point-of-sale payment has been
// recorded, via DeriveInitialStatus; afterwards it is operator-set only.
func NewRetailOrder(billNo int64, customerName, customerPhone string, orderDate time.Time, lines RetailLines, remarks string) (*RetailOrder, error) {
	if billNo <= 0 {
		return nil, shared.NewDomainError("INVALID_BILL_NO", "Bill number must be positive")
	}
	if customerName == "" || customerPhone == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name and phone are required")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order requires at least one line")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &RetailOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNo:            billNo,
		CustomerName:      customerName,
		CustomerPhone:     customerPhone,
		OrderDate:         orderDate,
		Lines:             lines,
		TotalAmount:       lines.Total(),
		Status:            RetailPending,
		Remarks:           remarks,
		PaymentLedger: PaymentLedger{
			AmountPaid: decimal.Zero,
			Payments:   PaymentHistory{},
		},
	}

	return order, nil
}

// DeriveInitialStatus sets the creation-time status: completed iff
// nothing is due and every line was handed over, otherwise pending.
// Called exactly once at submission; later edits never re-derive.
func (o *RetailOrder) DeriveInitialStatus() {
	if o.Due().IsZero() && o.Lines.AllGiven() {
		o.Status = RetailCompleted
	} else {
		o.Status = RetailPending
	}
}

// SetStatus sets the operator-chosen status after creation
func (o *RetailOrder) SetStatus(status RetailStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown retail status %q", status))
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// AddPayment records a partial payment against this bill
func (o *RetailOrder) AddPayment(rec PaymentRecord) error {
	if err := o.RecordPayment(rec, o.TotalAmount); err != nil {
		return err
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Due returns the balance still owed on this bill
func (o *RetailOrder) Due() decimal.Decimal {
	return o.AmountDue(o.TotalAmount)
}

// MarkLineGiven flips the given flag on one line
func (o *RetailOrder) MarkLineGiven(lineID uuid.UUID, given bool) error {
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			o.Lines[idx].Given = given
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Retail line not found")
}

// ItemCodes returns the catalogue item codes referenced by this bill
func (o *RetailOrder) ItemCodes() []string {
	codes := make([]string, 0, len(o.Lines))
	for _, line := range o.Lines {
		codes = append(codes, line.ItemCode)
	}
	return codes
}
