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

// PaymentMethod is how a payment was taken
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

// PaymentRecord is one partial payment against an order. Payments are
// append-only: there is no edit or rollback operation, unlike inventory
// adjustments. A wrongly keyed payment is corrected with remarks on a
// later record, not by un-recording money.
type PaymentRecord struct {
	ID      uuid.UUID       `json:"id"`
	Date    time.Time       `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Method  PaymentMethod   `json:"method"`
	Remarks string          `json:"remarks,omitempty"`
}

// NewPaymentRecord creates a validated payment record
func NewPaymentRecord(amount decimal.Decimal, method PaymentMethod, date time.Time, remarks string) (PaymentRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return PaymentRecord{}, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return PaymentRecord{}, shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}
	if date.IsZero() {
		date = time.Now()
	}

	return PaymentRecord{
		ID:      uuid.New(),
		Date:    date,
		Amount:  amount,
		Method:  method,
		Remarks: remarks,
	}, nil
}

// PaymentHistory is the ordered payment list of an order, persisted as
// a serialized JSON array on the order record.
type PaymentHistory []PaymentRecord

// Total sums all recorded payment amounts
func (h PaymentHistory) Total() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range h {
		total = total.Add(rec.Amount)
	}
	return total
}

// Value implements driver.Valuer for jsonb storage
func (h PaymentHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment history: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for jsonb retrieval
func (h *PaymentHistory) Scan(value any) error {
	if value == nil {
		*h = PaymentHistory{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentHistory", value)
	}

	if len(data) == 0 {
		*h = PaymentHistory{}
		return nil
	}
	return json.Unmarshal(data, h)
}

// PaymentLedger carries the payment state shared by both order kinds
type PaymentLedger struct {
	AmountPaid decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Payments   PaymentHistory  `gorm:"type:jsonb;default:'[]'"`
}

// AmountDue returns totalAmount minus what has been paid so far
func (l *PaymentLedger) AmountDue(totalAmount decimal.Decimal) decimal.Decimal {
	return totalAmount.Sub(l.AmountPaid)
}

// RecordPayment appends a payment, rejecting amounts that exceed the
// balance due. After acceptance AmountPaid never exceeds totalAmount.
func (l *PaymentLedger) RecordPayment(rec PaymentRecord, totalAmount decimal.Decimal) error {
	if rec.Amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if rec.Amount.GreaterThan(l.AmountDue(totalAmount)) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_DUE", "Payment amount exceeds the balance due")
	}

	l.Payments = append(l.Payments, rec)
	l.AmountPaid = l.AmountPaid.Add(rec.Amount)
	return nil
}
