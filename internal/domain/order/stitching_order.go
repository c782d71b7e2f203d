package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// StitchingStatus represents the lifecycle status of a stitching order.
// The operator moves orders through pending → in-progress → ready →
// delivered; stuck is a side state for orders blocked on the customer
// or a supplier, reachable from any non-terminal state.
type StitchingStatus string

const (
	StitchingPending    StitchingStatus = "pending"
	StitchingInProgress StitchingStatus = "in-progress"
	StitchingReady      StitchingStatus = "ready"
	StitchingDelivered  StitchingStatus = "delivered"
	StitchingStuck      StitchingStatus = "stuck"
)

// IsValid checks if the status is a valid StitchingStatus
func (s StitchingStatus) IsValid() bool {
	switch s {
	case StitchingPending, StitchingInProgress, StitchingReady, StitchingDelivered, StitchingStuck:
		return true
	}
	return false
}

// IsTerminal returns true for statuses with no onward movement
func (s StitchingStatus) IsTerminal() bool {
	return s == StitchingDelivered
}

// String returns the string representation of StitchingStatus
func (s StitchingStatus) String() string {
	return string(s)
}

// StitchingOrder is the aggregate root for a custom tailoring order.
// The customer reference is a denormalized name+phone copy, not a
// foreign key; editing the customer record later does not rewrite
// past orders.
type StitchingOrder struct {
	shared.BaseAggregateRoot
	OrderNo       string          `gorm:"size:20;not null;uniqueIndex"`
	CustomerName  string          `gorm:"size:200;not null"`
	CustomerPhone string          `gorm:"size:20;not null"`
	OrderDate     time.Time       `gorm:"not null"`
	PromiseDate   time.Time       `gorm:"not null"`
	Items         OrderItems      `gorm:"type:jsonb;not null;default:'[]'"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentLedger `gorm:"embedded"`
	Status        StitchingStatus `gorm:"size:20;not null;default:pending"`
	Remarks       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StitchingOrder) TableName() string {
	return "stitching_orders"
}

// NewStitchingOrder creates a stitching order. The order number comes
// from the repository's sequence (max existing + 1); customer identity,
// at least one item and a promise date are submission preconditions.
// The total is always computed from the item list, never taken from
// the caller.
func NewStitchingOrder(orderNo, customerName, customerPhone string, orderDate, promiseDate time.Time, items OrderItems, remarks string) (*StitchingOrder, error) {
	if orderNo == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NO", "Order number cannot be empty")
	}
	if customerName == "" || customerPhone == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name and phone are required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order requires at least one item")
	}
	if promiseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PROMISE_DATE", "Promise date is required")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &StitchingOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNo:           orderNo,
		CustomerName:      customerName,
		CustomerPhone:     customerPhone,
		OrderDate:         orderDate,
		PromiseDate:       promiseDate,
		Items:             items,
		Status:            StitchingPending,
		Remarks:           remarks,
		PaymentLedger: PaymentLedger{
			AmountPaid: decimal.Zero,
			Payments:   PaymentHistory{},
		},
	}
	order.recalculateTotal()

	return order, nil
}

// recalculateTotal refreshes TotalAmount from the current item list.
// Runs on every item change; a total is never trusted across an edit.
func (o *StitchingOrder) recalculateTotal() {
	o.TotalAmount = o.Items.Total()
}

// ReplaceItems swaps the item list and recomputes the total. An edit
// that would drop the total below the amount already collected is
// rejected: payments are never un-recorded, so accepting it would
// leave the order owing money to the customer outside the ledger.
func (o *StitchingOrder) ReplaceItems(items OrderItems) error {
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Order requires at least one item")
	}
	if items.Total().LessThan(o.AmountPaid) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_DUE", "New item total is below the amount already paid")
	}
	o.Items = items
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// VerifyTotal recomputes the total from the current item list and
// rejects a caller-supplied figure that is stale relative to it.
func (o *StitchingOrder) VerifyTotal(claimed decimal.Decimal) error {
	if !o.Items.Total().Equal(claimed) {
		return shared.ErrStaleTotal
	}
	return nil
}

// SetStatus sets the operator-chosen status. No transition graph is
// enforced beyond keeping delivered orders out of the stuck state.
func (o *StitchingOrder) SetStatus(status StitchingStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown stitching status %q", status))
	}
	if status == StitchingStuck && o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "A delivered order cannot be marked stuck")
	}

	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// AddPayment records a partial payment against this order
func (o *StitchingOrder) AddPayment(rec PaymentRecord) error {
	if err := o.RecordPayment(rec, o.TotalAmount); err != nil {
		return err
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Due returns the balance still owed on this order
func (o *StitchingOrder) Due() decimal.Decimal {
	return o.AmountDue(o.TotalAmount)
}

// FabricCodes returns the distinct shop fabric codes referenced by the
// item list
func (o *StitchingOrder) FabricCodes() []string {
	seen := make(map[string]bool)
	codes := make([]string, 0)
	for _, item := range o.Items {
		if item.Fabric == nil || item.Fabric.FabricCode == "" {
			continue
		}
		if !seen[item.Fabric.FabricCode] {
			seen[item.Fabric.FabricCode] = true
			codes = append(codes, item.Fabric.FabricCode)
		}
	}
	return codes
}

// AccessoryCodes returns the distinct accessory codes referenced by the
// item list
func (o *StitchingOrder) AccessoryCodes() []string {
	seen := make(map[string]bool)
	codes := make([]string, 0)
	for _, item := range o.Items {
		for _, a := range item.Accessories {
			if a.AccessoryCode != "" && !seen[a.AccessoryCode] {
				seen[a.AccessoryCode] = true
				codes = append(codes, a.AccessoryCode)
			}
		}
	}
	return codes
}

// SetRemarks sets the order remarks
func (o *StitchingOrder) SetRemarks(remarks string) {
	o.Remarks = remarks
	o.UpdatedAt = time.Now()
}
