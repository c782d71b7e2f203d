package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/order"
)

// FabricUsageRequest describes the fabric cut for one order item.
// RatePerMeter is optional; when omitted the fabric's current shop rate
// is snapshotted onto the line.
type FabricUsageRequest struct {
	Source       string           `json:"source" binding:"required,oneof=shop customer"`
	FabricCode   string           `json:"fabric_code" binding:"max=50"`
	MetersUsed   decimal.Decimal  `json:"meters_used"`
	RatePerMeter *decimal.Decimal `json:"rate_per_meter"`
}

// AccessoryUsageRequest describes accessories consumed by one order item
type AccessoryUsageRequest struct {
	AccessoryCode    string           `json:"accessory_code" binding:"required,min=1,max=50"`
	QuantityUsed     decimal.Decimal  `json:"quantity_used"`
	UnitPrice        *decimal.Decimal `json:"unit_price"`
	BilledToCustomer bool             `json:"billed_to_customer"`
}

// ChargeRequest is an ad-hoc charge on an order item
type ChargeRequest struct {
	Label  string          `json:"label" binding:"required,min=1,max=100"`
	Amount decimal.Decimal `json:"amount"`
}

// OrderItemRequest is one garment line on a stitching order submission
type OrderItemRequest struct {
	ItemType          string                  `json:"item_type" binding:"required,min=1,max=100"`
	Quantity          int64                   `json:"quantity" binding:"required,min=1"`
	StitchingPrice    decimal.Decimal         `json:"stitching_price"`
	AsterRequired     bool                    `json:"aster_required"`
	AsterCharge       decimal.Decimal         `json:"aster_charge"`
	Fabric            *FabricUsageRequest     `json:"fabric"`
	Accessories       []AccessoryUsageRequest `json:"accessories"`
	AdditionalCharges []ChargeRequest         `json:"additional_charges"`
	Measurements      string                  `json:"measurements" binding:"max=2000"`
	Notes             string                  `json:"notes" binding:"max=500"`
}

// PaymentRequest records one payment taken at the counter
type PaymentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method" binding:"required,oneof=cash upi card"`
	Date    *time.Time      `json:"date"`
	Remarks string          `json:"remarks" binding:"max=500"`
}

// SubmitStitchingOrderRequest represents a new stitching order
// submission. ExpectedTotal, when supplied, is the total the operator
// saw on screen; a mismatch against the recomputed total rejects the
// submission instead of silently billing a different figure.
type SubmitStitchingOrderRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerPhone string             `json:"customer_phone" binding:"required,min=1,max=20"`
	OrderDate     *time.Time         `json:"order_date"`
	PromiseDate   time.Time          `json:"promise_date" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Advance       *PaymentRequest    `json:"advance"`
	ExpectedTotal *decimal.Decimal   `json:"expected_total"`
	Remarks       string             `json:"remarks" binding:"max=1000"`
}

// RetailLineRequest is one catalogue piece on a retail bill.
// SellingPrice overrides the catalogue price when haggling happened;
// omitted means the listed price is snapshotted.
type RetailLineRequest struct {
	ItemCode     string           `json:"item_code" binding:"required,min=1,max=50"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	Given        bool             `json:"given"`
}

// SubmitRetailOrderRequest represents a new retail bill submission
type SubmitRetailOrderRequest struct {
	CustomerName  string              `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerPhone string              `json:"customer_phone" binding:"required,min=1,max=20"`
	OrderDate     *time.Time          `json:"order_date"`
	Lines         []RetailLineRequest `json:"lines" binding:"required,min=1,dive"`
	Payment       *PaymentRequest     `json:"payment"`
	Remarks       string              `json:"remarks" binding:"max=1000"`
}

// UpdateStatusRequest sets the operator-chosen order status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReplaceItemsRequest swaps the item list of an existing stitching order
type ReplaceItemsRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ExpectedTotal *decimal.Decimal   `json:"expected_total"`
}

// StitchingOrderResponse represents a stitching order in API responses.
// PartialFailures lists follow-up bookkeeping writes that failed after
// the order itself was persisted; the order stands regardless.
type StitchingOrderResponse struct {
	ID              uuid.UUID            `json:"id"`
	OrderNo         string               `json:"order_no"`
	CustomerName    string               `json:"customer_name"`
	CustomerPhone   string               `json:"customer_phone"`
	OrderDate       time.Time            `json:"order_date"`
	PromiseDate     time.Time            `json:"promise_date"`
	Items           order.OrderItems     `json:"items"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	AmountPaid      decimal.Decimal      `json:"amount_paid"`
	AmountDue       decimal.Decimal      `json:"amount_due"`
	Payments        order.PaymentHistory `json:"payments"`
	Status          string               `json:"status"`
	Remarks         string               `json:"remarks,omitempty"`
	PartialFailures []string             `json:"partial_failures,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// RetailOrderResponse represents a retail bill in API responses
type RetailOrderResponse struct {
	ID              uuid.UUID            `json:"id"`
	BillNo          int64                `json:"bill_no"`
	CustomerName    string               `json:"customer_name"`
	CustomerPhone   string               `json:"customer_phone"`
	OrderDate       time.Time            `json:"order_date"`
	Lines           order.RetailLines    `json:"lines"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	AmountPaid      decimal.Decimal      `json:"amount_paid"`
	AmountDue       decimal.Decimal      `json:"amount_due"`
	Payments        order.PaymentHistory `json:"payments"`
	Status          string               `json:"status"`
	Remarks         string               `json:"remarks,omitempty"`
	PartialFailures []string             `json:"partial_failures,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func toStitchingOrderResponse(o *order.StitchingOrder, partialFailures []string) *StitchingOrderResponse {
	return &StitchingOrderResponse{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		OrderDate:       o.OrderDate,
		PromiseDate:     o.PromiseDate,
		Items:           o.Items,
		TotalAmount:     o.TotalAmount,
		AmountPaid:      o.AmountPaid,
		AmountDue:       o.Due(),
		Payments:        o.Payments,
		Status:          o.Status.String(),
		Remarks:         o.Remarks,
		PartialFailures: partialFailures,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toRetailOrderResponse(o *order.RetailOrder, partialFailures []string) *RetailOrderResponse {
	return &RetailOrderResponse{
		ID:              o.ID,
		BillNo:          o.BillNo,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		OrderDate:       o.OrderDate,
		Lines:           o.Lines,
		TotalAmount:     o.TotalAmount,
		AmountPaid:      o.AmountPaid,
		AmountDue:       o.Due(),
		Payments:        o.Payments,
		Status:          o.Status.String(),
		Remarks:         o.Remarks,
		PartialFailures: partialFailures,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
