package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
)

// FabricSource says whose fabric a stitching line is cut from.
// Customer-supplied fabric is never billed and never consumes shop stock.
type FabricSource string

const (
	FabricSourceShop     FabricSource = "shop"
	FabricSourceCustomer FabricSource = "customer"
)

// IsValid checks if the source is a valid FabricSource
func (s FabricSource) IsValid() bool {
	return s == FabricSourceShop || s == FabricSourceCustomer
}

// FabricUsage records the fabric cut for one order item. Rate is
// snapshotted at add-time; later rate changes on the fabric record do
// not reprice existing lines.
type FabricUsage struct {
	FabricCode   string          `json:"fabricCode,omitempty"` // empty when customer-supplied
	Source       FabricSource    `json:"source"`
	MetersUsed   decimal.Decimal `json:"metersUsed"`
	RatePerMeter decimal.Decimal `json:"ratePerMeter"`
	FabricCost   decimal.Decimal `json:"fabricCost"`
}

// NewFabricUsage creates a fabric usage line. Cost is meters × rate for
// shop fabric and zero for customer-supplied fabric.
func NewFabricUsage(fabricCode string, source FabricSource, metersUsed, ratePerMeter decimal.Decimal) (FabricUsage, error) {
	if !source.IsValid() {
		return FabricUsage{}, shared.NewDomainError("INVALID_FABRIC_SOURCE", fmt.Sprintf("Unknown fabric source %q", source))
	}
	if source == FabricSourceShop && fabricCode == "" {
		return FabricUsage{}, shared.NewDomainError("INVALID_FABRIC", "Shop fabric requires a fabric code")
	}
	if metersUsed.LessThanOrEqual(decimal.Zero) {
		return FabricUsage{}, shared.NewDomainError("INVALID_QUANTITY", "Meters used must be positive")
	}
	if ratePerMeter.IsNegative() {
		return FabricUsage{}, shared.NewDomainError("INVALID_RATE", "Rate per meter cannot be negative")
	}

	cost := decimal.Zero
	if source == FabricSourceShop {
		cost = metersUsed.Mul(ratePerMeter)
	}

	return FabricUsage{
		FabricCode:   fabricCode,
		Source:       source,
		MetersUsed:   metersUsed,
		RatePerMeter: ratePerMeter,
		FabricCost:   cost,
	}, nil
}

// AccessoryUsage records accessories consumed by one order item.
// Unit price is snapshotted at add-time. Only usages billed to the
// customer contribute to the line price; unbilled ones still consume
// stock.
type AccessoryUsage struct {
	AccessoryCode    string          `json:"accessoryCode"`
	Name             string          `json:"name"`
	QuantityUsed     decimal.Decimal `json:"quantityUsed"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	BilledToCustomer bool            `json:"billedToCustomer"`
}

// NewAccessoryUsage creates an accessory usage line
func NewAccessoryUsage(accessoryCode, name string, quantityUsed, unitPrice decimal.Decimal, billed bool) (AccessoryUsage, error) {
	if accessoryCode == "" {
		return AccessoryUsage{}, shared.NewDomainError("INVALID_ACCESSORY", "Accessory code cannot be empty")
	}
	if quantityUsed.LessThanOrEqual(decimal.Zero) {
		return AccessoryUsage{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity used must be positive")
	}
	if unitPrice.IsNegative() {
		return AccessoryUsage{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return AccessoryUsage{
		AccessoryCode:    accessoryCode,
		Name:             name,
		QuantityUsed:     quantityUsed,
		UnitPrice:        unitPrice,
		TotalCost:        quantityUsed.Mul(unitPrice),
		BilledToCustomer: billed,
	}, nil
}

// AdditionalCharge is an ad-hoc charge on a line (fall, pico, urgent
// delivery, ...)
type AdditionalCharge struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// NewAdditionalCharge creates an ad-hoc charge
func NewAdditionalCharge(label string, amount decimal.Decimal) (AdditionalCharge, error) {
	if label == "" {
		return AdditionalCharge{}, shared.NewDomainError("INVALID_CHARGE", "Charge label cannot be empty")
	}
	if amount.IsNegative() {
		return AdditionalCharge{}, shared.NewDomainError("INVALID_CHARGE", "Charge amount cannot be negative")
	}
	return AdditionalCharge{Label: label, Amount: amount}, nil
}

// OrderItem is one garment line on a stitching order: the stitching
// work itself plus its fabric, accessory and ad-hoc sub-charges.
type OrderItem struct {
	ID                uuid.UUID          `json:"id"`
	ItemType          string             `json:"itemType"` // kurta, blouse, lehenga, ...
	Quantity          int64              `json:"quantity"`
	StitchingPrice    decimal.Decimal    `json:"stitchingPrice"`
	AsterRequired     bool               `json:"asterRequired"` // lining
	AsterCharge       decimal.Decimal    `json:"asterCharge"`
	Fabric            *FabricUsage       `json:"fabric,omitempty"`
	Accessories       []AccessoryUsage   `json:"accessories,omitempty"`
	AdditionalCharges []AdditionalCharge `json:"additionalCharges,omitempty"`
	Measurements      string             `json:"measurements,omitempty"`
	Notes             string             `json:"notes,omitempty"`
}

// NewOrderItem creates a validated order item. All monetary inputs must
// be non-negative; negative values are a caller error and are rejected,
// never clamped.
func NewOrderItem(itemType string, quantity int64, stitchingPrice decimal.Decimal, asterRequired bool, asterCharge decimal.Decimal) (OrderItem, error) {
	if itemType == "" {
		return OrderItem{}, shared.NewDomainError("INVALID_ITEM_TYPE", "Item type cannot be empty")
	}
	if quantity <= 0 {
		return OrderItem{}, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if stitchingPrice.IsNegative() {
		return OrderItem{}, shared.NewDomainError("INVALID_PRICE", "Stitching price cannot be negative")
	}
	if asterCharge.IsNegative() {
		return OrderItem{}, shared.NewDomainError("INVALID_PRICE", "Aster charge cannot be negative")
	}
	if !asterRequired {
		asterCharge = decimal.Zero
	}

	return OrderItem{
		ID:             uuid.New(),
		ItemType:       itemType,
		Quantity:       quantity,
		StitchingPrice: stitchingPrice,
		AsterRequired:  asterRequired,
		AsterCharge:    asterCharge,
	}, nil
}

// SetFabric attaches the fabric usage for this line
func (i *OrderItem) SetFabric(usage FabricUsage) {
	i.Fabric = &usage
}

// AddAccessory appends an accessory usage to this line
func (i *OrderItem) AddAccessory(usage AccessoryUsage) {
	i.Accessories = append(i.Accessories, usage)
}

// AddCharge appends an ad-hoc charge to this line
func (i *OrderItem) AddCharge(charge AdditionalCharge) {
	i.AdditionalCharges = append(i.AdditionalCharges, charge)
}

// Price computes the line total:
//
//	stitchingPrice × quantity
//	+ asterCharge × quantity when aster is required
//	+ fabric cost (zero for customer-supplied fabric)
//	+ sum of ad-hoc charges
//	+ sum of accessory costs billed to the customer
//
// Pure; recomputing on an unchanged item always yields the same value.
func (i OrderItem) Price() decimal.Decimal {
	qty := decimal.NewFromInt(i.Quantity)
	total := i.StitchingPrice.Mul(qty)

	if i.AsterRequired {
		total = total.Add(i.AsterCharge.Mul(qty))
	}
	if i.Fabric != nil {
		total = total.Add(i.Fabric.FabricCost)
	}
	for _, c := range i.AdditionalCharges {
		total = total.Add(c.Amount)
	}
	for _, a := range i.Accessories {
		if a.BilledToCustomer {
			total = total.Add(a.TotalCost)
		}
	}
	return total
}

// OrderItems is the ordered item list of a stitching order, persisted
// as a serialized JSON array on the order record.
type OrderItems []OrderItem

// Total sums the line prices of all items
func (items OrderItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price())
	}
	return total
}

// Value implements driver.Valuer for jsonb storage
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for jsonb retrieval
func (items *OrderItems) Scan(value any) error {
	if value == nil {
		*items = OrderItems{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderItems", value)
	}

	if len(data) == 0 {
		*items = OrderItems{}
		return nil
	}
	return json.Unmarshal(data, items)
}
