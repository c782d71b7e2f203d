package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/inventory"
)

// CreateFabricRequest represents a request to register a new fabric line
type CreateFabricRequest struct {
	Code         string          `json:"code" binding:"required,min=1,max=50"`
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Material     string          `json:"material" binding:"max=100"`
	Color        string          `json:"color" binding:"max=50"`
	Supplier     string          `json:"supplier" binding:"max=200"`
	RatePerMeter decimal.Decimal `json:"rate_per_meter"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
}

// CreateAccessoryRequest represents a request to register a new accessory line
type CreateAccessoryRequest struct {
	Code         string          `json:"code" binding:"required,min=1,max=50"`
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Category     string          `json:"category" binding:"max=100"`
	Supplier     string          `json:"supplier" binding:"max=200"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
}

// UpdateRateRequest represents a request to change a fabric rate or
// accessory unit price going forward
type UpdateRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// AdjustmentRequest represents a request to apply a manual stock adjustment
type AdjustmentRequest struct {
	Type     string           `json:"type" binding:"required,oneof=add reduce"`
	Quantity decimal.Decimal  `json:"quantity"`
	Reason   string           `json:"reason" binding:"required,min=1,max=200"`
	Date     *time.Time       `json:"date"`
	Amount   *decimal.Decimal `json:"amount"`
	Notes    string           `json:"notes" binding:"max=500"`
}

// AdjustmentResponse represents one adjustment record in API responses
type AdjustmentResponse struct {
	ID       uuid.UUID        `json:"id"`
	Date     time.Time        `json:"date"`
	Type     string           `json:"type"`
	Quantity decimal.Decimal  `json:"quantity"`
	Reason   string           `json:"reason"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Notes    string           `json:"notes,omitempty"`
}

// FabricResponse represents a fabric line in API responses. Available
// is derived on every read from the current order set plus the
// adjustment history; it is never stored.
type FabricResponse struct {
	ID             uuid.UUID            `json:"id"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	Material       string               `json:"material"`
	Color          string               `json:"color"`
	Supplier       string               `json:"supplier"`
	Unit           string               `json:"unit"`
	RatePerMeter   decimal.Decimal      `json:"rate_per_meter"`
	TotalStock     decimal.Decimal      `json:"total_stock"`
	OrderUsed      decimal.Decimal      `json:"order_used"`
	ReducedTotal   decimal.Decimal      `json:"reduced_total"`
	Available      decimal.Decimal      `json:"available"`
	Adjustments    []AdjustmentResponse `json:"adjustments"`
	LastConsumedAt *time.Time           `json:"last_consumed_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// AccessoryResponse represents an accessory line in API responses
type AccessoryResponse struct {
	ID             uuid.UUID            `json:"id"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	Category       string               `json:"category"`
	Supplier       string               `json:"supplier"`
	Unit           string               `json:"unit"`
	UnitPrice      decimal.Decimal      `json:"unit_price"`
	TotalStock     decimal.Decimal      `json:"total_stock"`
	OrderUsed      decimal.Decimal      `json:"order_used"`
	ReducedTotal   decimal.Decimal      `json:"reduced_total"`
	Available      decimal.Decimal      `json:"available"`
	Adjustments    []AdjustmentResponse `json:"adjustments"`
	LastConsumedAt *time.Time           `json:"last_consumed_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// UsageEntryResponse is one order's consumption of an inventory item
type UsageEntryResponse struct {
	OrderNo         string          `json:"order_no"`
	CustomerName    string          `json:"customer_name"`
	OrderDate       time.Time       `json:"order_date"`
	QuantityUsed    decimal.Decimal `json:"quantity_used"`
	ItemDescription string          `json:"item_description"`
}

// UsageReportResponse is the reconstructed consumption report for one
// inventory item
type UsageReportResponse struct {
	Code      string               `json:"code"`
	Unit      string               `json:"unit"`
	TotalUsed decimal.Decimal      `json:"total_used"`
	Entries   []UsageEntryResponse `json:"entries"`
}

func toAdjustmentResponses(history inventory.AdjustmentHistory) []AdjustmentResponse {
	out := make([]AdjustmentResponse, 0, len(history))
	for _, rec := range history {
		out = append(out, AdjustmentResponse{
			ID:       rec.ID,
			Date:     rec.Date,
			Type:     string(rec.Type),
			Quantity: rec.Quantity,
			Reason:   rec.Reason,
			Amount:   rec.Amount,
			Notes:    rec.Notes,
		})
	}
	return out
}

func toFabricResponse(f *inventory.Fabric, orderUsed decimal.Decimal) *FabricResponse {
	return &FabricResponse{
		ID:             f.ID,
		Code:           f.Code,
		Name:           f.Name,
		Material:       f.Material,
		Color:          f.Color,
		Supplier:       f.Supplier,
		Unit:           f.Unit,
		RatePerMeter:   f.RatePerMeter,
		TotalStock:     f.TotalStock,
		OrderUsed:      orderUsed,
		ReducedTotal:   f.Adjustments.ReducedTotal(),
		Available:      f.Available(orderUsed),
		Adjustments:    toAdjustmentResponses(f.Adjustments),
		LastConsumedAt: f.LastConsumedAt,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func toAccessoryResponse(a *inventory.Accessory, orderUsed decimal.Decimal) *AccessoryResponse {
	return &AccessoryResponse{
		ID:             a.ID,
		Code:           a.Code,
		Name:           a.Name,
		Category:       a.Category,
		Supplier:       a.Supplier,
		Unit:           a.Unit,
		UnitPrice:      a.UnitPrice,
		TotalStock:     a.TotalStock,
		OrderUsed:      orderUsed,
		ReducedTotal:   a.Adjustments.ReducedTotal(),
		Available:      a.Available(orderUsed),
		Adjustments:    toAdjustmentResponses(a.Adjustments),
		LastConsumedAt: a.LastConsumedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toUsageEntryResponses(entries []inventory.UsageEntry) []UsageEntryResponse {
	out := make([]UsageEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, UsageEntryResponse{
			OrderNo:         e.OrderNo,
			CustomerName:    e.CustomerName,
			OrderDate:       e.OrderDate,
			QuantityUsed:    e.QuantityUsed,
			ItemDescription: e.ItemDescription,
		})
	}
	return out
}
