package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/catalog"
)

// CreateItemRequest represents a request to add a piece to the catalogue
type CreateItemRequest struct {
	Code         string          `json:"code" binding:"required,min=1,max=50"`
	Description  string          `json:"description" binding:"required,min=1,max=300"`
	Category     string          `json:"category" binding:"max=100"`
	Size         string          `json:"size" binding:"max=20"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// UpdatePriceRequest changes an unsold item's listed selling price
type UpdatePriceRequest struct {
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// ItemResponse represents a catalogue item in API responses
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Size         string          `json:"size"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Sold         bool            `json:"sold"`
	SoldBillNo   *int64          `json:"sold_bill_no,omitempty"`
	SoldAt       *time.Time      `json:"sold_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toItemResponse(item *catalog.Item) *ItemResponse {
	return &ItemResponse{
		ID:           item.ID,
		Code:         item.Code,
		Description:  item.Description,
		Category:     item.Category,
		Size:         item.Size,
		CostPrice:    item.CostPrice,
		SellingPrice: item.SellingPrice,
		Sold:         item.Sold,
		SoldBillNo:   item.SoldBillNo,
		SoldAt:       item.SoldAt,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
