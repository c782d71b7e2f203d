package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/order"
)

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func newPaymentRecord(req PaymentRequest) (order.PaymentRecord, error) {
	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}
	return order.NewPaymentRecord(req.Amount, order.PaymentMethod(req.Method), date, req.Remarks)
}
