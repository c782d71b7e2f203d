package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/catalog"
	"github.com/stitchpos/backend/internal/domain/order"
	"github.com/stitchpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RetailService handles counter sales of ready-made catalogue pieces.
// Submission mirrors the stitching saga: the bill row is the
// authoritative write, and marking each catalogue piece sold is a
// best-effort follow-up reported back per item when it fails.
type RetailService struct {
	orderRepo order.RetailOrderRepository
	itemRepo  catalog.ItemRepository
	logger    *zap.Logger
}

// NewRetailService creates a new RetailService
func NewRetailService(
	orderRepo order.RetailOrderRepository,
	itemRepo catalog.ItemRepository,
	logger *zap.Logger,
) *RetailService {
	return &RetailService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		logger:    logger,
	}
}

// buildLines resolves line requests against the catalogue: each piece
// must exist, be unsold and carry a selling price. Every catalogue
// entry is one physical piece, so the same code cannot appear on two
// lines of one bill.
func (s *RetailService) buildLines(ctx context.Context, reqs []RetailLineRequest) (order.RetailLines, error) {
	lines := make(order.RetailLines, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, req := range reqs {
		if _, dup := seen[req.ItemCode]; dup {
			return nil, shared.NewDomainError("DUPLICATE_ITEM_CODE",
				fmt.Sprintf("Catalogue item %q appears more than once on this bill", req.ItemCode))
		}
		seen[req.ItemCode] = struct{}{}

		item, err := s.itemRepo.FindByCode(ctx, req.ItemCode)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("ITEM_NOT_FOUND",
					fmt.Sprintf("Catalogue item %q does not exist", req.ItemCode))
			}
			return nil, err
		}
		if err := item.AvailableForSale(); err != nil {
			return nil, err
		}

		price := item.SellingPrice
		if req.SellingPrice != nil {
			price = *req.SellingPrice
		}
		line, err := order.NewRetailLine(item.Code, item.Description, price, req.Given)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Submit validates, numbers and persists a new retail bill. The status
// is derived once here, after the point-of-sale payment lands: completed
// iff nothing is due and every piece was handed over. Later payments or
// handovers never re-derive it.
func (s *RetailService) Submit(ctx context.Context, req SubmitRetailOrderRequest) (*RetailOrderResponse, error) {
	lines, err := s.buildLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	billNo, err := s.orderRepo.GenerateBillNo(ctx)
	if err != nil {
		return nil, err
	}

	orderDate := time.Time{}
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	o, err := order.NewRetailOrder(billNo, req.CustomerName, req.CustomerPhone, orderDate, lines, req.Remarks)
	if err != nil {
		return nil, err
	}

	if req.Payment != nil {
		rec, err := newPaymentRecord(*req.Payment)
		if err != nil {
			return nil, err
		}
		if err := o.AddPayment(rec); err != nil {
			return nil, err
		}
	}
	o.DeriveInitialStatus()

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	failures := s.markItemsSold(ctx, o)
	return toRetailOrderResponse(o, failures), nil
}

// markItemsSold stamps every catalogue piece on the bill as sold.
// Each stamp is independent; failures are logged and reported back.
func (s *RetailService) markItemsSold(ctx context.Context, o *order.RetailOrder) []string {
	var failures []string
	soldAt := time.Now()

	for _, code := range o.ItemCodes() {
		if err := s.markSold(ctx, code, o.BillNo, soldAt); err != nil {
			s.logger.Warn("catalogue sold stamp failed",
				zap.Int64("bill_no", o.BillNo),
				zap.String("item_code", code),
				zap.Error(err))
			failures = append(failures, fmt.Sprintf("item %s: %v", code, err))
		}
	}
	return failures
}

func (s *RetailService) markSold(ctx context.Context, code string, billNo int64, at time.Time) error {
	item, err := s.itemRepo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if err := item.MarkSold(billNo, at); err != nil {
		return err
	}
	return s.itemRepo.Save(ctx, item)
}

// Get returns a retail bill by ID
func (s *RetailService) Get(ctx context.Context, id uuid.UUID) (*RetailOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRetailOrderResponse(o, nil), nil
}

// GetByBillNo returns a retail bill by bill number
func (s *RetailService) GetByBillNo(ctx context.Context, billNo int64) (*RetailOrderResponse, error) {
	o, err := s.orderRepo.FindByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	return toRetailOrderResponse(o, nil), nil
}

// List returns retail bills with pagination
func (s *RetailService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[RetailOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]RetailOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *toRetailOrderResponse(&orders[i], nil))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByCustomerPhone returns a customer's retail bills
func (s *RetailService) ListByCustomerPhone(ctx context.Context, phone string, filter shared.Filter) ([]RetailOrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomerPhone(ctx, phone, filter)
	if err != nil {
		return nil, err
	}
	items := make([]RetailOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *toRetailOrderResponse(&orders[i], nil))
	}
	return items, nil
}

// UpdateStatus sets the operator-chosen status
func (s *RetailService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*RetailOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.SetStatus(order.RetailStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return toRetailOrderResponse(o, nil), nil
}

// RecordPayment appends a partial payment to a bill
func (s *RetailService) RecordPayment(ctx context.Context, id uuid.UUID, req PaymentRequest) (*RetailOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rec, err := newPaymentRecord(req)
	if err != nil {
		return nil, err
	}
	if err := o.AddPayment(rec); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return toRetailOrderResponse(o, nil), nil
}

// MarkLineGiven flips the given flag on one line of a bill
func (s *RetailService) MarkLineGiven(ctx context.Context, id uuid.UUID, lineID uuid.UUID, given bool) (*RetailOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.MarkLineGiven(lineID, given); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return toRetailOrderResponse(o, nil), nil
}
