package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stitchpos/backend/internal/domain/inventory"
	"github.com/stitchpos/backend/internal/domain/order"
	"github.com/stitchpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StitchingService handles custom tailoring order operations.
//
// Submission is a saga with one authoritative write and best-effort
// follow-ups: once the order row is persisted the submission has
// succeeded, and each consumption stamp that fails afterwards is
// reported back by name rather than rolling anything back. Consumption
// itself is never written into the inventory ledgers; the usage
// aggregator reconstructs it from the order set on every read, so a
// missed stamp costs a freshness marker, not stock accuracy.
type StitchingService struct {
	orderRepo     order.StitchingOrderRepository
	fabricRepo    inventory.FabricRepository
	accessoryRepo inventory.AccessoryRepository
	logger        *zap.Logger
}

// NewStitchingService creates a new StitchingService
func NewStitchingService(
	orderRepo order.StitchingOrderRepository,
	fabricRepo inventory.FabricRepository,
	accessoryRepo inventory.AccessoryRepository,
	logger *zap.Logger,
) *StitchingService {
	return &StitchingService{
		orderRepo:     orderRepo,
		fabricRepo:    fabricRepo,
		accessoryRepo: accessoryRepo,
		logger:        logger,
	}
}

// buildItems resolves item requests into priced order items, fetching
// rate snapshots from the inventory records where the request omits them
func (s *StitchingService) buildItems(ctx context.Context, reqs []OrderItemRequest) (order.OrderItems, error) {
	items := make(order.OrderItems, 0, len(reqs))
	for _, req := range reqs {
		item, err := order.NewOrderItem(req.ItemType, req.Quantity, req.StitchingPrice,
			req.AsterRequired, req.AsterCharge)
		if err != nil {
			return nil, err
		}
		item.Measurements = req.Measurements
		item.Notes = req.Notes

		if req.Fabric != nil {
			usage, err := s.buildFabricUsage(ctx, *req.Fabric)
			if err != nil {
				return nil, err
			}
			item.SetFabric(usage)
		}

		for _, accReq := range req.Accessories {
			usage, err := s.buildAccessoryUsage(ctx, accReq)
			if err != nil {
				return nil, err
			}
			item.AddAccessory(usage)
		}

		for _, chargeReq := range req.AdditionalCharges {
			charge, err := order.NewAdditionalCharge(chargeReq.Label, chargeReq.Amount)
			if err != nil {
				return nil, err
			}
			item.AddCharge(charge)
		}

		items = append(items, item)
	}
	return items, nil
}

func (s *StitchingService) buildFabricUsage(ctx context.Context, req FabricUsageRequest) (order.FabricUsage, error) {
	source := order.FabricSource(req.Source)
	if source == order.FabricSourceCustomer {
		return order.NewFabricUsage("", source, req.MetersUsed, decimalOrZero(req.RatePerMeter))
	}

	fabric, err := s.fabricRepo.FindByCode(ctx, req.FabricCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return order.FabricUsage{}, shared.NewDomainError("FABRIC_NOT_FOUND",
				fmt.Sprintf("Fabric %q is not in the inventory", req.FabricCode))
		}
		return order.FabricUsage{}, err
	}

	rate := fabric.RatePerMeter
	if req.RatePerMeter != nil {
		rate = *req.RatePerMeter
	}
	return order.NewFabricUsage(fabric.Code, source, req.MetersUsed, rate)
}

func (s *StitchingService) buildAccessoryUsage(ctx context.Context, req AccessoryUsageRequest) (order.AccessoryUsage, error) {
	accessory, err := s.accessoryRepo.FindByCode(ctx, req.AccessoryCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return order.AccessoryUsage{}, shared.NewDomainError("ACCESSORY_NOT_FOUND",
				fmt.Sprintf("Accessory %q is not in the inventory", req.AccessoryCode))
		}
		return order.AccessoryUsage{}, err
	}

	price := accessory.UnitPrice
	if req.UnitPrice != nil {
		price = *req.UnitPrice
	}
	return order.NewAccessoryUsage(accessory.Code, accessory.Name, req.QuantityUsed, price, req.BilledToCustomer)
}

// Submit validates, numbers and persists a new stitching order, then
// runs the follow-up consumption stamps
func (s *StitchingService) Submit(ctx context.Context, req SubmitStitchingOrderRequest) (*StitchingOrderResponse, error) {
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	orderNo, err := s.orderRepo.GenerateOrderNo(ctx)
	if err != nil {
		return nil, err
	}

	orderDate := time.Time{}
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	o, err := order.NewStitchingOrder(orderNo, req.CustomerName, req.CustomerPhone,
		orderDate, req.PromiseDate, items, req.Remarks)
	if err != nil {
		return nil, err
	}

	if req.ExpectedTotal != nil {
		if err := o.VerifyTotal(*req.ExpectedTotal); err != nil {
			return nil, err
		}
	}

	if req.Advance != nil {
		rec, err := newPaymentRecord(*req.Advance)
		if err != nil {
			return nil, err
		}
		if err := o.AddPayment(rec); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	failures := s.stampConsumption(ctx, o)
	return toStitchingOrderResponse(o, failures), nil
}

// stampConsumption touches every inventory record the order consumes.
// Each stamp is independent; a failure is logged, added to the result
// and the rest still run.
func (s *StitchingService) stampConsumption(ctx context.Context, o *order.StitchingOrder) []string {
	var failures []string
	now := time.Now()

	for _, code := range o.FabricCodes() {
		if err := s.stampFabric(ctx, code, now); err != nil {
			s.logger.Warn("fabric consumption stamp failed",
				zap.String("order_no", o.OrderNo),
				zap.String("fabric_code", code),
				zap.Error(err))
			failures = append(failures, fmt.Sprintf("fabric %s: %v", code, err))
		}
	}
	for _, code := range o.AccessoryCodes() {
		if err := s.stampAccessory(ctx, code, now); err != nil {
			s.logger.Warn("accessory consumption stamp failed",
				zap.String("order_no", o.OrderNo),
				zap.String("accessory_code", code),
				zap.Error(err))
			failures = append(failures, fmt.Sprintf("accessory %s: %v", code, err))
		}
	}
	return failures
}

func (s *StitchingService) stampFabric(ctx context.Context, code string, at time.Time) error {
	fabric, err := s.fabricRepo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	fabric.TouchConsumption(at)
	return s.fabricRepo.Save(ctx, fabric)
}

func (s *StitchingService) stampAccessory(ctx context.Context, code string, at time.Time) error {
	accessory, err := s.accessoryRepo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	accessory.TouchConsumption(at)
	return s.accessoryRepo.Save(ctx, accessory)
}

// Get returns a stitching order by ID
func (s *StitchingService) Get(ctx context.Context, id uuid.UUID) (*StitchingOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStitchingOrderResponse(o, nil), nil
}

// GetByOrderNo returns a stitching order by its human-facing number
func (s *StitchingService) GetByOrderNo(ctx context.Context, orderNo string) (*StitchingOrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	return toStitchingOrderResponse(o, nil), nil
}

// List returns stitching orders with pagination
func (s *StitchingService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[StitchingOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StitchingOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *toStitchingOrderResponse(&orders[i], nil))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByStatus returns stitching orders in a given status
func (s *StitchingService) ListByStatus(ctx context.Context, status string, filter shared.Filter) (*shared.Paginated[StitchingOrderResponse], error) {
	st := order.StitchingStatus(status)
	if !st.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown stitching status %q", status))
	}
	orders, err := s.orderRepo.FindByStatus(ctx, st, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StitchingOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *toStitchingOrderResponse(&orders[i], nil))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByCustomerPhone returns a customer's stitching orders
func (s *StitchingService) ListByCustomerPhone(ctx context.Context, phone string, filter shared.Filter) ([]StitchingOrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomerPhone(ctx, phone, filter)
	if err != nil {
		return nil, err
	}
	items := make([]StitchingOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *toStitchingOrderResponse(&orders[i], nil))
	}
	return items, nil
}

// ReplaceItems swaps the item list of an existing order. Past
// consumption follows automatically: usage reports scan the order set,
// so the edited quantities take effect on the next read.
func (s *StitchingService) ReplaceItems(ctx context.Context, id uuid.UUID, req ReplaceItemsRequest) (*StitchingOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if err := o.ReplaceItems(items); err != nil {
		return nil, err
	}
	if req.ExpectedTotal != nil {
		if err := o.VerifyTotal(*req.ExpectedTotal); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	failures := s.stampConsumption(ctx, o)
	return toStitchingOrderResponse(o, failures), nil
}

// UpdateStatus sets the operator-chosen status
func (s *StitchingService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*StitchingOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.SetStatus(order.StitchingStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return toStitchingOrderResponse(o, nil), nil
}

// RecordPayment appends a partial payment to an order
func (s *StitchingService) RecordPayment(ctx context.Context, id uuid.UUID, req PaymentRequest) (*StitchingOrderResponse, error) {
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
	return toStitchingOrderResponse(o, nil), nil
}
