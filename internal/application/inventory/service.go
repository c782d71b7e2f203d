package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/inventory"
	"github.com/stitchpos/backend/internal/domain/order"
	"github.com/stitchpos/backend/internal/domain/shared"
	"github.com/stitchpos/backend/internal/domain/shared/valueobject"
)

// Service handles fabric and accessory stock operations. Every derived
// stock figure is computed on demand: the order set is scanned for
// consumption on each call, never cached, so the numbers always track
// orders as they stand now.
type Service struct {
	fabricRepo    inventory.FabricRepository
	accessoryRepo inventory.AccessoryRepository
	orderRepo     order.StitchingOrderRepository
	locks         *codeLocks
}

// NewService creates a new inventory Service
func NewService(
	fabricRepo inventory.FabricRepository,
	accessoryRepo inventory.AccessoryRepository,
	orderRepo order.StitchingOrderRepository,
) *Service {
	return &Service{
		fabricRepo:    fabricRepo,
		accessoryRepo: accessoryRepo,
		orderRepo:     orderRepo,
		locks:         newCodeLocks(),
	}
}

// fabricOrderUsed reconstructs the order-driven meters consumed for one fabric
func (s *Service) fabricOrderUsed(ctx context.Context, code string) (decimal.Decimal, error) {
	orders, err := s.orderRepo.FindAllForUsage(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.TotalUsed(inventory.ComputeFabricUsage(code, orders)), nil
}

// accessoryOrderUsed reconstructs the order-driven pieces consumed for one accessory
func (s *Service) accessoryOrderUsed(ctx context.Context, code string) (decimal.Decimal, error) {
	orders, err := s.orderRepo.FindAllForUsage(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.TotalUsed(inventory.ComputeAccessoryUsage(code, orders)), nil
}

// CreateFabric registers a new fabric line
func (s *Service) CreateFabric(ctx context.Context, req CreateFabricRequest) (*FabricResponse, error) {
	exists, err := s.fabricRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Fabric with this code already exists")
	}

	fabric, err := inventory.NewFabric(req.Code, req.Name, req.Material, req.Color, req.Supplier,
		valueobject.NewMoneyINR(req.RatePerMeter), req.OpeningStock)
	if err != nil {
		return nil, err
	}

	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, err
	}
	return toFabricResponse(fabric, decimal.Zero), nil
}

// GetFabric returns a fabric with its derived stock figures
func (s *Service) GetFabric(ctx context.Context, id uuid.UUID) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	used, err := s.fabricOrderUsed(ctx, fabric.Code)
	if err != nil {
		return nil, err
	}
	return toFabricResponse(fabric, used), nil
}

// GetFabricByCode returns a fabric by its human-assigned code
func (s *Service) GetFabricByCode(ctx context.Context, code string) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	used, err := s.fabricOrderUsed(ctx, fabric.Code)
	if err != nil {
		return nil, err
	}
	return toFabricResponse(fabric, used), nil
}

// ListFabrics returns fabrics with derived stock figures. The order set
// is scanned once and shared across all rows.
func (s *Service) ListFabrics(ctx context.Context, filter shared.Filter) (*shared.Paginated[FabricResponse], error) {
	fabrics, err := s.fabricRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.fabricRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindAllForUsage(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]FabricResponse, 0, len(fabrics))
	for i := range fabrics {
		used := inventory.TotalUsed(inventory.ComputeFabricUsage(fabrics[i].Code, orders))
		items = append(items, *toFabricResponse(&fabrics[i], used))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateFabricRate changes the rate charged per meter going forward
func (s *Service) UpdateFabricRate(ctx context.Context, id uuid.UUID, req UpdateRateRequest) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fabric.UpdateRate(valueobject.NewMoneyINR(req.Rate)); err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, err
	}
	used, err := s.fabricOrderUsed(ctx, fabric.Code)
	if err != nil {
		return nil, err
	}
	return toFabricResponse(fabric, used), nil
}

// AdjustFabric applies a manual stock adjustment to one fabric.
// Adjustments on the same fabric are serialized; the available figure
// the reduce guard sees is recomputed inside the critical section.
func (s *Service) AdjustFabric(ctx context.Context, code string, req AdjustmentRequest) (*FabricResponse, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	fabric, err := s.fabricRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	used, err := s.fabricOrderUsed(ctx, code)
	if err != nil {
		return nil, err
	}

	rec, err := newAdjustmentRecord(req)
	if err != nil {
		return nil, err
	}
	if err := fabric.Apply(rec, used); err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, err
	}
	return toFabricResponse(fabric, used), nil
}

// RollbackFabricAdjustment removes the adjustment at index, reversing
// its stock effect
func (s *Service) RollbackFabricAdjustment(ctx context.Context, code string, index int) (*FabricResponse, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	fabric, err := s.fabricRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	used, err := s.fabricOrderUsed(ctx, code)
	if err != nil {
		return nil, err
	}
	if _, err := fabric.Rollback(index, used); err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, err
	}
	return toFabricResponse(fabric, used), nil
}

// FabricUsageReport reconstructs the per-order consumption of one fabric
func (s *Service) FabricUsageReport(ctx context.Context, code string) (*UsageReportResponse, error) {
	fabric, err := s.fabricRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindAllForUsage(ctx)
	if err != nil {
		return nil, err
	}

	entries := inventory.ComputeFabricUsage(code, orders)
	return &UsageReportResponse{
		Code:      fabric.Code,
		Unit:      fabric.Unit,
		TotalUsed: inventory.TotalUsed(entries),
		Entries:   toUsageEntryResponses(entries),
	}, nil
}

// CreateAccessory registers a new accessory line
func (s *Service) CreateAccessory(ctx context.Context, req CreateAccessoryRequest) (*AccessoryResponse, error) {
	exists, err := s.accessoryRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Accessory with this code already exists")
	}

	accessory, err := inventory.NewAccessory(req.Code, req.Name, req.Category, req.Supplier,
		valueobject.NewMoneyINR(req.UnitPrice), req.OpeningStock)
	if err != nil {
		return nil, err
	}

	if err := s.accessoryRepo.Save(ctx, accessory); err != nil {
		return nil, err
	}
	return toAccessoryResponse(accessory, decimal.Zero), nil
}

// GetAccessory returns an accessory with its derived stock figures
func (s *Service) GetAccessory(ctx context.Context, id uuid.UUID) (*AccessoryResponse, error) {
	accessory, err := s.accessoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	used, err := s.accessoryOrderUsed(ctx, accessory.Code)
	if err != nil {
		return nil, err
	}
	return toAccessoryResponse(accessory, used), nil
}

// GetAccessoryByCode returns an accessory by its human-assigned code
func (s *Service) GetAccessoryByCode(ctx context.Context, code string) (*AccessoryResponse, error) {
	accessory, err := s.accessoryRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	used, err := s.accessoryOrderUsed(ctx, accessory.Code)
	if err != nil {
		return nil, err
	}
	return toAccessoryResponse(accessory, used), nil
}

// ListAccessories returns accessories with derived stock figures
func (s *Service) ListAccessories(ctx context.Context, filter shared.Filter) (*shared.Paginated[AccessoryResponse], error) {
	accessories, err := s.accessoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.accessoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindAllForUsage(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]AccessoryResponse, 0, len(accessories))
	for i := range accessories {
		used := inventory.TotalUsed(inventory.ComputeAccessoryUsage(accessories[i].Code, orders))
		items = append(items, *toAccessoryResponse(&accessories[i], used))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateAccessoryPrice changes the unit price charged going forward
func (s *Service) UpdateAccessoryPrice(ctx context.Context, id uuid.UUID, req UpdateRateRequest) (*AccessoryResponse, error) {
	accessory, err := s.accessoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := accessory.UpdatePrice(valueobject.NewMoneyINR(req.Rate)); err != nil {
		return nil, err
	}
	if err := s.accessoryRepo.Save(ctx, accessory); err != nil {
		return nil, err
	}
	used, err := s.accessoryOrderUsed(ctx, accessory.Code)
	if err != nil {
		return nil, err
	}
	return toAccessoryResponse(accessory, used), nil
}

// AdjustAccessory applies a manual stock adjustment to one accessory
func (s *Service) AdjustAccessory(ctx context.Context, code string, req AdjustmentRequest) (*AccessoryResponse, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	accessory, err := s.accessoryRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	used, err := s.accessoryOrderUsed(ctx, code)
	if err != nil {
		return nil, err
	}

	rec, err := newAdjustmentRecord(req)
	if err != nil {
		return nil, err
	}
	if err := accessory.Apply(rec, used); err != nil {
		return nil, err
	}
	if err := s.accessoryRepo.Save(ctx, accessory); err != nil {
		return nil, err
	}
	return toAccessoryResponse(accessory, used), nil
}

// RollbackAccessoryAdjustment removes the adjustment at index
func (s *Service) RollbackAccessoryAdjustment(ctx context.Context, code string, index int) (*AccessoryResponse, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	accessory, err := s.accessoryRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	used, err := s.accessoryOrderUsed(ctx, code)
	if err != nil {
		return nil, err
	}
	if _, err := accessory.Rollback(index, used); err != nil {
		return nil, err
	}
	if err := s.accessoryRepo.Save(ctx, accessory); err != nil {
		return nil, err
	}
	return toAccessoryResponse(accessory, used), nil
}

// AccessoryUsageReport reconstructs the per-order consumption of one accessory
func (s *Service) AccessoryUsageReport(ctx context.Context, code string) (*UsageReportResponse, error) {
	accessory, err := s.accessoryRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindAllForUsage(ctx)
	if err != nil {
		return nil, err
	}

	entries := inventory.ComputeAccessoryUsage(code, orders)
	return &UsageReportResponse{
		Code:      accessory.Code,
		Unit:      accessory.Unit,
		TotalUsed: inventory.TotalUsed(entries),
		Entries:   toUsageEntryResponses(entries),
	}, nil
}

func newAdjustmentRecord(req AdjustmentRequest) (inventory.AdjustmentRecord, error) {
	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}
	return inventory.NewAdjustmentRecord(inventory.AdjustmentType(req.Type), req.Quantity,
		req.Reason, date, req.Amount, req.Notes)
}
