package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/catalog"
	"github.com/stitchpos/backend/internal/domain/order"
	"github.com/stitchpos/backend/internal/domain/shared"
	"github.com/stitchpos/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRetailOrderRepository is a mock implementation of RetailOrderRepository
type MockRetailOrderRepository struct {
	mock.Mock
}

func (m *MockRetailOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.RetailOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RetailOrder), args.Error(1)
}

func (m *MockRetailOrderRepository) FindByBillNo(ctx context.Context, billNo int64) (*order.RetailOrder, error) {
	args := m.Called(ctx, billNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RetailOrder), args.Error(1)
}

func (m *MockRetailOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.RetailOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.RetailOrder), args.Error(1)
}

func (m *MockRetailOrderRepository) FindByCustomerPhone(ctx context.Context, phone string, filter shared.Filter) ([]order.RetailOrder, error) {
	args := m.Called(ctx, phone, filter)
	return args.Get(0).([]order.RetailOrder), args.Error(1)
}

func (m *MockRetailOrderRepository) Save(ctx context.Context, o *order.RetailOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRetailOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRetailOrderRepository) GenerateBillNo(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindUnsold(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func testCatalogItem(t *testing.T, code string, price int64) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(code, "Banarasi saree", "saree", "free",
		valueobject.NewMoneyINR(decimal.NewFromInt(400)),
		valueobject.NewMoneyINR(decimal.NewFromInt(price)))
	require.NoError(t, err)
	return item
}

func TestRetailService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("completed when paid in full and handed over", func(t *testing.T) {
		item := testCatalogItem(t, "ITM-001", 650)
		orderRepo := new(MockRetailOrderRepository)
		itemRepo := new(MockItemRepository)
		itemRepo.On("FindByCode", ctx, "ITM-001").Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		orderRepo.On("GenerateBillNo", ctx).Return(int64(42), nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*order.RetailOrder")).Return(nil)
		svc := NewRetailService(orderRepo, itemRepo, zap.NewNop())

		resp, err := svc.Submit(ctx, SubmitRetailOrderRequest{
			CustomerName:  "Asha",
			CustomerPhone: "9123456780",
			Lines:         []RetailLineRequest{{ItemCode: "ITM-001", Given: true}},
			Payment:       &PaymentRequest{Amount: decimal.NewFromInt(650), Method: "cash"},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.BillNo)
		assert.Equal(t, "650", resp.TotalAmount.String())
		assert.Equal(t, "completed", resp.Status)
		assert.True(t, item.Sold)
		require.NotNil(t, item.SoldBillNo)
		assert.Equal(t, int64(42), *item.SoldBillNo)
	})

	t.Run("pending when partially paid", func(t *testing.T) {
		item := testCatalogItem(t, "ITM-001", 650)
		orderRepo := new(MockRetailOrderRepository)
		itemRepo := new(MockItemRepository)
		itemRepo.On("FindByCode", ctx, "ITM-001").Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		orderRepo.On("GenerateBillNo", ctx).Return(int64(43), nil)
		orderRepo.On("Save", ctx, mock.Anything).Return(nil)
		svc := NewRetailService(orderRepo, itemRepo, zap.NewNop())

		resp, err := svc.Submit(ctx, SubmitRetailOrderRequest{
			CustomerName:  "Asha",
			CustomerPhone: "9123456780",
			Lines:         []RetailLineRequest{{ItemCode: "ITM-001", Given: true}},
			Payment:       &PaymentRequest{Amount: decimal.NewFromInt(300), Method: "upi"},
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "350", resp.AmountDue.String())
	})

	t.Run("haggled price overrides the catalogue price", func(t *testing.T) {
		item := testCatalogItem(t, "ITM-001", 650)
		orderRepo := new(MockRetailOrderRepository)
		itemRepo := new(MockItemRepository)
		itemRepo.On("FindByCode", ctx, "ITM-001").Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		orderRepo.On("GenerateBillNo", ctx).Return(int64(44), nil)
		orderRepo.On("Save", ctx, mock.Anything).Return(nil)
		svc := NewRetailService(orderRepo, itemRepo, zap.NewNop())

		haggled := decimal.NewFromInt(600)
		resp, err := svc.Submit(ctx, SubmitRetailOrderRequest{
			CustomerName:  "Asha",
			CustomerPhone: "9123456780",
			Lines:         []RetailLineRequest{{ItemCode: "ITM-001", SellingPrice: &haggled, Given: true}},
		})

		require.NoError(t, err)
		assert.Equal(t, "600", resp.TotalAmount.String())
	})

	t.Run("same item code on two lines rejects the bill", func(t *testing.T) {
		item := testCatalogItem(t, "ITM-001", 650)
		orderRepo := new(MockRetailOrderRepository)
		itemRepo := new(MockItemRepository)
		itemRepo.On("FindByCode", ctx, "ITM-001").Return(item, nil)
		svc := NewRetailService(orderRepo, itemRepo, zap.NewNop())

		_, err := svc.Submit(ctx, SubmitRetailOrderRequest{
			CustomerName:  "Asha",
			CustomerPhone: "9123456780",
			Lines: []RetailLineRequest{
				{ItemCode: "ITM-001", Given: true},
				{ItemCode: "ITM-001", Given: true},
			},
		})

		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "DUPLICATE_ITEM_CODE", derr.Code)
		orderRepo.AssertNotCalled(t, "GenerateBillNo", ctx)
		orderRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
		assert.False(t, item.Sold)
	})

	t.Run("sold item rejects the submission", func(t *testing.T) {
		item := testCatalogItem(t, "ITM-001", 650)
		require.NoError(t, item.MarkSold(7, time.Now()))
		orderRepo := new(MockRetailOrderRepository)
		itemRepo := new(MockItemRepository)
		itemRepo.On("FindByCode", ctx, "ITM-001").Return(item, nil)
		svc := NewRetailService(orderRepo, itemRepo, zap.NewNop())

		_, err := svc.Submit(ctx, SubmitRetailOrderRequest{
			CustomerName:  "Asha",
			CustomerPhone: "9123456780",
			Lines:         []RetailLineRequest{{ItemCode: "ITM-001", Given: true}},
		})

		assert.ErrorIs(t, err, shared.ErrItemAlreadySold)
		orderRepo.AssertNotCalled(t, "GenerateBillNo", ctx)
	})

	t.Run("failed sold stamp does not fail the submission", func(t *testing.T) {
		good := testCatalogItem(t, "ITM-001", 650)
		flaky := testCatalogItem(t, "ITM-002", 350)
		orderRepo := new(MockRetailOrderRepository)
		itemRepo := new(MockItemRepository)
		itemRepo.On("FindByCode", ctx, "ITM-001").Return(good, nil)
		itemRepo.On("FindByCode", ctx, "ITM-002").Return(flaky, nil)
		itemRepo.On("Save", ctx, good).Return(nil)
		itemRepo.On("Save", ctx, flaky).Return(shared.NewDomainError("DB_DOWN", "connection lost"))
		orderRepo.On("GenerateBillNo", ctx).Return(int64(45), nil)
		orderRepo.On("Save", ctx, mock.Anything).Return(nil)
		svc := NewRetailService(orderRepo, itemRepo, zap.NewNop())

		resp, err := svc.Submit(ctx, SubmitRetailOrderRequest{
			CustomerName:  "Asha",
			CustomerPhone: "9123456780",
			Lines: []RetailLineRequest{
				{ItemCode: "ITM-001", Given: true},
				{ItemCode: "ITM-002", Given: true},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.PartialFailures, 1)
		assert.Contains(t, resp.PartialFailures[0], "ITM-002")
	})
}

func TestRetailService_MarkLineGiven(t *testing.T) {
	ctx := context.Background()

	line, err := order.NewRetailLine("ITM-001", "saree", decimal.NewFromInt(650), false)
	require.NoError(t, err)
	o, err := order.NewRetailOrder(42, "Asha", "9123456780", time.Now(), order.RetailLines{line}, "")
	require.NoError(t, err)

	orderRepo := new(MockRetailOrderRepository)
	orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
	orderRepo.On("Save", ctx, o).Return(nil)
	svc := NewRetailService(orderRepo, new(MockItemRepository), zap.NewNop())

	resp, err := svc.MarkLineGiven(ctx, o.ID, line.ID, true)

	require.NoError(t, err)
	assert.True(t, resp.Lines[0].Given)
	// handover after creation does not re-derive the status
	assert.Equal(t, "pending", resp.Status)
}

func TestRetailService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	line, err := order.NewRetailLine("ITM-001", "saree", decimal.NewFromInt(650), true)
	require.NoError(t, err)
	o, err := order.NewRetailOrder(42, "Asha", "9123456780", time.Now(), order.RetailLines{line}, "")
	require.NoError(t, err)

	orderRepo := new(MockRetailOrderRepository)
	orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
	orderRepo.On("Save", ctx, o).Return(nil)
	svc := NewRetailService(orderRepo, new(MockItemRepository), zap.NewNop())

	resp, err := svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "stuck"})

	require.NoError(t, err)
	assert.Equal(t, "stuck", resp.Status)

	_, err = svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "shipped"})
	require.Error(t, err)
}
