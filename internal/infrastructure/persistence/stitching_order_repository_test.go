package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStitchingOrderRepository(t *testing.T) (*GormStitchingOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStitchingOrderRepository(gormDB), mock, mockDB
}

func stitchingOrderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"order_no", "customer_name", "customer_phone", "order_date", "promise_date",
		"items", "total_amount", "amount_paid", "payments", "status", "remarks",
	})
}

func TestGormStitchingOrderRepository_GenerateOrderNo(t *testing.T) {
	t.Run("takes max existing plus one", func(t *testing.T) {
		repo, mock, mockDB := newMockStitchingOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "order_no" FROM "stitching_orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"order_no"}).
				AddRow("ST-001").
				AddRow("ST-003"))

		orderNo, err := repo.GenerateOrderNo(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ST-004", orderNo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts at ST-001 on empty table", func(t *testing.T) {
		repo, mock, mockDB := newMockStitchingOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "order_no" FROM "stitching_orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"order_no"}))

		orderNo, err := repo.GenerateOrderNo(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ST-001", orderNo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStitchingOrderRepository_FindByOrderNo(t *testing.T) {
	t.Run("finds existing order and decodes jsonb columns", func(t *testing.T) {
		repo, mock, mockDB := newMockStitchingOrderRepository(t)
		defer mockDB.Close()

		now := time.Now()
		items := `[{"itemType":"blouse","quantity":1,"stitchingPrice":"500","asterRequired":false,"asterCharge":"0"}]`
		payments := `[{"date":"2026-03-05T10:00:00Z","amount":"200","method":"cash"}]`

		rows := stitchingOrderRows().AddRow(
			"6a2fdc5e-9db5-4bd0-9b36-29c4d9769dc9", now, now, 1,
			"ST-042", "Meera", "9876543210", now, now.Add(7*24*time.Hour),
			[]byte(items), decimal.NewFromInt(500), decimal.NewFromInt(200), []byte(payments),
			"pending", "",
		)

		mock.ExpectQuery(`SELECT \* FROM "stitching_orders" WHERE order_no = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ST-042", 1).
			WillReturnRows(rows)

		o, err := repo.FindByOrderNo(context.Background(), "ST-042")

		require.NoError(t, err)
		assert.Equal(t, "ST-042", o.OrderNo)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "blouse", o.Items[0].ItemType)
		require.Len(t, o.Payments, 1)
		assert.True(t, o.AmountPaid.Equal(decimal.NewFromInt(200)))
		assert.True(t, o.Due().Equal(decimal.NewFromInt(300)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing order to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockStitchingOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "stitching_orders" WHERE order_no = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ST-999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		o, err := repo.FindByOrderNo(context.Background(), "ST-999")

		assert.Nil(t, o)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStitchingOrderRepository_FindAllForUsage(t *testing.T) {
	t.Run("reads every order without pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockStitchingOrderRepository(t)
		defer mockDB.Close()

		now := time.Now()
		rows := stitchingOrderRows().
			AddRow("6a2fdc5e-9db5-4bd0-9b36-29c4d9769dc9", now, now, 1,
				"ST-001", "Meera", "9876543210", now, now,
				[]byte(`[]`), decimal.Zero, decimal.Zero, []byte(`[]`), "delivered", "").
			AddRow("7b3fdc5e-9db5-4bd0-9b36-29c4d9769dca", now, now, 1,
				"ST-002", "Asha", "9123456780", now, now,
				[]byte(`[]`), decimal.Zero, decimal.Zero, []byte(`[]`), "pending", "")

		mock.ExpectQuery(`SELECT \* FROM "stitching_orders"`).
			WillReturnRows(rows)

		orders, err := repo.FindAllForUsage(context.Background())

		require.NoError(t, err)
		assert.Len(t, orders, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
