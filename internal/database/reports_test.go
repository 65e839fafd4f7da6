package database_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"jewelbook/internal/database"
	"jewelbook/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.MigrateTenant(db))
	return db
}

func seedSale(t *testing.T, db *gorm.DB, customerID uint, total string, at time.Time) {
	t.Helper()
	sale := models.Sale{
		CustomerID:  customerID,
		TotalAmount: decimal.RequireFromString(total),
	}
	require.NoError(t, db.Create(&sale).Error)
	require.NoError(t, db.Model(&models.Sale{}).Where("id = ?", sale.ID).
		UpdateColumn("created_at", at).Error)
}

func TestRevenueByDay_BucketsInShopTimezone(t *testing.T) {
	db := newTestDB(t)
	customer := models.Customer{Name: "Asha"}
	require.NoError(t, db.Create(&customer).Error)

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC on March 1st is already March 2nd in Kolkata (UTC+5:30).
	seedSale(t, db, customer.ID, "100", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	seedSale(t, db, customer.ID, "250.50", time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC))
	seedSale(t, db, customer.ID, "49.50", time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC))

	rows, err := database.RevenueByDay(db,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		loc)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-01", rows[0].Period)
	assert.Equal(t, "100.00", rows[0].Total)
	assert.Equal(t, "2026-03-02", rows[1].Period)
	assert.Equal(t, "300.00", rows[1].Total)
}

func TestRevenueByMonth(t *testing.T) {
	db := newTestDB(t)
	customer := models.Customer{Name: "Asha"}
	require.NoError(t, db.Create(&customer).Error)

	seedSale(t, db, customer.ID, "1000", time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	seedSale(t, db, customer.ID, "500", time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC))
	seedSale(t, db, customer.ID, "750", time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC))

	rows, err := database.RevenueByMonth(db,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.UTC)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "2026-01", rows[0].Period)
	assert.Equal(t, "1500.00", rows[0].Total)
	assert.Equal(t, "2026-02", rows[1].Period)
	assert.Equal(t, "750.00", rows[1].Total)
}

func TestGetSalesReport_EmptyRangeIsZero(t *testing.T) {
	db := newTestDB(t)

	result, err := database.GetSalesReport(db,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, result.TotalRevenue)
	assert.Zero(t, result.TotalCount)
}

func TestGetTopProducts_RanksByRevenue(t *testing.T) {
	db := newTestDB(t)
	customer := models.Customer{Name: "Asha"}
	require.NoError(t, db.Create(&customer).Error)

	ring := models.Product{Name: "Gold Ring", Quantity: 10, Price: decimal.RequireFromString("100")}
	chain := models.Product{Name: "Silver Chain", Quantity: 10, Price: decimal.RequireFromString("40")}
	require.NoError(t, db.Create(&ring).Error)
	require.NoError(t, db.Create(&chain).Error)

	sale := models.Sale{
		CustomerID:  customer.ID,
		TotalAmount: decimal.RequireFromString("380"),
		Items: []models.SaleItem{
			{ProductID: ring.ID, Quantity: 3, PriceAtSale: ring.Price,
				LineTotal: decimal.RequireFromString("300")},
			{ProductID: chain.ID, Quantity: 2, PriceAtSale: chain.Price,
				LineTotal: decimal.RequireFromString("80")},
		},
	}
	require.NoError(t, db.Create(&sale).Error)

	rows, err := database.GetTopProducts(db, 5)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Gold Ring", rows[0].ProductName)
	assert.Equal(t, 3, rows[0].Quantity)
	assert.InDelta(t, 300, rows[0].Revenue, 0.001)
	assert.Equal(t, "Silver Chain", rows[1].ProductName)
}

func TestOutstandingBalances_MostIndebtedFirst(t *testing.T) {
	db := newTestDB(t)

	small := models.Customer{Name: "Meera"}
	big := models.Customer{Name: "Ravi"}
	require.NoError(t, db.Create(&small).Error)
	require.NoError(t, db.Create(&big).Error)

	for _, led := range []*models.Ledger{
		{CustomerID: small.ID, Total: decimal.RequireFromString("200"),
			PaidAmount: decimal.RequireFromString("150")},
		{CustomerID: big.ID, Total: decimal.RequireFromString("1000"),
			PaidAmount: decimal.Zero},
	} {
		led.Recalculate()
		require.NoError(t, db.Create(led).Error)
	}

	rows, err := database.OutstandingBalances(db)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Ravi", rows[0].Customer.Name)
	assert.Equal(t, "1000.00", rows[0].TotalUnpaid)
	assert.Equal(t, models.StatusUnpaid, rows[0].Status)
	assert.Equal(t, "Meera", rows[1].Customer.Name)
	assert.Equal(t, "50.00", rows[1].TotalUnpaid)
	assert.Equal(t, models.StatusPartial, rows[1].Status)
}
