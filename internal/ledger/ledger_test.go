package ledger_test

import (
	"fmt"
	"strings"
	"testing"

	"jewelbook/internal/database"
	"jewelbook/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory tenant database. A single pooled
// connection keeps SQLite's locking out of the way and makes transaction
// interleaving deterministic.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.MigrateTenant(db))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Contact: "9999999999"}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name string, quantity int, price string) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Category: "Ring",
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
