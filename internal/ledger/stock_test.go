package ledger_test

import (
	"testing"

	"jewelbook/internal/ledger"
	"jewelbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStock_InRecordsMovement(t *testing.T) {
	db := newTestDB(t)
	ring := seedProduct(t, db, "Gold Ring", 2, "100")

	product, err := ledger.AdjustStock(db, ring.ID, 5, "from goldsmith")
	require.NoError(t, err)
	assert.Equal(t, 7, product.Quantity)

	var movements []models.StockMovement
	require.NoError(t, db.Where("product_id = ?", ring.ID).Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, "in", movements[0].Type)
	assert.Equal(t, 5, movements[0].Quantity)
	assert.Equal(t, "from goldsmith", movements[0].Note)
	assert.False(t, movements[0].Date.IsZero())
}

func TestAdjustStock_OutRecordsMovement(t *testing.T) {
	db := newTestDB(t)
	ring := seedProduct(t, db, "Gold Ring", 5, "100")

	product, err := ledger.AdjustStock(db, ring.ID, -3, "melted down")
	require.NoError(t, err)
	assert.Equal(t, 2, product.Quantity)

	var movements []models.StockMovement
	require.NoError(t, db.Where("product_id = ?", ring.ID).Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, "out", movements[0].Type)
	assert.Equal(t, 3, movements[0].Quantity, "movement quantity is recorded unsigned")
}

func TestAdjustStock_CannotGoNegative(t *testing.T) {
	db := newTestDB(t)
	ring := seedProduct(t, db, "Gold Ring", 2, "100")

	_, err := ledger.AdjustStock(db, ring.ID, -5, "")
	require.ErrorIs(t, err, ledger.ErrInsufficientStock)

	// Adjustment rolled back completely: quantity kept, no audit entry.
	var after models.Product
	require.NoError(t, db.First(&after, ring.ID).Error)
	assert.Equal(t, 2, after.Quantity)

	var count int64
	db.Model(&models.StockMovement{}).Count(&count)
	assert.Zero(t, count)
}

func TestAdjustStock_Validation(t *testing.T) {
	db := newTestDB(t)
	ring := seedProduct(t, db, "Gold Ring", 2, "100")

	_, err := ledger.AdjustStock(db, ring.ID, 0, "")
	require.ErrorIs(t, err, ledger.ErrInvalidQuantity)

	_, err = ledger.AdjustStock(db, 999, 5, "")
	require.ErrorIs(t, err, ledger.ErrProductNotFound)
}
