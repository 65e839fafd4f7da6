package handlers

import (
	"net/http"

	"jewelbook/internal/ledger"
	"jewelbook/internal/models"

	"github.com/gin-gonic/gin"
)

// SaleRequest is the basket the counter sends at checkout.
type SaleRequest struct {
	CustomerID uint                   `json:"customer_id" binding:"required"`
	Items      []ledger.SaleItemInput `json:"items" binding:"required"`
}

// --- POST: /api/sales ---
// Records the sale, decrements stock and folds the result into the
// customer's ledger in one atomic unit. On failure nothing is committed and
// the request is safe to retry.
func RecordSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sale, led, err := ledger.RecordSale(tenantDB(c), req.CustomerID, req.Items)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sale":   sale,
		"ledger": led,
	})
}

// --- GET: /api/sales ---
func GetSales(c *gin.Context) {
	var sales []models.Sale
	err := tenantDB(c).Preload("Items").Preload("Items.Product").Preload("Customer").
		Order("created_at desc").
		Find(&sales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}
