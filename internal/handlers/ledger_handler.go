package handlers

import (
	"net/http"
	"strconv"

	"jewelbook/internal/database"
	"jewelbook/internal/ledger"
	"jewelbook/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// --- GET: /api/ledger ---
func GetLedgers(c *gin.Context) {
	var ledgers []models.Ledger
	err := tenantDB(c).Preload("Customer").Preload("Items").Preload("Items.Product").
		Preload("Sales").Preload("Payments").
		Order("created_at desc").
		Find(&ledgers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ledgers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ledgers": ledgers})
}

// --- GET: /api/ledger/group-by-customer ---
func GetLedgersGroupedByCustomer(c *gin.Context) {
	rows, err := database.OutstandingBalances(tenantDB(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch grouped ledger"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"grouped": rows})
}

type SyncLedgerRequest struct {
	SaleID uint `json:"sale_id" binding:"required"`
}

// --- POST: /api/ledger/sync ---
// Explicitly folds an existing sale into its customer's ledger. Re-syncing
// an already-settled sale is a no-op.
func SyncLedger(c *gin.Context) {
	var req SyncLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sale_id is required"})
		return
	}

	led, err := ledger.SyncSale(tenantDB(c), req.SaleID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ledger": led})
}

type PayRequest struct {
	Method string `json:"method"`
}

// --- PATCH: /api/ledger/:id/pay ---
func MarkLedgerPaid(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ledger ID"})
		return
	}

	var req PayRequest
	_ = c.ShouldBindJSON(&req) // body is optional, method defaults to cash

	led, err := ledger.MarkPaid(tenantDB(c), uint(id), req.Method)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ledger": led})
}

type PartialPayRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method"`
}

// --- PATCH: /api/ledger/:id/partial-pay ---
func PartialPayLedger(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ledger ID"})
		return
	}

	var req PartialPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount is required"})
		return
	}

	led, err := ledger.PartialPay(tenantDB(c), uint(id), req.Amount, req.Method)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ledger": led})
}
