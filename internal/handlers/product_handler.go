package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"jewelbook/internal/ledger"
	"jewelbook/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- GET: List all products ---
func GetProducts(c *gin.Context) {
	var products []models.Product
	if err := tenantDB(c).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- POST: Add a new product ---
func AddProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	product.ID = 0

	db := tenantDB(c)
	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	// No barcode supplied: the record id doubles as one, so every piece is
	// scannable from day one.
	if product.Barcode == "" {
		product.Barcode = strconv.FormatUint(uint64(product.ID), 10)
		if err := db.Model(&product).Update("barcode", product.Barcode).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign barcode"})
			return
		}
	}

	c.JSON(http.StatusCreated, product)
}

// --- GET: Look up a product by barcode (scanner input) ---
func ScanProduct(c *gin.Context) {
	var product models.Product
	err := tenantDB(c).Where("barcode = ?", c.Param("barcode")).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- PUT: Update product details ---
func UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	db := tenantDB(c)
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	// Partial update: only the fields that were sent.
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	delete(updateData, "id")

	if err := db.Model(&product).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE: Remove a product ---
// Ledger lines keep their own price/total snapshots, so deleting a product
// never changes already-settled accounts.
func DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	res := tenantDB(c).Delete(&models.Product{}, id)
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete product. It might be linked to past sales."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

type StockAdjustRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Note   string `json:"note"`
}

// --- PUT: /api/products/:id/stock-in ---
func StockIn(c *gin.Context) {
	adjustStock(c, 1)
}

// --- PUT: /api/products/:id/stock-out ---
func StockOut(c *gin.Context) {
	adjustStock(c, -1)
}

func adjustStock(c *gin.Context, sign int) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number"})
		return
	}

	product, err := ledger.AdjustStock(tenantDB(c), uint(id), sign*req.Amount, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- GET: /api/products/:id/movements ---
// Audit trail of manual adjustments for one product.
func GetStockMovements(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var movements []models.StockMovement
	err = tenantDB(c).Where("product_id = ?", id).Order("date desc").Find(&movements).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock movements"})
		return
	}
	c.JSON(http.StatusOK, movements)
}
