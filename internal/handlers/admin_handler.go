package handlers

import (
	"net/http"
	"strconv"

	"jewelbook/internal/database"
	"jewelbook/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// --- GET: /api/admin/vendors ---
func ListVendors(c *gin.Context) {
	var vendors []models.Vendor
	if err := database.Auth.Where("role = ?", "vendor").Find(&vendors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendors"})
		return
	}
	c.JSON(http.StatusOK, vendors)
}

type CreateVendorRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	DBName     string `json:"db_name" binding:"required"`
	BrandFull  string `json:"brand_full"`
	BrandShort string `json:"brand_short"`
	Address    string `json:"address"`
	Contact    string `json:"contact"`
}

// --- POST: /api/admin/vendors ---
// Provision a new shop: an auth record pointing at its own tenant database.
func CreateVendor(c *gin.Context) {
	var input CreateVendorRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var existing models.Vendor
	if err := database.Auth.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	vendor := models.Vendor{
		Username:     input.Username,
		PasswordHash: string(hashed),
		Role:         "vendor",
		DBName:       input.DBName,
		BrandFull:    input.BrandFull,
		BrandShort:   input.BrandShort,
		Address:      input.Address,
		Contact:      input.Contact,
	}
	if err := database.Auth.Create(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vendor"})
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

// --- GET: /api/admin/signup-requests ---
func ListApplications(c *gin.Context) {
	var apps []models.Application
	if err := database.Auth.Order("created_at desc").Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}
	c.JSON(http.StatusOK, apps)
}

// --- PATCH: /api/admin/signup-requests/:id/review ---
func ReviewApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	res := database.Auth.Model(&models.Application{}).Where("id = ?", id).
		Update("is_reviewed", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application marked as reviewed"})
}
