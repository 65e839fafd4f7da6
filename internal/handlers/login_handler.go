package handlers

import (
	"net/http"

	"jewelbook/internal/auth"
	"jewelbook/internal/database"
	"jewelbook/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var vendor models.Vendor
	if err := database.Auth.Where("username = ?", input.Username).First(&vendor).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(vendor.ID, vendor.Username, vendor.Role,
		vendor.DBName, vendor.BrandFull, vendor.BrandShort)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"username":    vendor.Username,
		"role":        vendor.Role,
		"db_name":     vendor.DBName,
		"brand_full":  vendor.BrandFull,
		"brand_short": vendor.BrandShort,
		"address":     vendor.Address,
		"contact":     vendor.Contact,
	})
}

// SubmitApplication takes a signup request from a prospective shop. An admin
// reviews it and provisions the vendor account by hand.
func SubmitApplication(c *gin.Context) {
	var app models.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	app.ID = 0
	app.IsReviewed = false

	if err := database.Auth.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}
	c.JSON(http.StatusCreated, app)
}
