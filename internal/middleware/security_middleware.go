package middleware

import (
	"net/http"
	"strings"

	"jewelbook/internal/auth"
	"jewelbook/internal/database"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks if the caller has a valid JWT token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Format: "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Store vendor info for the handlers downstream.
		c.Set("vendorID", claims.VendorID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set("dbName", claims.DBName)

		c.Next()
	}
}

// Tenant resolves the caller's isolated shop database from the token claim
// and hands it to the request. The core never picks a database itself.
func Tenant(registry *database.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbName := c.GetString("dbName")
		db, err := registry.Get(dbName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Shop database unavailable"})
			c.Abort()
			return
		}
		c.Set("db", db)
		c.Next()
	}
}

// RequireRole is a secondary guard that checks for specific permissions.
func RequireRole(allowedRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != allowedRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}
