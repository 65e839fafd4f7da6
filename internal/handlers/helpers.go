package handlers

import (
	"net/http"

	"jewelbook/internal/ledger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// tenantDB returns the caller's shop database, resolved by the Tenant
// middleware.
func tenantDB(c *gin.Context) *gorm.DB {
	return c.MustGet("db").(*gorm.DB)
}

// writeError maps core errors onto HTTP statuses: bad input 400, missing
// records 404, state conflicts 409, everything else an opaque 500.
func writeError(c *gin.Context, err error) {
	switch {
	case ledger.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case ledger.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case ledger.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case ledger.IsRetryable(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Request conflicted with another update, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
