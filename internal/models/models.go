package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor - A shop account in the shared auth database. Each vendor owns one
// isolated tenant database named by DBName.
type Vendor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'vendor'
	DBName       string    `gorm:"size:64" json:"db_name"`
	BrandFull    string    `json:"brand_full"`
	BrandShort   string    `json:"brand_short"`
	Address      string    `json:"address"`
	Contact      string    `json:"contact"`
	CreatedAt    time.Time `json:"created_at"`
}

// Application - A signup request from a prospective shop, reviewed by an admin.
type Application struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	BusinessName string    `json:"business_name"`
	Message      string    `json:"message"`
	IsReviewed   bool      `json:"is_reviewed"`
	CreatedAt    time.Time `json:"created_at"`
}

// Customer - A shop's customer, referenced by sales and by the credit ledger.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product - The Inventory. Quantity must never go negative; every mutation in
// the sale path is a guarded conditional update.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"` // Ring, Necklace, etc.
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Barcode   string          `gorm:"index;size:64" json:"barcode"`
	Weight    float64         `json:"weight"` // grams
	GST       float64         `json:"gst"`    // percentage
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockMovement - Audit entry for a manual stock adjustment. Sale-driven
// decrements are recorded by the sale itself, not here.
type StockMovement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index" json:"product_id"`
	Type      string    `gorm:"size:8" json:"type"` // 'in' or 'out'
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note"`
	Date      time.Time `json:"date"`
}
