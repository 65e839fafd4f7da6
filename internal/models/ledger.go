package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status of a ledger. Derived, never set directly by callers.
const (
	StatusUnpaid  = "Unpaid"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
)

// Sale - The Transaction Header. Immutable once committed: prices and
// discounts are frozen at the moment of sale.
type Sale struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CustomerID  uint            `gorm:"index" json:"customer_id"`
	Customer    Customer        `json:"customer"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount"`
	Items       []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SaleItem - One line of a sale. Discount is a percentage of PriceAtSale.
type SaleItem struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	SaleID         uint            `gorm:"index" json:"sale_id"`
	ProductID      uint            `json:"product_id"`
	Product        Product         `json:"product"` // Preload product details
	Quantity       int             `json:"quantity"`
	PriceAtSale    decimal.Decimal `gorm:"type:decimal(10,2)" json:"price_at_sale"`
	Discount       decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_amount"`
	LineTotal      decimal.Decimal `gorm:"type:decimal(10,2)" json:"line_total"`
}

// Ledger - The running account of one customer: everything sold to them and
// everything they have paid. Exactly one ledger exists per customer (enforced
// by the unique index); every sale for that customer folds into it.
type Ledger struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CustomerID      uint            `gorm:"uniqueIndex" json:"customer_id"`
	Customer        Customer        `json:"customer"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"remaining_amount"`
	Status          string          `gorm:"size:10;default:'Unpaid'" json:"status"`
	Items           []LedgerItem    `gorm:"foreignKey:LedgerID" json:"items"`
	Sales           []LedgerSale    `gorm:"foreignKey:LedgerID" json:"sales"`
	Payments        []Payment       `gorm:"foreignKey:LedgerID" json:"payments"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LedgerItem - Accumulated product line across all of a customer's sales.
// Price and discount are snapshots copied from the sale, not live joins: a
// later product edit or deletion must not change an already-settled total.
type LedgerItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	LedgerID  uint            `gorm:"index;uniqueIndex:idx_ledger_product" json:"ledger_id"`
	ProductID uint            `gorm:"uniqueIndex:idx_ledger_product" json:"product_id"`
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Discount  decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
}

// LedgerSale - Marks a sale as already folded into a ledger. The composite
// unique index is the idempotency guard: settling the same sale twice is a
// no-op, never a doubled total.
type LedgerSale struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	LedgerID uint `gorm:"index;uniqueIndex:idx_ledger_sale" json:"ledger_id"`
	SaleID   uint `gorm:"uniqueIndex:idx_ledger_sale" json:"sale_id"`
}

// Payment - Append-only record of money received against a ledger.
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	LedgerID  uint            `gorm:"index" json:"ledger_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Method    string          `gorm:"size:20;default:'cash'" json:"method"`
	Reference string          `gorm:"size:36" json:"reference"`
	Date      time.Time       `json:"date"`
}

// Recalculate derives RemainingAmount and Status from Total and PaidAmount.
// Must be called after every mutation of either, before persisting.
func (l *Ledger) Recalculate() {
	l.RemainingAmount = l.Total.Sub(l.PaidAmount)
	switch {
	case l.PaidAmount.LessThanOrEqual(decimal.Zero):
		l.Status = StatusUnpaid
	case l.PaidAmount.LessThan(l.Total):
		l.Status = StatusPartial
	default:
		l.Status = StatusPaid
		l.RemainingAmount = decimal.Zero
	}
}
