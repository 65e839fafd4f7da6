package ledger

import (
	"errors"

	"jewelbook/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// SaleItemInput is one requested basket line. Discount is a percentage of
// the unit price (0-100); the fixed discount amount is computed here and
// frozen into the sale record.
type SaleItemInput struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	Discount  decimal.Decimal `json:"discount"`
}

// RecordSale validates the basket against current stock and prices, freezes
// per-line price snapshots, decrements stock, persists the sale and folds it
// into the customer's ledger - all inside one transaction. On any failure
// nothing survives: no partial decrement, no orphan sale, no half-settled
// ledger.
func RecordSale(db *gorm.DB, customerID uint, items []SaleItemInput) (*models.Sale, *models.Ledger, error) {
	if customerID == 0 {
		return nil, nil, ErrCustomerRequired
	}
	if len(items) == 0 {
		return nil, nil, ErrEmptySale
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, nil, ErrInvalidQuantity
		}
		if item.Discount.IsNegative() || item.Discount.GreaterThan(hundred) {
			return nil, nil, ErrInvalidDiscount
		}
	}

	var (
		sale *models.Sale
		led  *models.Ledger
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Kind: "customer", ID: customerID}
			}
			return err
		}

		totalAmount := decimal.Zero
		saleItems := make([]models.SaleItem, 0, len(items))
		for _, item := range items {
			product, err := reserve(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}

			// Price is captured now and never recomputed, even if the
			// product's price changes later.
			priceAtSale := product.Price
			discountAmount := item.Discount.Mul(priceAtSale).Div(hundred).Round(2)
			lineTotal := priceAtSale.Sub(discountAmount).
				Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)

			if err := commitDelta(tx, product, -item.Quantity); err != nil {
				return err
			}

			saleItems = append(saleItems, models.SaleItem{
				ProductID:      product.ID,
				Quantity:       item.Quantity,
				PriceAtSale:    priceAtSale,
				Discount:       item.Discount,
				DiscountAmount: discountAmount,
				LineTotal:      lineTotal,
			})
			totalAmount = totalAmount.Add(lineTotal)
		}

		s := models.Sale{
			CustomerID:  customerID,
			TotalAmount: totalAmount,
			Items:       saleItems, // GORM inserts these with the header
		}
		if err := tx.Create(&s).Error; err != nil {
			return err
		}

		// Same transaction: a committed sale with no ledger entry must be
		// impossible.
		settled, err := settle(tx, &s)
		if err != nil {
			return err
		}
		sale = &s
		led = settled
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return sale, led, nil
}

// GetSale loads a sale with its lines and customer.
func GetSale(db *gorm.DB, saleID uint) (*models.Sale, error) {
	var sale models.Sale
	err := db.Preload("Items").Preload("Items.Product").Preload("Customer").
		First(&sale, saleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: "sale", ID: saleID}
		}
		return nil, err
	}
	return &sale, nil
}
