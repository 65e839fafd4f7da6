package ledger

import (
	"errors"
	"time"

	"jewelbook/internal/models"

	"gorm.io/gorm"
)

// reserve validates that a product can cover the requested quantity and
// returns the product as a price snapshot. It does not mutate stock; the
// decrement happens in commitDelta inside the same transaction, so a retried
// transaction can never double-apply.
func reserve(tx *gorm.DB, productID uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: "product", ID: productID}
		}
		return nil, err
	}

	if product.Quantity < quantity {
		return nil, &StockError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.Quantity,
			Requested: quantity,
		}
	}
	return &product, nil
}

// commitDelta applies a signed stock delta as a single conditional UPDATE.
// Negative deltas are guarded by `quantity >= ?` so two concurrent sales can
// never oversell: the loser's UPDATE matches zero rows and its whole
// transaction rolls back.
func commitDelta(tx *gorm.DB, product *models.Product, delta int) error {
	q := tx.Model(&models.Product{}).Where("id = ?", product.ID)
	if delta < 0 {
		q = q.Where("quantity >= ?", -delta)
	}
	res := q.UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &StockError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.Quantity,
			Requested: -delta,
		}
	}
	return nil
}

// AdjustStock is the manual stock-in / stock-out path ("goldsmith returned
// 3 rings"). It applies the signed amount under the same non-negativity
// guard as a sale and records a StockMovement audit entry.
func AdjustStock(db *gorm.DB, productID uint, amount int, note string) (*models.Product, error) {
	if amount == 0 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Kind: "product", ID: productID}
			}
			return err
		}

		if err := commitDelta(tx, &product, amount); err != nil {
			return err
		}

		movementType := "in"
		quantity := amount
		if amount < 0 {
			movementType = "out"
			quantity = -amount
		}
		movement := models.StockMovement{
			ProductID: product.ID,
			Type:      movementType,
			Quantity:  quantity,
			Note:      note,
			Date:      time.Now(),
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		// Re-read so the caller sees the committed quantity.
		return tx.First(&product, productID).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}
