package ledger

import (
	"errors"

	"jewelbook/internal/models"

	"gorm.io/gorm"
)

// settle folds a committed sale into the customer's single running ledger.
// Runs inside the caller's transaction (RecordSale or SyncSale).
//
// Idempotent: the ledger_sales unique index marks sales that were already
// aggregated, so settling the same sale twice never doubles the total.
func settle(tx *gorm.DB, sale *models.Sale) (*models.Ledger, error) {
	led, err := findOrCreateLedger(tx, sale.CustomerID)
	if err != nil {
		return nil, err
	}

	var link models.LedgerSale
	err = tx.Where("ledger_id = ? AND sale_id = ?", led.ID, sale.ID).First(&link).Error
	if err == nil {
		// Already aggregated - re-settlement is a no-op.
		return loadLedger(tx, led.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := tx.Create(&models.LedgerSale{LedgerID: led.ID, SaleID: sale.ID}).Error; err != nil {
		// A concurrent settlement of the same sale won the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return loadLedger(tx, led.ID)
		}
		return nil, err
	}

	for _, item := range sale.Items {
		if err := mergeLine(tx, led.ID, item); err != nil {
			return nil, err
		}
	}

	// Atomic increment: concurrent sales for the same customer must both
	// land, never overwrite each other.
	res := tx.Model(&models.Ledger{}).Where("id = ?", led.ID).
		UpdateColumn("total", gorm.Expr("total + ?", sale.TotalAmount))
	if res.Error != nil {
		return nil, res.Error
	}

	if err := refreshDerived(tx, led.ID); err != nil {
		return nil, err
	}
	return loadLedger(tx, led.ID)
}

// findOrCreateLedger returns the one open ledger for a customer, creating it
// on the customer's first sale. The unique index on customer_id serializes
// concurrent creates: the loser re-reads the winner's row.
func findOrCreateLedger(tx *gorm.DB, customerID uint) (*models.Ledger, error) {
	var led models.Ledger
	err := tx.Where("customer_id = ?", customerID).First(&led).Error
	if err == nil {
		return &led, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	led = models.Ledger{CustomerID: customerID, Status: models.StatusUnpaid}
	if err := tx.Create(&led).Error; err != nil {
		var again models.Ledger
		if ferr := tx.Where("customer_id = ?", customerID).First(&again).Error; ferr == nil {
			return &again, nil
		}
		return nil, err
	}
	return &led, nil
}

// mergeLine accumulates a sale line into the ledger's per-product history:
// an existing line for the product grows in place, otherwise a new line is
// appended with the sale's price/discount snapshot.
func mergeLine(tx *gorm.DB, ledgerID uint, item models.SaleItem) error {
	var line models.LedgerItem
	err := tx.Where("ledger_id = ? AND product_id = ?", ledgerID, item.ProductID).
		First(&line).Error
	switch {
	case err == nil:
		return tx.Model(&models.LedgerItem{}).Where("id = ?", line.ID).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", item.Quantity),
				"total":    gorm.Expr("total + ?", item.LineTotal),
			}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(&models.LedgerItem{
			LedgerID:  ledgerID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.PriceAtSale,
			Discount:  item.Discount,
			Total:     item.LineTotal,
		}).Error
	default:
		return err
	}
}

// refreshDerived re-reads total/paidAmount and persists the derived
// remainingAmount and status.
func refreshDerived(tx *gorm.DB, ledgerID uint) error {
	var led models.Ledger
	if err := tx.First(&led, ledgerID).Error; err != nil {
		return err
	}
	led.Recalculate()
	return tx.Model(&models.Ledger{}).Where("id = ?", led.ID).
		Updates(map[string]interface{}{
			"remaining_amount": led.RemainingAmount,
			"status":           led.Status,
		}).Error
}

// SyncSale explicitly folds an existing sale into its customer's ledger.
// Safe to call for a sale that was already settled.
func SyncSale(db *gorm.DB, saleID uint) (*models.Ledger, error) {
	var led *models.Ledger
	err := db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Preload("Items").First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Kind: "sale", ID: saleID}
			}
			return err
		}
		settled, err := settle(tx, &sale)
		if err != nil {
			return err
		}
		led = settled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return led, nil
}

// GetLedger loads a ledger with its accumulated lines, sales and payments.
func GetLedger(db *gorm.DB, ledgerID uint) (*models.Ledger, error) {
	return loadLedger(db, ledgerID)
}

func loadLedger(tx *gorm.DB, ledgerID uint) (*models.Ledger, error) {
	var led models.Ledger
	err := tx.Preload("Items").Preload("Items.Product").Preload("Sales").
		Preload("Payments").Preload("Customer").
		First(&led, ledgerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: "ledger", ID: ledgerID}
		}
		return nil, err
	}
	return &led, nil
}
