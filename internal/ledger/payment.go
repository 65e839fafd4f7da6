package ledger

import (
	"errors"
	"time"

	"jewelbook/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MarkPaid settles a ledger in full: one payment for exactly the remaining
// amount, status Paid, remaining zero.
func MarkPaid(db *gorm.DB, ledgerID uint, method string) (*models.Ledger, error) {
	var out *models.Ledger
	err := db.Transaction(func(tx *gorm.DB) error {
		led, remaining, err := openLedger(tx, ledgerID)
		if err != nil {
			return err
		}
		if err := appendPayment(tx, led, remaining, method); err != nil {
			return err
		}
		out, err = loadLedger(tx, led.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PartialPay records a payment against a ledger. Overpayment is silently
// capped at the remaining amount, not rejected.
func PartialPay(db *gorm.DB, ledgerID uint, amount decimal.Decimal, method string) (*models.Ledger, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var out *models.Ledger
	err := db.Transaction(func(tx *gorm.DB) error {
		led, remaining, err := openLedger(tx, ledgerID)
		if err != nil {
			return err
		}
		payAmount := amount
		if payAmount.GreaterThan(remaining) {
			payAmount = remaining
		}
		if err := appendPayment(tx, led, payAmount, method); err != nil {
			return err
		}
		out, err = loadLedger(tx, led.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// openLedger fetches a ledger that still has something owing.
func openLedger(tx *gorm.DB, ledgerID uint) (*models.Ledger, decimal.Decimal, error) {
	var led models.Ledger
	if err := tx.First(&led, ledgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, &NotFoundError{Kind: "ledger", ID: ledgerID}
		}
		return nil, decimal.Zero, err
	}
	remaining := led.Total.Sub(led.PaidAmount)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return nil, decimal.Zero, ErrAlreadyPaid
	}
	return &led, remaining, nil
}

// appendPayment records the payment and advances paidAmount. The update is
// guarded on the paidAmount we read, so two racing payments cannot both
// apply against the same balance; the loser aborts and the caller retries.
func appendPayment(tx *gorm.DB, led *models.Ledger, amount decimal.Decimal, method string) error {
	if method == "" {
		method = "cash"
	}
	payment := models.Payment{
		LedgerID:  led.ID,
		Amount:    amount,
		Method:    method,
		Reference: uuid.NewString(),
		Date:      time.Now(),
	}
	if err := tx.Create(&payment).Error; err != nil {
		return err
	}

	res := tx.Model(&models.Ledger{}).
		Where("id = ? AND paid_amount = ?", led.ID, led.PaidAmount).
		UpdateColumn("paid_amount", gorm.Expr("paid_amount + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return refreshDerived(tx, led.ID)
}
