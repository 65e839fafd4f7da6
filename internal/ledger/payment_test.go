package ledger_test

import (
	"testing"

	"jewelbook/internal/ledger"
	"jewelbook/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPaid_SettlesInFull(t *testing.T) {
	// GIVEN: total=500, paid=0
	// WHEN: marking fully paid
	// THEN: paid=500, remaining=0, status=Paid, one payment of 500

	db := newTestDB(t)
	customer := seedCustomer(t, db, "Asha")
	ring := seedProduct(t, db, "Gold Ring", 10, "500")
	_, led, err := ledger.RecordSale(db, customer.ID, []ledger.SaleItemInput{
		{ProductID: ring.ID, Quantity: 1},
	})
	require.NoError(t, err)

	paid, err := ledger.MarkPaid(db, led.ID, "")
	require.NoError(t, err)

	assert.Equal(t, "500.00", paid.PaidAmount.StringFixed(2))
	assert.Equal(t, "0.00", paid.RemainingAmount.StringFixed(2))
	assert.Equal(t, models.StatusPaid, paid.Status)

	require.Len(t, paid.Payments, 1)
	payment := paid.Payments[0]
	assert.Equal(t, "500.00", payment.Amount.StringFixed(2))
	assert.Equal(t, "cash", payment.Method, "method defaults to cash")
	_, err = uuid.Parse(payment.Reference)
	assert.NoError(t, err, "payment carries a uuid reference")
	assert.False(t, payment.Date.IsZero())
}

func TestMarkPaid_AlreadyPaid(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Asha")
	ring := seedProduct(t, db, "Gold Ring", 10, "500")
	_, led, err := ledger.RecordSale(db, customer.ID, []ledger.SaleItemInput{
		{ProductID: ring.ID, Quantity: 1},
	})
	require.NoError(t, err)

	_, err = ledger.MarkPaid(db, led.ID, "")
	require.NoError(t, err)

	_, err = ledger.MarkPaid(db, led.ID, "")
	require.ErrorIs(t, err, ledger.ErrAlreadyPaid)
}

func TestMarkPaid_UnknownLedger(t *testing.T) {
	db := newTestDB(t)
	_, err := ledger.MarkPaid(db, 777, "")
	require.ErrorIs(t, err, ledger.ErrLedgerNotFound)
}

func TestPartialPay_MovesToPartial(t *testing.T) {
	// GIVEN: total=500, paid=0
	// WHEN: paying 300
	// THEN: paid=300, remaining=200, status=Partial

	db := newTestDB(t)
	customer := seedCustomer(t, db, "Asha")
	ring := seedProduct(t, db, "Gold Ring", 10, "500")
	_, led, err := ledger.RecordSale(db, customer.ID, []ledger.SaleItemInput{
		{ProductID: ring.ID, Quantity: 1},
	})
	require.NoError(t, err)

	updated, err := ledger.PartialPay(db, led.ID, dec("300"), "upi")
	require.NoError(t, err)

	assert.Equal(t, "300.00", updated.PaidAmount.StringFixed(2))
	assert.Equal(t, "200.00", updated.RemainingAmount.StringFixed(2))
	assert.Equal(t, models.StatusPartial, updated.Status)
	require.Len(t, updated.Payments, 1)
	assert.Equal(t, "upi", updated.Payments[0].Method)
}

func TestPartialPay_OverpaymentIsClamped(t *testing.T) {
	// GIVEN: total=500, paid=0
	// WHEN: paying 1000
	// THEN: payment clamped to 500, status=Paid

	db := newTestDB(t)
	customer := seedCustomer(t, db, "Asha")
	ring := seedProduct(t, db, "Gold Ring", 10, "500")
	_, led, err := ledger.RecordSale(db, customer.ID, []ledger.SaleItemInput{
		{ProductID: ring.ID, Quantity: 1},
	})
	require.NoError(t, err)

	updated, err := ledger.PartialPay(db, led.ID, dec("1000"), "")
	require.NoError(t, err)

	assert.Equal(t, "500.00", updated.PaidAmount.StringFixed(2))
	assert.Equal(t, "0.00", updated.RemainingAmount.StringFixed(2))
	assert.Equal(t, models.StatusPaid, updated.Status)
	require.Len(t, updated.Payments, 1)
	assert.Equal(t, "500.00", updated.Payments[0].Amount.StringFixed(2), "overpayment capped, not recorded")
}

func TestPartialPay_InvalidAmount(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Asha")
	ring := seedProduct(t, db, "Gold Ring", 10, "500")
	_, led, err := ledger.RecordSale(db, customer.ID, []ledger.SaleItemInput{
		{ProductID: ring.ID, Quantity: 1},
	})
	require.NoError(t, err)

	_, err = ledger.PartialPay(db, led.ID, decimal.Zero, "")
	require.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = ledger.PartialPay(db, led.ID, dec("-50"), "")
	require.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestPartialPay_AccumulatesToPaid(t *testing.T) {
	// Payments only move forward: 200 + 300 closes a 500 ledger, and any
	// further payment is refused.

	db := newTestDB(t)
	customer := seedCustomer(t, db, "Asha")
	ring := seedProduct(t, db, "Gold Ring", 10, "500")
	_, led, err := ledger.RecordSale(db, customer.ID, []ledger.SaleItemInput{
		{ProductID: ring.ID, Quantity: 1},
	})
	require.NoError(t, err)

	mid, err := ledger.PartialPay(db, led.ID, dec("200"), "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPartial, mid.Status)

	closed, err := ledger.PartialPay(db, led.ID, dec("300"), "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, closed.Status)
	assert.Equal(t, "0.00", closed.RemainingAmount.StringFixed(2))

	// paidAmount equals the sum of the appended payments
	sum := decimal.Zero
	for _, p := range closed.Payments {
		sum = sum.Add(p.Amount)
	}
	assert.True(t, closed.PaidAmount.Equal(sum))
	require.Len(t, closed.Payments, 2)

	_, err = ledger.PartialPay(db, led.ID, dec("1"), "")
	require.ErrorIs(t, err, ledger.ErrAlreadyPaid)
}

func TestPayment_NewSaleReopensSettledLedger(t *testing.T) {
	// A fully paid customer who buys again owes the new amount.
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Asha")
	ring := seedProduct(t, db, "Gold Ring", 10, "500")

	_, led, err := ledger.RecordSale(db, customer.ID, []ledger.SaleItemInput{
		{ProductID: ring.ID, Quantity: 1},
	})
	require.NoError(t, err)
	_, err = ledger.MarkPaid(db, led.ID, "")
	require.NoError(t, err)

	_, reopened, err := ledger.RecordSale(db, customer.ID, []ledger.SaleItemInput{
		{ProductID: ring.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, led.ID, reopened.ID, "still the same running account")
	assert.Equal(t, "1000.00", reopened.Total.StringFixed(2))
	assert.Equal(t, "500.00", reopened.PaidAmount.StringFixed(2))
	assert.Equal(t, "500.00", reopened.RemainingAmount.StringFixed(2))
	assert.Equal(t, models.StatusPartial, reopened.Status)
}
