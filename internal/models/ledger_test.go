package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerRecalculate(t *testing.T) {
	dec := decimal.RequireFromString

	tests := []struct {
		name          string
		total, paid   string
		wantStatus    string
		wantRemaining string
	}{
		{"nothing paid", "500", "0", StatusUnpaid, "500"},
		{"partially paid", "500", "300", StatusPartial, "200"},
		{"exactly paid", "500", "500", StatusPaid, "0"},
		{"overpaid clamps remaining", "500", "600", StatusPaid, "0"},
		{"empty ledger", "0", "0", StatusUnpaid, "0"},
		{"negative paid is unpaid", "500", "-1", StatusUnpaid, "501"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := Ledger{Total: dec(tc.total), PaidAmount: dec(tc.paid)}
			l.Recalculate()
			assert.Equal(t, tc.wantStatus, l.Status)
			assert.True(t, l.RemainingAmount.Equal(dec(tc.wantRemaining)),
				"remaining = %s, want %s", l.RemainingAmount, tc.wantRemaining)
		})
	}
}
