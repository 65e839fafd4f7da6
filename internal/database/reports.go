package database

import (
	"time"

	"jewelbook/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesReportResult summarizes revenue over a date range.
type SalesReportResult struct {
	TotalRevenue float64
	TotalCount   int64
}

// GetSalesReport calculates sales within a specific date range.
func GetSalesReport(db *gorm.DB, start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := db.Model(&models.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// TopProduct is one row of the best-sellers report. Revenue is net of
// per-line discounts (line totals are already discounted).
type TopProduct struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// GetTopProducts ranks products by settled revenue.
func GetTopProducts(db *gorm.DB, limit int) ([]TopProduct, error) {
	var rows []TopProduct
	err := db.Table("sale_items").
		Select("products.name as product_name, SUM(sale_items.quantity) as quantity, SUM(sale_items.line_total) as revenue").
		Joins("JOIN products ON sale_items.product_id = products.id").
		Group("products.name").
		Order("revenue desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// PeriodTotal is revenue bucketed by calendar day or month.
type PeriodTotal struct {
	Period string `json:"period"`
	Total  string `json:"total"`
}

// RevenueByDay buckets sales by calendar day in the shop's timezone.
// Bucketing happens in Go so day boundaries follow loc, not the server TZ.
func RevenueByDay(db *gorm.DB, start, end time.Time, loc *time.Location) ([]PeriodTotal, error) {
	return revenueByPeriod(db, start, end, loc, "2006-01-02")
}

// RevenueByMonth buckets sales by calendar month in the shop's timezone.
func RevenueByMonth(db *gorm.DB, start, end time.Time, loc *time.Location) ([]PeriodTotal, error) {
	return revenueByPeriod(db, start, end, loc, "2006-01")
}

func revenueByPeriod(db *gorm.DB, start, end time.Time, loc *time.Location, layout string) ([]PeriodTotal, error) {
	var sales []models.Sale
	err := db.Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at asc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, s := range sales {
		key := s.CreatedAt.In(loc).Format(layout)
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(s.TotalAmount)
	}

	rows := make([]PeriodTotal, 0, len(order))
	for _, key := range order {
		rows = append(rows, PeriodTotal{Period: key, Total: totals[key].StringFixed(2)})
	}
	return rows, nil
}

// CustomerBalance aggregates one customer's account for the outstanding
// balances report.
type CustomerBalance struct {
	Customer    models.Customer `json:"customer"`
	TotalAmount string          `json:"total_amount"`
	TotalPaid   string          `json:"total_paid"`
	TotalUnpaid string          `json:"total_unpaid"`
	Status      string          `json:"status"`
	Ledger      models.Ledger   `json:"ledger"`
}

// OutstandingBalances lists every customer account, most indebted first.
func OutstandingBalances(db *gorm.DB) ([]CustomerBalance, error) {
	var ledgers []models.Ledger
	err := db.Preload("Customer").Preload("Payments").Preload("Items").
		Order("remaining_amount desc").
		Find(&ledgers).Error
	if err != nil {
		return nil, err
	}

	rows := make([]CustomerBalance, 0, len(ledgers))
	for _, led := range ledgers {
		rows = append(rows, CustomerBalance{
			Customer:    led.Customer,
			TotalAmount: led.Total.StringFixed(2),
			TotalPaid:   led.PaidAmount.StringFixed(2),
			TotalUnpaid: led.RemainingAmount.StringFixed(2),
			Status:      led.Status,
			Ledger:      led,
		})
	}
	return rows, nil
}
