package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"jewelbook/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// reportLocation is the shop timezone day/month buckets are aligned to.
func reportLocation() *time.Location {
	name := os.Getenv("REPORT_TZ")
	if name == "" {
		name = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// --- GET: /api/reports/daily?start=2026-01-01&end=2026-01-31 ---
func GetDailyReport(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start and end date are required"})
		return
	}

	loc := reportLocation()
	startT, err1 := time.ParseInLocation("2006-01-02", start, loc)
	endT, err2 := time.ParseInLocation("2006-01-02", end, loc)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be in YYYY-MM-DD format"})
		return
	}
	endT = endT.AddDate(0, 0, 1).Add(-time.Nanosecond) // inclusive end of day

	rows, err := database.RevenueByDay(tenantDB(c), startT, endT, loc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily report"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// --- GET: /api/reports/monthly?month=2026-01 ---
// Without a month filter, returns every month with sales.
func GetMonthlyReport(c *gin.Context) {
	loc := reportLocation()

	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Now().In(loc)

	if month := c.Query("month"); month != "" {
		monthT, err := time.ParseInLocation("2006-01", month, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Month must be in YYYY-MM format"})
			return
		}
		start = monthT
		end = monthT.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}

	rows, err := database.RevenueByMonth(tenantDB(c), start, end, loc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch monthly report"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// --- GET: /api/reports/top-products ---
func GetTopProducts(c *gin.Context) {
	rows, err := database.GetTopProducts(tenantDB(c), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top products"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// --- GET: /api/reports/outstanding ---
func GetOutstanding(c *gin.Context) {
	rows, err := database.OutstandingBalances(tenantDB(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch outstanding balances"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// --- GET: /api/reports/outstanding/export ---
// Same data as /outstanding, as an .xlsx the accountant can take away.
func ExportOutstanding(c *gin.Context) {
	rows, err := database.OutstandingBalances(tenantDB(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch outstanding balances"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Outstanding"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Customer", "Contact", "Total", "Paid", "Outstanding", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		values := []interface{}{
			row.Customer.Name,
			row.Customer.Contact,
			row.TotalAmount,
			row.TotalPaid,
			row.TotalUnpaid,
			row.Status,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("outstanding-%s.xlsx", time.Now().In(reportLocation()).Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write export"})
	}
}
