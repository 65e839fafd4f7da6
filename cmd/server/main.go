package main

import (
	"log"
	"os"
	"strings"
	"time"

	"jewelbook/internal/database"
	"jewelbook/internal/handlers"
	"jewelbook/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()
	tenants := database.NewRegistry()

	r := gin.Default()

	// Frontend origins (hosted app + local dev).
	origins := []string{"https://jewelbook.vercel.app", "http://localhost:3000"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		origins = append(origins, strings.Split(extra, ",")...)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login)

	// --- FEATURE FLAG: open signup requests ---
	if os.Getenv("ALLOW_SIGNUP") == "true" {
		r.POST("/signup-requests", handlers.SubmitApplication)
		log.Println("Signup request route is OPEN")
	} else {
		log.Println("Signup request route is disabled")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	api.Use(middleware.Tenant(tenants))
	{
		// Customers
		api.GET("/customers", handlers.GetCustomers)
		api.POST("/customers", handlers.AddCustomer)
		api.PUT("/customers/:id", handlers.UpdateCustomer)
		api.DELETE("/customers/:id", handlers.DeleteCustomer)

		// Products & stock
		api.GET("/products", handlers.GetProducts)
		api.POST("/products", handlers.AddProduct)
		api.GET("/products/barcode/:barcode", handlers.ScanProduct)
		api.PUT("/products/:id", handlers.UpdateProduct)
		api.DELETE("/products/:id", handlers.DeleteProduct)
		api.PUT("/products/:id/stock-in", handlers.StockIn)
		api.PUT("/products/:id/stock-out", handlers.StockOut)
		api.GET("/products/:id/movements", handlers.GetStockMovements)

		// Sales
		api.POST("/sales", handlers.RecordSale)
		api.GET("/sales", handlers.GetSales)

		// Customer credit ledger
		api.GET("/ledger", handlers.GetLedgers)
		api.GET("/ledger/group-by-customer", handlers.GetLedgersGroupedByCustomer)
		api.POST("/ledger/sync", handlers.SyncLedger)
		api.PATCH("/ledger/:id/pay", handlers.MarkLedgerPaid)
		api.PATCH("/ledger/:id/partial-pay", handlers.PartialPayLedger)

		// Reports
		api.GET("/reports/daily", handlers.GetDailyReport)
		api.GET("/reports/monthly", handlers.GetMonthlyReport)
		api.GET("/reports/top-products", handlers.GetTopProducts)
		api.GET("/reports/outstanding", handlers.GetOutstanding)
		api.GET("/reports/outstanding/export", handlers.ExportOutstanding)

		// Assistant
		api.POST("/ask", handlers.AskAI)
	}

	// --- ADMIN ONLY: vendor provisioning (auth DB, no tenant needed) ---
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/vendors", handlers.ListVendors)
		admin.POST("/vendors", handlers.CreateVendor)
		admin.GET("/signup-requests", handlers.ListApplications)
		admin.PATCH("/signup-requests/:id/review", handlers.ReviewApplication)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
