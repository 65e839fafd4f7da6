package database

import (
	"log"
	"os"
	"time"

	"jewelbook/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Auth is the shared account database: vendor logins and signup
// applications. Tenant shop data never lives here.
var Auth *gorm.DB

func Connect() {
	dsn := os.Getenv("AUTH_DB_DSN")
	if dsn == "" {
		log.Fatal("Error: AUTH_DB_DSN not found in .env file. Please configure your database.")
	}

	var err error

	// Wait for the DB to be ready.
	for i := 0; i < 5; i++ {
		Auth, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to auth database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal("Failed to connect to auth database after 5 attempts:", err)
	}

	if err := Auth.AutoMigrate(&models.Vendor{}, &models.Application{}); err != nil {
		log.Fatal("Failed to migrate auth schema:", err)
	}

	log.Println("Auth database connected and schema synced")
}
