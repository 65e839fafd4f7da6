package database

import (
	"fmt"
	"log"
	"os"
	"sync"

	"jewelbook/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Registry hands out one live connection per tenant database instead of
// reconnecting per request. Connections are dialed lazily on first use and
// kept for the life of the process.
type Registry struct {
	mu    sync.Mutex
	conns map[string]*gorm.DB
	open  func(dbName string) gorm.Dialector
}

// NewRegistry builds a registry that dials MySQL using TENANT_DSN_TEMPLATE,
// a DSN with a %s placeholder for the tenant database name, e.g.
// "user:pass@tcp(127.0.0.1:3306)/%s?parseTime=true".
func NewRegistry() *Registry {
	template := os.Getenv("TENANT_DSN_TEMPLATE")
	if template == "" {
		log.Fatal("Error: TENANT_DSN_TEMPLATE not found in .env file")
	}
	return NewRegistryWithOpener(func(dbName string) gorm.Dialector {
		return mysql.Open(fmt.Sprintf(template, dbName))
	})
}

// NewRegistryWithOpener lets tests swap the dialer (e.g. for SQLite).
func NewRegistryWithOpener(open func(dbName string) gorm.Dialector) *Registry {
	return &Registry{
		conns: make(map[string]*gorm.DB),
		open:  open,
	}
}

// Get returns the tenant's connection, dialing and migrating the schema on
// first use.
func (r *Registry) Get(dbName string) (*gorm.DB, error) {
	if dbName == "" {
		return nil, fmt.Errorf("tenant database name missing from token")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.conns[dbName]; ok {
		return db, nil
	}

	log.Printf("Connecting to tenant DB: %s", dbName)
	db, err := gorm.Open(r.open(dbName), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect tenant %s: %w", dbName, err)
	}

	if err := MigrateTenant(db); err != nil {
		return nil, fmt.Errorf("migrate tenant %s: %w", dbName, err)
	}

	r.conns[dbName] = db
	return db, nil
}

// MigrateTenant syncs the per-shop schema. Exported so tests can prepare a
// tenant database without going through the registry.
func MigrateTenant(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.StockMovement{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Ledger{},
		&models.LedgerItem{},
		&models.LedgerSale{},
		&models.Payment{},
	)
}
