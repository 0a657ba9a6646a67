package service

import (
	"testing"

	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database capped at one connection so
// concurrent transactions serialize instead of each seeing a separate :memory:
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Product{},
		&model.StockLog{},
		&model.PriceHistory{},
		&model.Sale{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
	))

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, sku string, stockQty, minLevel int) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:          "Test Product " + sku,
		SKU:           sku,
		Category:      "Electronics",
		Price:         10.0,
		CostPrice:     6.0,
		StockQty:      stockQty,
		MinStockLevel: minLevel,
		Currency:      "USD",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestSupplier(t *testing.T, db *gorm.DB, name string, apiBaseURL *string) *model.Supplier {
	t.Helper()

	supplier := &model.Supplier{
		Name:       name,
		Email:      "contact@" + name + ".example.com",
		Phone:      "555-0100",
		APIBaseURL: apiBaseURL,
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Name:  "Test User",
		Email: email,
		Role:  model.RoleStaff,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestStockService(db *gorm.DB) StockService {
	return NewStockService(db, repository.NewStockLogRepo(db), nil)
}
