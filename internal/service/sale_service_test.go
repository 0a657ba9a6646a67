package service

import (
	"testing"

	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSaleService(db *gorm.DB) SaleService {
	return NewSaleService(db, repository.NewProductRepo(db), repository.NewSaleRepo(db), newTestStockService(db))
}

func TestCreateSaleDrainsStockToZero(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSaleService(db)
	product := createTestProduct(t, db, "SKU-100", 5, 10)
	user := createTestUser(t, db, "seller@example.com")

	sale, err := svc.CreateSale(product.ID, user.ID, 5, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 50.0, sale.Total)
	assert.Equal(t, 5, sale.Quantity)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 0, reloaded.StockQty)
	assert.True(t, reloaded.IsLowStock())

	var log model.StockLog
	require.NoError(t, db.First(&log, "product_id = ?", product.ID).Error)
	assert.Equal(t, model.StockOut, log.Type)
	assert.Equal(t, 5, log.Quantity)
	assert.Equal(t, "Product sold", log.Reason)
}

func TestCreateSaleInsufficientStockLeavesNoTrace(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSaleService(db)
	product := createTestProduct(t, db, "SKU-101", 2, 10)
	user := createTestUser(t, db, "seller@example.com")

	_, err := svc.CreateSale(product.ID, user.ID, 5, 10.0)
	require.ErrorIs(t, err, ErrInsufficientStock)

	var saleCount, logCount int64
	require.NoError(t, db.Model(&model.Sale{}).Count(&saleCount).Error)
	require.NoError(t, db.Model(&model.StockLog{}).Count(&logCount).Error)
	assert.Zero(t, saleCount)
	assert.Zero(t, logCount)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 2, reloaded.StockQty)
}

func TestCreateSaleRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSaleService(db)
	product := createTestProduct(t, db, "SKU-102", 5, 2)
	user := createTestUser(t, db, "seller@example.com")

	_, err := svc.CreateSale(product.ID, user.ID, 0, 10.0)
	require.Error(t, err)

	_, err = svc.CreateSale(product.ID, user.ID, -3, 10.0)
	require.Error(t, err)
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSaleService(db)
	user := createTestUser(t, db, "seller@example.com")

	_, err := svc.CreateSale(uuid.New(), user.ID, 1, 10.0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListSalesPaginates(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSaleService(db)
	product := createTestProduct(t, db, "SKU-103", 100, 2)
	user := createTestUser(t, db, "seller@example.com")

	for i := 0; i < 5; i++ {
		_, err := svc.CreateSale(product.ID, user.ID, 1, 10.0)
		require.NoError(t, err)
	}

	sales, total, err := svc.ListSales(1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, sales, 3)

	sales, _, err = svc.ListSales(2, 3)
	require.NoError(t, err)
	assert.Len(t, sales, 2)
}
