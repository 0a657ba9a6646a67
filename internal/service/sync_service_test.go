package service

import (
	"context"
	"errors"
	"testing"

	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"
	"go-inventory-erp/pkg/supplierapi"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeSupplierClient serves canned responses per SKU and fails for SKUs
// listed in failing.
type fakeSupplierClient struct {
	responses map[string]*supplierapi.ProductData
	failing   map[string]bool
	calls     []string
}

func (f *fakeSupplierClient) FetchProduct(_ context.Context, _, sku string) (*supplierapi.ProductData, error) {
	f.calls = append(f.calls, sku)
	if f.failing[sku] {
		return nil, errors.New("connection refused")
	}
	if data, ok := f.responses[sku]; ok {
		return data, nil
	}
	return nil, errors.New("unknown sku")
}

func newTestSyncService(db *gorm.DB, client SupplierClient) SyncService {
	return NewSyncService(db, repository.NewProductRepo(db), client, NewPriceRecorder(repository.NewPriceHistoryRepo(db)))
}

func apiURL(url string) *string { return &url }

func syncProductWithSupplier(t *testing.T, db *gorm.DB, sku string, supplier *model.Supplier) *model.Product {
	t.Helper()
	product := createTestProduct(t, db, sku, 10, 5)
	require.NoError(t, db.Model(product).Update("supplier_id", supplier.ID).Error)
	product.SupplierID = &supplier.ID
	return product
}

func TestSyncProductUpdatesCostPriceOnly(t *testing.T) {
	db := setupTestDB(t)
	supplier := createTestSupplier(t, db, "acme", apiURL("https://api.acme.example.com"))
	product := syncProductWithSupplier(t, db, "SKU-400", supplier)

	client := &fakeSupplierClient{responses: map[string]*supplierapi.ProductData{
		"SKU-400": {SKU: "SKU-400", Price: 9.5, Stock: 500, Currency: "EUR", Available: true},
	}}
	svc := newTestSyncService(db, client)

	result, err := svc.SyncProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 6.0, result.OldPrice)
	assert.Equal(t, 9.5, result.NewPrice)
	assert.Equal(t, 500, result.SupplierStock)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 9.5, reloaded.CostPrice)
	assert.Equal(t, "EUR", reloaded.Currency)
	// Supplier-reported stock never touches the local quantity
	assert.Equal(t, 10, reloaded.StockQty)

	var history model.PriceHistory
	require.NoError(t, db.First(&history, "product_id = ?", product.ID).Error)
	assert.Equal(t, model.PriceSourceSupplierSync, history.Source)
	assert.Equal(t, 6.0, history.OldPrice)
	assert.Equal(t, 9.5, history.NewPrice)
}

func TestSyncProductSamePriceWritesNoHistory(t *testing.T) {
	db := setupTestDB(t)
	supplier := createTestSupplier(t, db, "acme", apiURL("https://api.acme.example.com"))
	product := syncProductWithSupplier(t, db, "SKU-401", supplier)

	client := &fakeSupplierClient{responses: map[string]*supplierapi.ProductData{
		"SKU-401": {SKU: "SKU-401", Price: 6.0, Currency: "USD", Available: true},
	}}
	svc := newTestSyncService(db, client)

	result, err := svc.SyncProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)

	var count int64
	require.NoError(t, db.Model(&model.PriceHistory{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSyncProductWithoutSupplierAPI(t *testing.T) {
	db := setupTestDB(t)
	supplier := createTestSupplier(t, db, "acme", nil)
	product := syncProductWithSupplier(t, db, "SKU-402", supplier)

	svc := newTestSyncService(db, &fakeSupplierClient{})

	_, err := svc.SyncProduct(context.Background(), product.ID)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestSyncProductUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSyncService(db, &fakeSupplierClient{})

	_, err := svc.SyncProduct(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSyncProductFetchFailureIsSoft(t *testing.T) {
	db := setupTestDB(t)
	supplier := createTestSupplier(t, db, "acme", apiURL("https://api.acme.example.com"))
	product := syncProductWithSupplier(t, db, "SKU-403", supplier)

	client := &fakeSupplierClient{failing: map[string]bool{"SKU-403": true}}
	svc := newTestSyncService(db, client)

	result, err := svc.SyncProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "failed to fetch supplier data")

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 6.0, reloaded.CostPrice)
}

func TestSyncAllIsolatesFailures(t *testing.T) {
	db := setupTestDB(t)
	supplier := createTestSupplier(t, db, "acme", apiURL("https://api.acme.example.com"))
	p1 := syncProductWithSupplier(t, db, "SKU-404", supplier)
	p2 := syncProductWithSupplier(t, db, "SKU-405", supplier)
	p3 := syncProductWithSupplier(t, db, "SKU-406", supplier)
	// No supplier API, must not be enumerated
	createTestProduct(t, db, "SKU-407", 10, 5)

	client := &fakeSupplierClient{
		responses: map[string]*supplierapi.ProductData{
			"SKU-404": {SKU: "SKU-404", Price: 7.0, Currency: "USD", Available: true},
			"SKU-406": {SKU: "SKU-406", Price: 8.0, Currency: "USD", Available: true},
		},
		failing: map[string]bool{"SKU-405": true},
	}
	svc := newTestSyncService(db, client)

	results, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Input order preserved, one result per product
	assert.Equal(t, []string{"SKU-404", "SKU-405", "SKU-406"}, client.calls)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success)

	for id, want := range map[uuid.UUID]float64{p1.ID: 7.0, p2.ID: 6.0, p3.ID: 8.0} {
		var reloaded model.Product
		require.NoError(t, db.First(&reloaded, "id = ?", id).Error)
		assert.Equal(t, want, reloaded.CostPrice)
	}
}
